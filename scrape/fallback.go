package scrape

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pevans/nintendonews/news"
)

// The source sometimes renders its whole "What's New" feed as a flat list of
// anchors with no distinguishing container markup. This path recovers items
// purely from anchor text shape: a read-more marker, an optional MM/DD/YY
// date prefix, and whatever image happens to sit near the anchor.

// datePrefix matches a leading two-digit/two-digit/two-digit date token and
// captures the remaining text, surrounding shape intact, as the title.
var datePrefix = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s*(.*)$`)

// fallbackDateLayout parses the date tokens found in anchor text.
const fallbackDateLayout = "01/02/06"

// newsImageKeywords flags document images as news-flavored when one of these
// appears in the image's alt text, its parent's text, or its source path.
var newsImageKeywords = []string{"news", "nintendo", "update", "article"}

// ancestorImageLevels bounds how far above an anchor the nearest-image
// search climbs. Nearest ancestor wins; the first image found at a level
// wins within it.
const ancestorImageLevels = 3

// poolImage is one entry of the document-wide pool of news-flavored images
// used when no ancestor of an anchor contains one.
type poolImage struct {
	src string
	alt string
}

// ExtractFallback scans the document's anchors for read-more links and
// rebuilds items from their text, used only when no cascade candidate
// matched. Results are sorted by parsed date descending (undated items
// last), then truncated to limit.
func (e *Extractor) ExtractFallback(doc *goquery.Document, limit int) []news.Item {
	pool := e.collectNewsImages(doc)

	type dated struct {
		item    news.Item
		stamp   time.Time
		hasDate bool
	}

	var entries []dated
	seen := make(map[string]bool)

	doc.Find("a").Each(func(_ int, anchor *goquery.Selection) {
		text := strings.TrimSpace(anchor.Text())
		if !containsFold(text, e.Marker) {
			return
		}

		href, ok := anchor.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		link := e.absoluteURL(href)
		if link == "" || seen[link] {
			return
		}
		seen[link] = true

		// Strip the marker, then split a leading date token off the front.
		// The remainder keeps its original shape -- no trimming, so the
		// title reads exactly as the page showed it.
		raw := removeFold(text, e.Marker)
		title := raw
		date := ""
		if m := datePrefix.FindStringSubmatch(raw); m != nil {
			date = m[1]
			title = m[2]
		}

		image := e.nearestAncestorImage(anchor)
		if image == "" {
			image = bestPoolImage(pool, title)
		}

		stamp, err := time.Parse(fallbackDateLayout, date)

		entries = append(entries, dated{
			item:    news.NewItem(title, link, date, image, news.DefaultDescription),
			stamp:   stamp,
			hasDate: date != "" && err == nil,
		})
	})

	// Calendar-date ordering, newest first; undated items sort after dated
	// ones. The sort is stable so same-day items keep document order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].hasDate != entries[j].hasDate {
			return entries[i].hasDate
		}
		return entries[i].stamp.After(entries[j].stamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]news.Item, len(entries))
	for i, entry := range entries {
		items[i] = entry.item
	}
	return items
}

// nearestAncestorImage climbs up to ancestorImageLevels parents above the
// anchor and returns the first image source found, nearest ancestor first.
func (e *Extractor) nearestAncestorImage(anchor *goquery.Selection) string {
	level := anchor.Parent()
	for i := 0; i < ancestorImageLevels && level.Length() > 0; i++ {
		if src, ok := level.Find("img[src]").First().Attr("src"); ok {
			return e.absoluteURL(src)
		}
		level = level.Parent()
	}
	return ""
}

// collectNewsImages gathers the document-wide pool of news-flavored images:
// those whose alt text, parent text, or source path contains a news-related
// keyword.
func (e *Extractor) collectNewsImages(doc *goquery.Document) []poolImage {
	var pool []poolImage

	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if strings.TrimSpace(src) == "" {
			return
		}

		alt := img.AttrOr("alt", "")
		parentText := img.Parent().Text()

		for _, keyword := range newsImageKeywords {
			if containsFold(alt, keyword) || containsFold(parentText, keyword) || containsFold(src, keyword) {
				pool = append(pool, poolImage{src: e.absoluteURL(src), alt: alt})
				return
			}
		}
	})

	return pool
}

// bestPoolImage returns the first pool image whose alt text overlaps the
// title, or empty when nothing scores -- guessing an unrelated image is
// worse than no image.
func bestPoolImage(pool []poolImage, title string) string {
	for _, candidate := range pool {
		if ScoreAltText(candidate.alt, title) {
			return candidate.src
		}
	}
	return ""
}

// ScoreAltText reports whether an image's alt text plausibly describes the
// titled item: either the title contains the alt text, or the alt text
// contains the title's first 20 characters. The heuristic is deliberately
// fuzzy and isolated here so it can be replaced without touching the
// extraction control flow.
func ScoreAltText(alt, title string) bool {
	alt = strings.ToLower(strings.TrimSpace(alt))
	title = strings.ToLower(strings.TrimSpace(title))
	if alt == "" || title == "" {
		return false
	}

	if strings.Contains(title, alt) {
		return true
	}

	prefix := []rune(title)
	if len(prefix) > 20 {
		prefix = prefix[:20]
	}
	return strings.Contains(alt, string(prefix))
}
