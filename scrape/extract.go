package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pevans/nintendonews/news"
)

// ExtractStructured builds items from the nodes matched by a cascade
// selector, up to limit. Each field is derived through an ordered fallback
// chain; a node whose title and description both come up empty is dropped
// silently and does not count toward limit. Iteration stops once limit is
// reached -- excess nodes are never processed.
func (e *Extractor) ExtractStructured(nodes *goquery.Selection, limit int) []news.Item {
	items := make([]news.Item, 0, limit)

	nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
		if limit > 0 && len(items) >= limit {
			return false
		}

		title := firstText(node, "h3", "h2", ".title", ".heading")
		description := firstText(node, ".description", "p")

		// Both empty means the node carries nothing worth keeping.
		if title == "" && description == "" {
			return true
		}

		if description == "" {
			description = news.DefaultDescription
		}

		items = append(items, news.NewItem(
			title,
			e.extractLink(node),
			extractDate(node),
			e.extractImage(node),
			description,
		))
		return true
	})

	return items
}

// firstText returns the normalized text of the first selector in the chain
// that yields a non-empty match within node.
func firstText(node *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if text := normalizeText(node.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractLink finds the node's link target and resolves it against the
// source origin. The node itself may be the anchor, or the anchor may be
// nested anywhere inside it.
func (e *Extractor) extractLink(node *goquery.Selection) string {
	if href, ok := node.Attr("href"); ok {
		return e.absoluteURL(href)
	}
	if href, ok := node.Find("a[href]").First().Attr("href"); ok {
		return e.absoluteURL(href)
	}
	return ""
}

// extractDate returns the raw date string for a node: a time element's
// datetime attribute, else its text, else a "date" class element's text.
// The value is stored as found; no parsing happens on this path.
func extractDate(node *goquery.Selection) string {
	timeElem := node.Find("time").First()
	if datetime, ok := timeElem.Attr("datetime"); ok {
		if datetime = strings.TrimSpace(datetime); datetime != "" {
			return datetime
		}
	}
	if text := normalizeText(timeElem.Text()); text != "" {
		return text
	}
	return normalizeText(node.Find(".date").First().Text())
}

// extractImage resolves a node's image through the chain: direct image
// source, else an image nested in an "image" container, else the first URL
// of a responsive srcset, else empty. Path-only sources are rewritten to
// absolute URLs under the source origin.
func (e *Extractor) extractImage(node *goquery.Selection) string {
	if src, ok := node.Find("img[src]").First().Attr("src"); ok {
		return e.absoluteURL(src)
	}
	if src, ok := node.Find(".image img[src]").First().Attr("src"); ok {
		return e.absoluteURL(src)
	}
	if srcset, ok := node.Find("img[srcset]").First().Attr("srcset"); ok {
		return e.absoluteURL(firstSrcsetURL(srcset))
	}
	return ""
}

// firstSrcsetURL extracts the URL of the first entry in a srcset attribute,
// discarding its width/density descriptor.
func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
