package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pevans/nintendonews/news"
)

// ExtractArticleDetails pulls a representative image and description from an
// article page, metadata first. It never fails: malformed input or a page
// with none of the recognized structure yields the defaults, so callers can
// merge the result without error handling.
func (e *Extractor) ExtractArticleDetails(html string) news.ArticleDetails {
	details := news.DefaultArticleDetails()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details
	}

	if image := e.articleImage(doc); image != "" {
		details.ImageURL = image
	}
	if description := articleDescription(doc); description != "" {
		details.Description = description
	}

	return details
}

// articleImage resolves the page's image through the chain: Open Graph meta,
// Twitter card meta, an image in the article header, the first image in the
// article content, then the first image anywhere.
func (e *Extractor) articleImage(doc *goquery.Document) string {
	if content := metaContent(doc, `meta[property="og:image"]`); content != "" {
		return e.absoluteURL(content)
	}
	if content := metaContent(doc, `meta[name="twitter:image"]`); content != "" {
		return e.absoluteURL(content)
	}
	if src, ok := doc.Find(".article-header img[src]").First().Attr("src"); ok {
		return e.absoluteURL(src)
	}
	if src, ok := doc.Find(".article-content img[src]").First().Attr("src"); ok {
		return e.absoluteURL(src)
	}
	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		return e.absoluteURL(src)
	}
	return ""
}

// articleDescription resolves the page's description: Open Graph meta, the
// generic description meta, then the first paragraph of the article content.
// Empty means the caller keeps the default placeholder.
func articleDescription(doc *goquery.Document) string {
	if content := metaContent(doc, `meta[property="og:description"]`); content != "" {
		return content
	}
	if content := metaContent(doc, `meta[name="description"]`); content != "" {
		return content
	}
	return normalizeText(doc.Find(".article-content p").First().Text())
}

// metaContent returns the trimmed content attribute of the first element
// matching selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
