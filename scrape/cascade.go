package scrape

import "github.com/PuerkitoBio/goquery"

// DefaultCandidates lists the structural selectors observed across the
// source's historical layouts, in priority order. The list is fixed: the
// cascade carries no memory, so a layout that matched yesterday earns no
// preference today.
var DefaultCandidates = []string{
	"article.news-item",
	".news-list .news-item",
	"article.news-article",
	"section.whats-new article",
	".card--news",
}

// SelectDocument evaluates each candidate selector in order against the
// document and returns the first one with a strictly positive match count,
// together with its matched nodes. ok is false when every candidate yields
// zero matches, which signals the caller to use the heuristic fallback.
func SelectDocument(doc *goquery.Document, candidates []string) (selector string, nodes *goquery.Selection, ok bool) {
	for _, candidate := range candidates {
		matched := doc.Find(candidate)
		if matched.Length() > 0 {
			return candidate, matched, true
		}
	}

	return "", nil, false
}
