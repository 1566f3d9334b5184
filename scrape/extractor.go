// Package scrape turns the raw HTML of the source's listing and article
// pages into news items. The listing page carries no stable markup contract
// (class names change across the source's deployments), so extraction runs a
// cascade of candidate selectors at parse time and falls back to a heuristic
// anchor scan when none of them match. Everything here is pure: no network,
// no shared state, results depend only on the input document.
package scrape

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pevans/nintendonews/news"
)

// ReadMoreMarker is the anchor-text phrase the heuristic fallback keys on.
// Matching is case-insensitive since the source has shipped both "Read more"
// and "READ MORE" across redesigns.
const ReadMoreMarker = "Read more"

// Extractor extracts news items relative to a single source origin. The
// origin is used to rewrite relative links and path-only image sources to
// absolute URLs.
type Extractor struct {
	origin *url.URL

	// Candidates holds the structural selectors tried in priority order.
	// Recomputed per call against the current document; no selector is
	// remembered across invocations.
	Candidates []string

	// Marker is the read-more phrase used by the fallback anchor scan.
	Marker string
}

// New creates an extractor for the given source URL. The URL must be
// absolute and use http or https, since it anchors all link resolution.
func New(sourceURL string) (*Extractor, error) {
	origin, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return nil, fmt.Errorf("source URL must use http or https scheme")
	}
	if origin.Host == "" {
		return nil, fmt.Errorf("source URL must include a host")
	}

	return &Extractor{
		origin:     origin,
		Candidates: DefaultCandidates,
		Marker:     ReadMoreMarker,
	}, nil
}

// ExtractNews parses the listing page and returns at most limit items in
// document order (or inferred recency order when the heuristic fallback
// runs). Malformed input degrades to an empty result rather than an error.
func (e *Extractor) ExtractNews(html string, limit int) []news.Item {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	if _, nodes, ok := SelectDocument(doc, e.Candidates); ok {
		return e.ExtractStructured(nodes, limit)
	}

	return e.ExtractFallback(doc, limit)
}

// absoluteURL resolves ref against the source origin. Already-absolute URLs
// pass through unchanged; empty or unparseable refs collapse to "".
func (e *Extractor) absoluteURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	return e.origin.ResolveReference(u).String()
}

// normalizeText collapses runs of whitespace to single spaces, matching how
// extracted element text is cleaned everywhere in this package.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// removeFold removes the first case-insensitive occurrence of substr from s,
// preserving the surrounding text exactly as it appeared.
func removeFold(s, substr string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(substr))
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(substr):]
}
