// Package pipeline composes fetching, extraction, and enrichment into one
// run: fetch the listing page, pick an extraction strategy, backfill missing
// fields from each item's article page, and return a bounded, ordered
// result. A run never surfaces an error -- scraping variance degrades to an
// empty or partially-filled result.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/pevans/nintendonews/news"
	"github.com/pevans/nintendonews/ratelimit"
	"github.com/pevans/nintendonews/scrape"
)

// Pipeline runs the listing-to-items flow against one source.
type Pipeline struct {
	fetcher    *ratelimit.Fetcher
	extractor  *scrape.Extractor
	listingURL string
	log        *slog.Logger
}

// New creates a pipeline. A nil logger uses slog's default.
func New(fetcher *ratelimit.Fetcher, extractor *scrape.Extractor, listingURL string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		fetcher:    fetcher,
		extractor:  extractor,
		listingURL: listingURL,
		log:        logger,
	}
}

// Run fetches the listing page and returns at most limit items. The listing
// fetch always completes before any enrichment fetch begins, and enrichment
// fetches run strictly sequentially in item order, so the rate limiter's
// spacing bounds the whole run. Any failure -- including a panic inside
// extraction -- yields an empty slice: callers always receive a well-formed
// result and never an error.
func (p *Pipeline) Run(ctx context.Context, limit int) (items []news.Item) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pipeline run aborted", "panic", r)
			items = []news.Item{}
		}
	}()

	html, err := p.fetcher.Fetch(ctx, p.listingURL)
	if err != nil {
		// A failed listing fetch is "no items found", not a crash.
		p.log.Warn("listing fetch failed", "url", p.listingURL, "error", err)
		return []news.Item{}
	}

	items = p.extractor.ExtractNews(html, limit)
	if len(items) == 0 {
		p.log.Info("no items extracted from listing", "url", p.listingURL)
		return []news.Item{}
	}
	p.log.Debug("extracted listing items", "count", len(items))

	for i := range items {
		p.enrich(ctx, &items[i])
		items[i] = normalizeTitle(items[i])
	}

	return items
}

// enrich visits the item's article page to backfill a missing image or a
// placeholder description. The image is filled only if currently empty; the
// description is replaced only while it still holds the placeholder and the
// article produced something better. A fetch failure leaves the item as-is.
func (p *Pipeline) enrich(ctx context.Context, item *news.Item) {
	if item.Link == "" {
		return
	}
	if item.ImageURL != "" && item.Description != news.DefaultDescription {
		return
	}

	html, err := p.fetcher.Fetch(ctx, item.Link)
	if err != nil {
		p.log.Debug("enrichment fetch failed", "url", item.Link, "error", err)
		return
	}

	details := p.extractor.ExtractArticleDetails(html)

	if item.ImageURL == "" && details.ImageURL != "" {
		item.ImageURL = details.ImageURL
	}
	if (item.Description == "" || item.Description == news.DefaultDescription) &&
		details.Description != "" && details.Description != news.DefaultDescription {
		item.Description = details.Description
	}
}
