// Package news defines the data model shared by the extraction and
// orchestration layers. Every value is transient: items are created fresh per
// pipeline run and handed to the caller without any cross-call caching.
package news

import "github.com/google/uuid"

// Placeholder values substituted when a genuine field cannot be extracted.
// DefaultDescription doubles as the enrichment trigger: the pipeline only
// visits an item's article page while its description still holds this value.
const (
	PlaceholderTitle   = "(No title)"
	DefaultDescription = "Nintendo news update"
)

// Item is one entry extracted from the listing page. Link is always an
// absolute URL; Date is the raw string found in the document (possibly
// empty); ImageURL and Description may hold their placeholder defaults.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Date        string    `json:"date,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description"`
}

// NewItem creates an item with a fresh identity and the title placeholder
// applied when the extracted title is empty.
func NewItem(title, link, date, imageURL, description string) Item {
	if title == "" {
		title = PlaceholderTitle
	}
	return Item{
		ID:          uuid.New(),
		Title:       title,
		Link:        link,
		Date:        date,
		ImageURL:    imageURL,
		Description: description,
	}
}

// ArticleDetails holds the fields recoverable from an item's own article
// page. Both fields are defaultable fallbacks used only to fill gaps in an
// Item.
type ArticleDetails struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// DefaultArticleDetails returns the values used when an article page cannot
// be fetched or parsed.
func DefaultArticleDetails() ArticleDetails {
	return ArticleDetails{
		ImageURL:    "",
		Description: DefaultDescription,
	}
}
