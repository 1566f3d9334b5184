package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pevans/nintendonews/news"
)

// TestExtractArticleDetails_OpenGraph verifies the metadata-first path.
func TestExtractArticleDetails_OpenGraph(t *testing.T) {
	e := newTestExtractor(t)

	details := e.ExtractArticleDetails(`
		<html><head>
			<meta property="og:image" content="https://cdn.example.com/og.jpg">
			<meta property="og:description" content="The canonical summary.">
			<meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
			<meta name="description" content="The generic summary.">
		</head><body><img src="/first.jpg"></body></html>
	`)

	assert.Equal(t, "https://cdn.example.com/og.jpg", details.ImageURL)
	assert.Equal(t, "The canonical summary.", details.Description)
}

// TestExtractArticleDetails_TwitterImage verifies the Twitter card image is
// used when Open Graph is absent.
func TestExtractArticleDetails_TwitterImage(t *testing.T) {
	e := newTestExtractor(t)

	details := e.ExtractArticleDetails(`
		<html><head>
			<meta name="twitter:image" content="/tw.jpg">
		</head><body></body></html>
	`)

	assert.Equal(t, "https://news.example.com/tw.jpg", details.ImageURL)
}

// TestExtractArticleDetails_StructuralImageChain verifies the structural
// image fallbacks: article header, article content, then any image.
func TestExtractArticleDetails_StructuralImageChain(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"article header",
			`<div class="article-header"><img src="/header.jpg"></div>
			 <div class="article-content"><img src="/content.jpg"></div>`,
			"https://news.example.com/header.jpg",
		},
		{
			"article content",
			`<img src="/stray.jpg"><div class="article-content"><img src="/content.jpg"></div>`,
			"https://news.example.com/content.jpg",
		},
		{
			"first image anywhere",
			`<img src="/stray.jpg">`,
			"https://news.example.com/stray.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := e.ExtractArticleDetails("<html><body>" + tt.body + "</body></html>")
			assert.Equal(t, tt.want, details.ImageURL)
		})
	}
}

// TestExtractArticleDetails_DescriptionChain verifies the description
// fallbacks: generic meta, then the first content paragraph.
func TestExtractArticleDetails_DescriptionChain(t *testing.T) {
	e := newTestExtractor(t)

	withMeta := e.ExtractArticleDetails(`
		<html><head><meta name="description" content="Generic meta text."></head>
		<body><div class="article-content"><p>First paragraph.</p></div></body></html>
	`)
	assert.Equal(t, "Generic meta text.", withMeta.Description)

	withParagraph := e.ExtractArticleDetails(`
		<html><body><div class="article-content">
			<p>  First   paragraph.  </p><p>Second paragraph.</p>
		</div></body></html>
	`)
	assert.Equal(t, "First paragraph.", withParagraph.Description)
}

// TestExtractArticleDetails_NothingRecognized verifies the exact defaults on
// a page lacking every recognized selector.
func TestExtractArticleDetails_NothingRecognized(t *testing.T) {
	e := newTestExtractor(t)

	details := e.ExtractArticleDetails(`<html><body><p class="nav">Menu</p></body></html>`)

	assert.Equal(t, news.ArticleDetails{
		ImageURL:    "",
		Description: "Nintendo news update",
	}, details)
}

// TestExtractArticleDetails_MalformedInput verifies degraded defaults for
// input that barely parses.
func TestExtractArticleDetails_MalformedInput(t *testing.T) {
	e := newTestExtractor(t)

	assert.Equal(t, news.DefaultArticleDetails(), e.ExtractArticleDetails(""))
	assert.Equal(t, news.DefaultArticleDetails(), e.ExtractArticleDetails("<<<%%%"))
}
