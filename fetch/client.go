// Package fetch provides the default HTTP transport behind the rate
// limiter. The core never constructs this itself; callers inject Client.Get
// (or any other FetchFunc) when wiring a pipeline.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies this scraper to the source site.
const DefaultUserAgent = "nintendonews/1.0 (news listing scraper)"

// DefaultTimeout bounds a single request on this transport. The pipeline
// itself defines no timeout; this is the transport's own safety bound.
const DefaultTimeout = 10 * time.Second

// Client fetches pages over HTTP with a fixed User-Agent and timeout.
type Client struct {
	http *resty.Client
}

// NewClient creates a transport client. Empty or non-positive arguments fall
// back to the defaults.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)

	return &Client{http: client}
}

// Get fetches the URL and returns the response body as HTML text. Any
// non-200 status is an error; the rate limiter wrapping this call turns it
// into a NetworkError for the pipeline.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode())
	}

	return resp.String(), nil
}
