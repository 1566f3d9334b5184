package ratelimit

import (
	"context"
	"fmt"
)

// FetchFunc is the transport capability the rate limiter wraps: fetch a URL,
// return its body as HTML text. The limiter never constructs a transport
// itself; it only imposes pacing around one.
type FetchFunc func(ctx context.Context, url string) (string, error)

// NetworkError reports a transport or HTTP failure for a specific URL. It is
// the one error class surfaced to callers; a queued request cancelled by the
// caller's context is reported the same way. Match with errors.As.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Fetcher paces an underlying fetch function through a token bucket.
type Fetcher struct {
	bucket *Bucket
	fetch  FetchFunc
}

// NewFetcher wraps fetch with the bucket's pacing policy.
func NewFetcher(bucket *Bucket, fetch FetchFunc) *Fetcher {
	return &Fetcher{bucket: bucket, fetch: fetch}
}

// Fetch acquires a dispatch slot, performs the request, and releases the
// slot when the response resolves. Failures propagate as *NetworkError; no
// retries happen here -- retry policy, if any, belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.bucket.Acquire(ctx); err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}
	defer f.bucket.Release()

	html, err := f.fetch(ctx, url)
	if err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}

	return html, nil
}
