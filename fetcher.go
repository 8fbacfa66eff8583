package webext

import "context"

// Fetcher retrieves the raw HTML of a reference page.
type Fetcher interface {
	// Fetch returns the page text for url. Repeated calls with the same URL
	// within one run return the same content when a cache is in front.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain of
	// pageURL. Returns an error if the context is canceled or pageURL
	// has no domain.
	Wait(ctx context.Context, pageURL string) error
}
