package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default fetcher settings. Feeds behind CDNs block obvious bot traffic,
// so requests carry browser-like headers.
const (
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "en-US,en;q=0.9"
)

// Accept header values per source type.
const (
	AcceptJSON = "application/json"
	AcceptFeed = "application/rss+xml, application/xml, text/xml, */*"
)

// Fetcher performs HTTP GETs with browser-like headers and a bounded
// per-request timeout.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher with the given request timeout. A zero
// timeout falls back to DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Get fetches the URL and returns the response body. Non-2xx responses
// are errors.
func (f *Fetcher) Get(ctx context.Context, url, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("fetcher new request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		return "", fmt.Errorf("fetcher do request: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("fetcher: unexpected status %d for %s", resp.StatusCode, url)
	}

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", fmt.Errorf("fetcher read body: %w", readErr)
	}

	return string(raw), nil
}
