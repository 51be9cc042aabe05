package scraper

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/cache"
)

// Fetcher retrieves calendar pages over HTTP, gated by the document cache:
// a URL fetched within the cache TTL is served from memory without touching
// the network.
type Fetcher struct {
	httpClient *http.Client
	cache      *cache.Cache
	userAgent  string
}

func NewFetcher(httpClient *http.Client, cache *cache.Cache, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		cache:      cache,
		userAgent:  userAgent,
	}
}

// Fetch returns the document at url and whether it was served from cache.
func (f *Fetcher) Fetch(ctx context.Context, url string, timeout time.Duration) (string, bool, error) {
	key := cacheKey(url)

	if html, ok := f.cache.Get(key); ok {
		slog.Debug("Cache hit", "url", url)
		return html, true, nil
	}
	slog.Debug("Cache miss, fetching", "url", url)

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return "", false, &FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", false, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, &FetchError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	html := string(data)
	f.cache.Set(key, html)

	return html, false, nil
}

// CacheStats exposes the document cache hit and miss counters.
func (f *Fetcher) CacheStats() (hits, misses int) {
	return f.cache.Stats()
}

// cacheKey derives a stable key from the fetch target so repeated runs
// within the TTL window reuse the same entry.
func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("html:%x", hash[:8])
}
