// Package crawl provides batch conversion of many pages: URL discovery,
// rate-limited concurrent fetching with retry, and caching of converted
// pages keyed by source and conversion settings.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/webmd"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages converted in parallel when
// Converter.Concurrency is not set.
const DefaultConcurrency = 10

// Ensure Converter implements webmd.BatchConverter at compile time.
var _ webmd.BatchConverter = (*Converter)(nil)

// Converter fetches and converts pages concurrently.
type Converter struct {
	Fetcher webmd.Fetcher
	Pages   webmd.PageConverter

	// Cache is optional. Pages whose source hash matches the cached
	// entry are served from it without converting.
	Cache webmd.PageCache

	// Engine names the extractor and renderer behind Pages. It is part of
	// the cache key, so switching engines reconverts cached pages.
	Engine string

	// RateLimiter is optional and applied per host.
	RateLimiter webmd.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration

	// Now returns the conversion timestamp. Defaults to time.Now.
	Now func() time.Time
}

// convertResult holds the outcome of processing a single URL.
type convertResult struct {
	position int
	url      string
	page     *webmd.Page
	cached   bool
	err      error
}

// ConvertAll converts every URL and returns the successful pages in the
// order of urls. Duplicate URLs are converted once. Per-page failures are
// reported through progress and do not stop the batch.
func (c *Converter) ConvertAll(ctx context.Context, urls []string, cfg webmd.Config, progress webmd.ProgressFunc) ([]*webmd.Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	urls = dedupe(urls)
	if len(urls) == 0 {
		return nil, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan convertResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u, cfg)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]convertResult, len(urls))
	completed := 0
	for result := range resultCh {
		completed++
		results[result.position] = result
		if progress != nil {
			progress(webmd.Progress{
				URL:       result.url,
				Completed: completed,
				Total:     len(urls),
				Cached:    result.cached,
				Error:     result.err,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := make([]*webmd.Page, 0, len(results))
	for _, result := range results {
		if result.err == nil {
			pages = append(pages, result.page)
		}
	}
	return pages, nil
}

// processURL fetches, converts and caches a single URL.
func (c *Converter) processURL(ctx context.Context, position int, rawURL string, cfg webmd.Config) convertResult {
	result := convertResult{
		position: position,
		url:      rawURL,
	}

	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.err = webmd.Errorf(webmd.EINVALID, "invalid URL %q: %v", rawURL, err)
			return result
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	res, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}
	hash := ComputeHash(res.Body, cfg, c.Engine)

	if c.Cache != nil {
		cached, err := c.Cache.FindPage(ctx, rawURL)
		if err == nil && cached.ContentHash == hash {
			result.page = cached
			result.cached = true
			return result
		}
	}

	page, err := c.Pages.ConvertResource(res, cfg)
	if err != nil {
		result.err = err
		return result
	}
	page.URL = rawURL
	page.ContentHash = hash
	page.ConvertedAt = c.now()

	if c.Cache != nil {
		if err := c.Cache.SavePage(ctx, page); err != nil {
			result.err = err
			return result
		}
	}

	result.page = page
	return result
}

func (c *Converter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

// dedupe drops repeated URLs, keeping the first occurrence.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
