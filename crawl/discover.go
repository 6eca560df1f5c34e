package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/webmd"
)

// Discovery limits applied when Discoverer fields are unset.
const (
	DefaultMaxPages = 1000
	DefaultMaxDepth = 5

	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Ensure Discoverer implements webmd.URLSource at compile time.
var _ webmd.URLSource = (*Discoverer)(nil)

// Discoverer lists the pages of a site. It uses the sitemap when one is
// published and otherwise follows same-site links breadth-first from the
// site URL.
type Discoverer struct {
	Sitemaps webmd.SitemapService

	// Fetcher and Links enable the link walk. Without them Discover
	// returns only sitemap URLs.
	Fetcher webmd.Fetcher
	Links   webmd.LinkExtractor

	// RateLimiter is optional and applied per host during the link walk.
	RateLimiter webmd.DomainLimiter

	Filter      *webmd.URLFilter
	MaxPages    int
	MaxDepth    int
	RetryDelays []time.Duration
}

// Discover returns at most MaxPages URLs for siteURL.
func (d *Discoverer) Discover(ctx context.Context, siteURL string) ([]string, error) {
	start, err := url.Parse(siteURL)
	if err != nil || start.Host == "" {
		return nil, webmd.Errorf(webmd.EINVALID, "invalid site URL %q", siteURL)
	}

	if d.Sitemaps != nil {
		urls, err := d.Sitemaps.DiscoverURLs(ctx, siteURL, d.Filter)
		if err != nil && !isMissingSitemap(err) {
			return nil, err
		}
		if len(urls) > 0 {
			return limit(urls, d.maxPages()), nil
		}
	}

	if d.Fetcher == nil || d.Links == nil {
		return nil, nil
	}
	return d.walk(ctx, start)
}

// walk follows links from start in breadth-first order, staying on the
// same host and under the start URL's directory.
func (d *Discoverer) walk(ctx context.Context, start *url.URL) ([]string, error) {
	maxPages := d.maxPages()
	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	prefix := pathPrefix(start.Path)

	frontier := NewFrontier(uint(maxPages)*10, frontierFalsePositiveRate)
	frontier.Push(Link{URL: start.String()})

	var urls []string
	for len(urls) < maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		link, ok := frontier.Pop()
		if !ok {
			break
		}

		if d.RateLimiter != nil {
			if err := d.RateLimiter.Wait(ctx, start.Host); err != nil {
				return nil, err
			}
		}

		res, err := FetchWithRetryDelays(ctx, link.URL, d.Fetcher.Fetch, nil, delays)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		if d.Filter.Match(link.URL) {
			urls = append(urls, link.URL)
		}

		if link.Depth >= maxDepth {
			continue
		}
		found, err := d.Links.ExtractLinks(res.Body, res.URL)
		if err != nil {
			continue
		}
		for _, f := range found {
			u, err := url.Parse(f)
			if err != nil || u.Host != start.Host || !strings.HasPrefix(u.Path, prefix) {
				continue
			}
			frontier.Push(Link{URL: f, Depth: link.Depth + 1})
		}
	}
	return urls, nil
}

func (d *Discoverer) maxPages() int {
	if d.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return d.MaxPages
}

// isMissingSitemap reports whether err means the site publishes no
// sitemap, as opposed to a sitemap that failed to load.
func isMissingSitemap(err error) bool {
	code := webmd.ErrorCode(err)
	return code == webmd.ENOTFOUND || (code == webmd.EFETCH && !webmd.IsTransient(err))
}

func limit(urls []string, n int) []string {
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}

// pathPrefix returns the directory part of a URL path: /docs/intro → /docs/.
func pathPrefix(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "/"
	}
	return p[:i+1]
}
