package mock

import (
	"context"

	"github.com/fwojciec/webmd"
)

var (
	_ webmd.SitemapService = (*SitemapService)(nil)
	_ webmd.URLSource      = (*URLSource)(nil)
	_ webmd.LinkExtractor  = (*LinkExtractor)(nil)
)

// SitemapService is a mock implementation of webmd.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string, filter *webmd.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *webmd.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL, filter)
}

// URLSource is a mock implementation of webmd.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}

// LinkExtractor is a mock implementation of webmd.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(rawHTML []byte, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(rawHTML []byte, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(rawHTML, baseURL)
}
