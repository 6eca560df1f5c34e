package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/webmd"
	"github.com/klauspost/compress/gzip"
)

// MaxSitemapBytes is the largest sitemap accepted, before or after
// decompression.
const MaxSitemapBytes = 50 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// Ensure SitemapService implements webmd.SitemapService.
var _ webmd.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from robots.txt and sitemap XML.
// Every request goes through a webmd.Fetcher.
type SitemapService struct {
	fetcher webmd.Fetcher
	maxURLs int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapFetcher sets the fetcher used for robots.txt and sitemaps.
// Defaults to NewSitemapFetcher().
func WithSitemapFetcher(f webmd.Fetcher) SitemapOption {
	return func(s *SitemapService) {
		s.fetcher = f
	}
}

// WithMaxURLs stops discovery once n page URLs have been collected;
// sitemaps not yet visited are never fetched. Zero means no limit.
func WithMaxURLs(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxURLs = n
	}
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(opts ...SitemapOption) *SitemapService {
	s := &SitemapService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = NewSitemapFetcher()
	}
	return s
}

// NewSitemapFetcher returns a Fetcher for sitemaps: it accepts gzip bodies
// and documents up to MaxSitemapBytes. opts are applied after those.
func NewSitemapFetcher(opts ...Option) *Fetcher {
	defaults := []Option{
		WithMaxBytes(MaxSitemapBytes),
		WithMediaTypes("application/gzip", "application/x-gzip", "application/octet-stream"),
	}
	return NewFetcher(append(defaults, opts...)...)
}

// DiscoverURLs lists the pages in the sitemaps of siteURL's host, in
// sitemap order and without duplicates. Sitemaps declared in robots.txt
// are used when present, otherwise /sitemap.xml. A site with neither
// yields an empty slice.
//
// When siteURL has a non-root path (e.g. https://example.com/docs/), only
// pages under that path are kept.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *webmd.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		return nil, webmd.Errorf(webmd.EINVALID, "invalid site URL %q", siteURL)
	}

	c := &collector{
		fetcher: s.fetcher,
		section: sectionPrefix(base.Path),
		filter:  filter,
		max:     s.maxURLs,
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
		urls:    []string{},
	}

	declared, err := s.robotsSitemaps(ctx, base)
	if err != nil {
		return nil, err
	}
	if len(declared) > 0 {
		for _, loc := range declared {
			if err := c.visit(ctx, loc); err != nil {
				return nil, err
			}
		}
		return c.urls, nil
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	c.visited[fallback] = true
	root, err := c.load(ctx, fallback)
	if isMissing(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.walk(ctx, root); err != nil {
		return nil, err
	}
	return c.urls, nil
}

// robotsSitemaps returns the Sitemap: directives of the site's robots.txt.
// An unreachable robots.txt declares nothing.
func (s *SitemapService) robotsSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	res, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, nil
	}

	var locs []string
	sc := bufio.NewScanner(bytes.NewReader(res.Body))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if loc := strings.TrimSpace(value); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// isMissing reports whether err means the resource does not exist, as
// opposed to a failure worth surfacing.
func isMissing(err error) bool {
	var fe *webmd.FetchError
	return errors.As(err, &fe) && fe.StatusCode != 0 && !webmd.IsTransient(err)
}

// collector walks sitemaps depth-first and keeps the page URLs that fall
// under the section prefix and pass the filter, until max is reached.
type collector struct {
	fetcher webmd.Fetcher
	section string
	filter  *webmd.URLFilter
	max     int

	visited map[string]bool // sitemap locations
	seen    map[string]bool // page URLs
	urls    []string
}

func (c *collector) full() bool {
	return c.max > 0 && len(c.urls) >= c.max
}

// visit loads one sitemap or sitemap index. Each location is fetched at
// most once, which also breaks index cycles.
func (c *collector) visit(ctx context.Context, loc string) error {
	if c.full() || c.visited[loc] {
		return nil
	}
	c.visited[loc] = true
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := c.load(ctx, loc)
	if err != nil {
		return err
	}
	return c.walk(ctx, root)
}

// walk follows a sitemap index into its children or collects the pages of
// a urlset.
func (c *collector) walk(ctx context.Context, root *etree.Element) error {
	if root.Tag == "sitemapindex" {
		for _, child := range locations(root, "sitemap") {
			if err := c.visit(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, u := range locations(root, "url") {
		if c.full() {
			break
		}
		c.add(u)
	}
	return nil
}

func (c *collector) add(u string) {
	if c.seen[u] {
		return
	}
	c.seen[u] = true
	if inSection(u, c.section) && c.filter.Match(u) {
		c.urls = append(c.urls, u)
	}
}

// load fetches and parses a sitemap, decompressing gzip bodies.
func (c *collector) load(ctx context.Context, loc string) (*etree.Element, error) {
	res, err := c.fetcher.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}
	body, err := decompress(res.Body)
	if err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "decompressing sitemap %s: %v", loc, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "parsing sitemap %s: %v", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, webmd.Errorf(webmd.EPARSE, "empty sitemap XML at %s", loc)
	}
	return root, nil
}

// decompress inflates gzip bodies, recognized by their magic bytes rather
// than the URL suffix, and passes anything else through.
func decompress(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, gzipMagic) {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, MaxSitemapBytes+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxSitemapBytes {
		return nil, fmt.Errorf("exceeds %d bytes uncompressed", MaxSitemapBytes)
	}
	return out, nil
}

// locations returns the trimmed <loc> text of every child element named tag.
func locations(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if s := strings.TrimSpace(loc.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// sectionPrefix turns a site path into a directory prefix: "/docs" and
// "/docs/" both become "/docs/". The root path means no restriction.
func sectionPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// inSection reports whether rawURL is the section page itself or lies
// below it. /docs/ covers /docs and /docs/intro but not /documentation.
func inSection(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix) || u.Path == strings.TrimSuffix(prefix, "/")
}
