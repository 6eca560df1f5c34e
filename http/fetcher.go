// Package http implements webmd.Fetcher and webmd.SitemapService over
// plain HTTP. JavaScript is never executed.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/webmd"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched document.
const DefaultMaxBytes = 10 << 20

// DefaultUserAgent identifies webmd to the servers it talks to.
const DefaultUserAgent = "webmd/1.0 (+https://github.com/fwojciec/webmd)"

// Ensure Fetcher implements webmd.Fetcher at compile time.
var _ webmd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string

	// mediaTypes are accepted in addition to text and XML documents.
	mediaTypes []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest response body accepted.
// Defaults to DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMediaTypes accepts responses of the given media types in addition
// to text and XML documents.
func WithMediaTypes(types ...string) Option {
	return func(f *Fetcher) {
		f.mediaTypes = append(f.mediaTypes, types...)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at url. The returned resource carries the
// final URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*webmd.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webmd.Errorf(webmd.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &webmd.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &webmd.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !f.accepts(contentType) {
		return nil, webmd.Errorf(webmd.EINVALID, "unsupported content type %q for %s", contentType, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &webmd.FetchError{URL: url, Err: err}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, webmd.Errorf(webmd.EINVALID, "document at %s exceeds %d bytes", url, f.maxBytes)
	}

	return &webmd.Resource{
		URL:         resp.Request.URL.String(),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// accepts reports whether a response body of contentType is kept: HTML,
// XML, plain text and any configured extra media types. A missing or
// malformed Content-Type is left to charset sniffing.
func (f *Fetcher) accepts(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	if strings.HasPrefix(mediaType, "text/") || strings.HasSuffix(mediaType, "xml") {
		return true
	}
	return slices.Contains(f.mediaTypes, mediaType)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
