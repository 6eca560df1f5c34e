package webmd

import (
	"context"
	"time"
)

// Page is the result of converting one HTML document.
type Page struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	ContentHash string    `json:"contentHash,omitempty"`
	ConvertedAt time.Time `json:"convertedAt,omitempty"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// Metadata holds document-level information read from the <head>.
type Metadata struct {
	Title       string
	Description string
	Language    string

	// BaseHref is the raw href of the document's <base> element, if any.
	BaseHref string
}

// Progress reports progress during batch conversion.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Cached    bool
	Error     error
}

// ProgressFunc is called as pages are processed.
type ProgressFunc func(Progress)

// PageCache stores converted pages keyed by URL.
type PageCache interface {
	// FindPage returns the cached page for url.
	// Returns ENOTFOUND if the page has not been cached.
	FindPage(ctx context.Context, url string) (*Page, error)

	// SavePage inserts or replaces the cached page for page.URL.
	SavePage(ctx context.Context, page *Page) error
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// PageWriter writes a single page to its final destination.
type PageWriter interface {
	WritePage(ctx context.Context, page *Page) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
