package webmd

import (
	"context"
	"net/url"

	"golang.org/x/net/html"
)

// Renderer serializes an HTML subtree into Markdown.
type Renderer interface {
	// Render converts the subtree rooted at root. Relative links are
	// resolved against base, which may be nil.
	Render(root *html.Node, base *url.URL, cfg Config) (string, error)
}

// PageConverter converts fetched resources into pages.
type PageConverter interface {
	ConvertResource(res *Resource, cfg Config) (*Page, error)
}

// BatchConverter fetches and converts many pages.
type BatchConverter interface {
	// ConvertAll returns one page per successfully converted URL, in the
	// order of urls. Pages that fail are reported through progress and
	// left out. Only context cancellation aborts the batch.
	ConvertAll(ctx context.Context, urls []string, cfg Config, progress ProgressFunc) ([]*Page, error)
}
