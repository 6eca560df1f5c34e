package webmd

import "context"

// Resource is the raw result of retrieving a URL.
type Resource struct {
	// URL is the final URL after redirects. It is the base URL for
	// resolving relative links.
	URL string

	// ContentType is the value of the Content-Type header, used to detect
	// the document's character encoding.
	ContentType string

	Body []byte
}

// Fetcher retrieves raw documents from URLs.
type Fetcher interface {
	// Fetch retrieves the resource at url. Non-2xx responses and transport
	// failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Resource, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
