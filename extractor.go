package webmd

import (
	"io"

	"golang.org/x/net/html"
)

// Parser builds a document tree from raw HTML.
type Parser interface {
	// Parse reads an HTML document from r. The content type, when known,
	// selects the character encoding. Returns EPARSE if the input cannot
	// be turned into a tree.
	Parse(r io.Reader, contentType string) (*html.Node, error)
}

// Sanitizer strips non-content nodes from a document tree.
type Sanitizer interface {
	// Sanitize removes script, style and comment nodes and returns the
	// tree. It never fails.
	Sanitize(doc *html.Node) *html.Node
}

// MetadataReader reads document-level metadata.
type MetadataReader interface {
	ReadMetadata(doc *html.Node) Metadata
}

// Extractor selects the main content of a document, removing boilerplate.
type Extractor interface {
	// Extract returns the single element holding the page's readable
	// content. Returns EEXTRACT when no part of the document qualifies.
	Extract(doc *html.Node) (*html.Node, error)
}

// LinkExtractor finds the pages a document links to.
type LinkExtractor interface {
	// ExtractLinks returns the absolute URLs of same-site pages linked
	// from rawHTML, in document order and without duplicates.
	ExtractLinks(rawHTML []byte, baseURL string) ([]string, error)
}
