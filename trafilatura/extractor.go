// Package trafilatura adapts go-trafilatura to webmd.Extractor.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webmd"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webmd.Extractor at compile time.
var _ webmd.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with the readability and
// dom-distiller fallbacks enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Extract returns trafilatura's content node for doc.
func (e *Extractor) Extract(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, webmd.Errorf(webmd.EINVALID, "nil document")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, webmd.Errorf(webmd.EINTERNAL, "failed to render document: %v", err)
	}

	result, err := trafilatura.Extract(&buf, e.opts)
	if err != nil {
		return nil, webmd.Errorf(webmd.EEXTRACT, "trafilatura: %v", err)
	}
	if result == nil || result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, webmd.Errorf(webmd.EEXTRACT, "no readable content found")
	}
	return result.ContentNode, nil
}
