// Package readability adapts go-readability to webmd.Extractor.
package readability

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webmd"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements webmd.Extractor at compile time.
var _ webmd.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs Mozilla's Readability algorithm over doc and returns the
// article as a detached <div>. doc itself is not modified.
func (e *Extractor) Extract(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, webmd.Errorf(webmd.EINVALID, "nil document")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, webmd.Errorf(webmd.EINTERNAL, "failed to render document: %v", err)
	}

	article, err := readability.FromReader(&buf, nil)
	if err != nil {
		return nil, webmd.Errorf(webmd.EEXTRACT, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, webmd.Errorf(webmd.EEXTRACT, "no readable content found")
	}

	return parseContent(article.Content)
}

// parseContent turns the article HTML into a tree rooted at a new <div>.
func parseContent(content string) (*html.Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(content), root)
	if err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "failed to parse article: %v", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}
