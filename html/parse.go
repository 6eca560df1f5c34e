// Package html implements the native conversion engine on top of
// golang.org/x/net/html: a charset-aware parser, a density-scoring content
// extractor and a rule-table Markdown serializer.
package html

import (
	"io"

	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements webmd.Parser at compile time.
var _ webmd.Parser = (*Parser)(nil)

// Parser builds document trees with golang.org/x/net/html.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an HTML document from r. The body is decoded to UTF-8 using
// the charset from contentType, a <meta> declaration or content sniffing.
func (p *Parser) Parse(r io.Reader, contentType string) (*html.Node, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "failed to detect charset: %v", err)
	}

	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
