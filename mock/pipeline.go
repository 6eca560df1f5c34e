package mock

import (
	"context"
	"io"
	"net/url"

	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ webmd.Parser         = (*Parser)(nil)
	_ webmd.Sanitizer      = (*Sanitizer)(nil)
	_ webmd.MetadataReader = (*MetadataReader)(nil)
	_ webmd.Extractor      = (*Extractor)(nil)
	_ webmd.Renderer       = (*Renderer)(nil)
	_ webmd.PageConverter  = (*PageConverter)(nil)
	_ webmd.BatchConverter = (*BatchConverter)(nil)
)

// Parser is a mock implementation of webmd.Parser.
type Parser struct {
	ParseFn func(r io.Reader, contentType string) (*html.Node, error)
}

func (p *Parser) Parse(r io.Reader, contentType string) (*html.Node, error) {
	return p.ParseFn(r, contentType)
}

// Sanitizer is a mock implementation of webmd.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(doc *html.Node) *html.Node
}

func (s *Sanitizer) Sanitize(doc *html.Node) *html.Node {
	return s.SanitizeFn(doc)
}

// MetadataReader is a mock implementation of webmd.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(doc *html.Node) webmd.Metadata
}

func (r *MetadataReader) ReadMetadata(doc *html.Node) webmd.Metadata {
	return r.ReadMetadataFn(doc)
}

// Extractor is a mock implementation of webmd.Extractor.
type Extractor struct {
	ExtractFn func(doc *html.Node) (*html.Node, error)
}

func (e *Extractor) Extract(doc *html.Node) (*html.Node, error) {
	return e.ExtractFn(doc)
}

// Renderer is a mock implementation of webmd.Renderer.
type Renderer struct {
	RenderFn func(root *html.Node, base *url.URL, cfg webmd.Config) (string, error)
}

func (r *Renderer) Render(root *html.Node, base *url.URL, cfg webmd.Config) (string, error) {
	return r.RenderFn(root, base, cfg)
}

// PageConverter is a mock implementation of webmd.PageConverter.
type PageConverter struct {
	ConvertResourceFn func(res *webmd.Resource, cfg webmd.Config) (*webmd.Page, error)
}

func (c *PageConverter) ConvertResource(res *webmd.Resource, cfg webmd.Config) (*webmd.Page, error) {
	return c.ConvertResourceFn(res, cfg)
}

// BatchConverter is a mock implementation of webmd.BatchConverter.
type BatchConverter struct {
	ConvertAllFn func(ctx context.Context, urls []string, cfg webmd.Config, progress webmd.ProgressFunc) ([]*webmd.Page, error)
}

func (c *BatchConverter) ConvertAll(ctx context.Context, urls []string, cfg webmd.Config, progress webmd.ProgressFunc) ([]*webmd.Page, error) {
	return c.ConvertAllFn(ctx, urls, cfg, progress)
}
