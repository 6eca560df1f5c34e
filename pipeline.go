package webmd

import (
	"bytes"
	"io"
	"net/url"
	"strings"
)

// Pipeline runs the conversion chain: parse, sanitize, extract, render,
// classify code fences and normalize. A Pipeline holds no per-conversion
// state and may be shared by concurrent callers as long as its components
// are safe for concurrent use.
type Pipeline struct {
	Parser    Parser
	Sanitizer Sanitizer
	Extractor Extractor
	Renderer  Renderer

	// Metadata is optional. When set it provides the page title and the
	// document's <base href>.
	Metadata MetadataReader
}

// Ensure Pipeline implements PageConverter at compile time.
var _ PageConverter = (*Pipeline)(nil)

// Convert transforms a raw HTML document into Markdown. Relative links are
// resolved against baseURL, which may be empty.
func (p *Pipeline) Convert(rawHTML, baseURL string, cfg Config) (string, error) {
	page, err := p.ConvertPage(rawHTML, baseURL, cfg)
	if err != nil {
		return "", err
	}
	return page.Markdown, nil
}

// ConvertPage is like Convert but also returns the document title.
func (p *Pipeline) ConvertPage(rawHTML, baseURL string, cfg Config) (*Page, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, Errorf(EINVALID, "empty HTML input")
	}
	return p.convert(strings.NewReader(rawHTML), "", baseURL, cfg)
}

// ConvertResource converts a fetched resource, using its content type to
// decode the body and its URL as the base for links.
func (p *Pipeline) ConvertResource(res *Resource, cfg Config) (*Page, error) {
	if res == nil || len(bytes.TrimSpace(res.Body)) == 0 {
		return nil, Errorf(EINVALID, "empty HTML input")
	}
	return p.convert(bytes.NewReader(res.Body), res.ContentType, res.URL, cfg)
}

func (p *Pipeline) convert(r io.Reader, contentType, baseURL string, cfg Config) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := p.Parser.Parse(r, contentType)
	if err != nil {
		return nil, err
	}
	doc = p.Sanitizer.Sanitize(doc)

	page := &Page{URL: baseURL}
	if p.Metadata != nil {
		meta := p.Metadata.ReadMetadata(doc)
		page.Title = meta.Title
		base = resolveBaseHref(base, meta.BaseHref)
	}

	root, err := p.Extractor.Extract(doc)
	if err != nil {
		return nil, err
	}

	markdown, err := p.Renderer.Render(root, base, cfg)
	if err != nil {
		return nil, err
	}

	page.Markdown = Normalize(Classify(markdown, cfg.Fence))
	return page, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base URL: %v", err)
	}
	return u, nil
}

// resolveBaseHref applies a document's <base href> on top of the URL the
// document was retrieved from.
func resolveBaseHref(base *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" {
		return base
	}
	ref, err := url.Parse(href)
	if err != nil {
		return base
	}
	if base == nil {
		if ref.IsAbs() {
			return ref
		}
		return nil
	}
	return base.ResolveReference(ref)
}
