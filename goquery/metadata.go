package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Ensure MetadataReader implements webmd.MetadataReader at compile time.
var _ webmd.MetadataReader = (*MetadataReader)(nil)

// MetadataReader reads the title, description, language and base href of
// a document.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata prefers Open Graph values over their plain HTML
// counterparts. Missing values are left empty.
func (r *MetadataReader) ReadMetadata(doc *html.Node) webmd.Metadata {
	if doc == nil {
		return webmd.Metadata{}
	}
	d := goquery.NewDocumentFromNode(doc)

	title := metaContent(d, `meta[property="og:title"]`)
	if title == "" {
		title = clean(d.Find("title").First().Text())
	}
	description := metaContent(d, `meta[name="description"]`)
	if description == "" {
		description = metaContent(d, `meta[property="og:description"]`)
	}
	lang, _ := d.Find("html").First().Attr("lang")
	baseHref, _ := d.Find("base[href]").First().Attr("href")

	return webmd.Metadata{
		Title:       title,
		Description: description,
		Language:    strings.TrimSpace(lang),
		BaseHref:    strings.TrimSpace(baseHref),
	}
}

func metaContent(d *goquery.Document, selector string) string {
	content, _ := d.Find(selector).First().Attr("content")
	return clean(content)
}

// clean collapses whitespace runs to single spaces.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
