// Package goquery implements document clean-up and inspection with
// github.com/PuerkitoBio/goquery selectors.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements webmd.Sanitizer at compile time.
var _ webmd.Sanitizer = (*Sanitizer)(nil)

// nonContentSelector matches elements whose text is never page content.
const nonContentSelector = "script, style"

// Sanitizer removes scripts, styles and comments from a document tree.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes every script, style and comment node from doc in place
// and returns it. The remaining nodes keep their order.
func (s *Sanitizer) Sanitize(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	goquery.NewDocumentFromNode(doc).Find(nonContentSelector).Remove()
	removeComments(doc)
	return doc
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
