package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webmd/html"
	"github.com/stretchr/testify/require"
	nethtml "golang.org/x/net/html"
)

// parseDoc parses a complete document with the package parser.
func parseDoc(t *testing.T, s string) *nethtml.Node {
	t.Helper()

	doc, err := html.NewParser().Parse(strings.NewReader(s), "text/html; charset=utf-8")
	require.NoError(t, err)
	return doc
}

// parseBody parses s as the content of <body> and returns the body element.
func parseBody(t *testing.T, s string) *nethtml.Node {
	t.Helper()

	body := findElement(parseDoc(t, "<html><body>"+s+"</body></html>"), "body")
	require.NotNil(t, body)
	return body
}

func findElement(n *nethtml.Node, tag string) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
