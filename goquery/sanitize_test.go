package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webmd/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, html.Render(&b, n))
	return b.String()
}

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes scripts styles and comments", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><style>p{color:red}</style><script>var a;</script></head>`+
			`<body><!-- hidden --><p>One</p><script src="x.js"></script><div><!-- deep --><p>Two</p></div></body></html>`)

		got := render(t, goquery.NewSanitizer().Sanitize(doc))

		assert.Equal(t, `<html><head></head><body><p>One</p><div><p>Two</p></div></body></html>`, got)
	})

	t.Run("preserves other nodes in order", func(t *testing.T) {
		t.Parallel()

		input := `<html><head><title>T</title></head><body><h1>A</h1><noscript>N</noscript><p>B <em>C</em></p></body></html>`
		doc := parse(t, input)

		got := render(t, goquery.NewSanitizer().Sanitize(doc))

		assert.Equal(t, input, got)
	})

	t.Run("returns the same tree", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<p>x</p>`)

		assert.Same(t, doc, goquery.NewSanitizer().Sanitize(doc))
	})

	t.Run("tolerates nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.NewSanitizer().Sanitize(nil))
	})
}
