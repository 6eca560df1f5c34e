package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, e *html.Extractor, doc string) (string, error) {
	t.Helper()

	root, err := e.Extract(parseDoc(t, doc))
	if err != nil {
		return "", err
	}
	return html.NewSerializer().Serialize(root, nil, webmd.DefaultConfig()), nil
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("selects article over navigation", func(t *testing.T) {
		t.Parallel()

		words := strings.TrimSpace(strings.Repeat("word ", 200))
		doc := `<html><body>` +
			`<nav><a href="/">Home</a> <a href="/about">About</a> <a href="/blog">Blog</a></nav>` +
			`<article><h1>Heading</h1><p>` + words + `</p></article>` +
			`<footer>Copyright</footer></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "Heading\n=======\n\nword word"))
		assert.NotContains(t, got, "About")
		assert.NotContains(t, got, "Copyright")
	})

	t.Run("extracts minimal article", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><nav>Menu</nav><article><h1>T</h1><p>Body <em>text</em>.</p></article></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "T\n=\n\nBody _text_.", got)
	})

	t.Run("fails on chrome-only page", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><nav><a href="/">Home</a></nav><footer>Copyright 2024</footer></body></html>`

		_, err := extract(t, html.NewExtractor(), doc)

		require.Error(t, err)
		assert.Equal(t, webmd.EEXTRACT, webmd.ErrorCode(err))
	})

	t.Run("fails on page of link-only divs", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><div>` +
			`<a href="/a">Home</a> <a href="/b">About</a> <a href="/c">Blog</a> ` +
			`<a href="/d">Contact</a> <a href="/e">Login</a>` +
			`</div></body></html>`

		_, err := extract(t, html.NewExtractor(), doc)

		require.Error(t, err)
		assert.Equal(t, webmd.EEXTRACT, webmd.ErrorCode(err))
	})

	t.Run("prefers text over a higher-ranked link-only div", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><div><a href="/a">Home</a> <a href="/b">About</a></div>` +
			`<p>Plain paragraph with real words.</p></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "Plain paragraph with real words.", got)
	})

	t.Run("fails on empty body", func(t *testing.T) {
		t.Parallel()

		_, err := extract(t, html.NewExtractor(), `<html><body></body></html>`)

		assert.Equal(t, webmd.EEXTRACT, webmd.ErrorCode(err))
	})

	t.Run("fails below configured minimum score", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><article><p>Short.</p></article></body></html>`

		_, err := extract(t, html.NewExtractor(html.WithMinScore(100)), doc)

		assert.Equal(t, webmd.EEXTRACT, webmd.ErrorCode(err))
	})

	t.Run("prunes link-heavy blocks inside the winner", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><article><p>The story, told in full, with detail.</p>` +
			`<div class="links"><a href="/s">Share</a> <a href="/t">Tweet</a></div>` +
			`<p>More story.</p></article></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "The story, told in full, with detail.\n\nMore story.", got)
	})

	t.Run("keeps link-heavy blocks when pruning threshold is disabled", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><article><p>The story, told in full, with detail.</p>` +
			`<div><a href="/s">Share</a></div></article></body></html>`

		got, err := extract(t, html.NewExtractor(html.WithLinkDensityLimit(1)), doc)

		require.NoError(t, err)
		assert.Contains(t, got, "[Share](/s)")
	})

	t.Run("ignores negatively hinted containers", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Sidebar text, more text, ", 20)
		doc := `<html><body><div class="sidebar"><p>` + long + `</p></div>` +
			`<div class="content"><p>Real content.</p></div></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "Real content.", got)
	})

	t.Run("ignores hidden elements", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("Hidden text, more text, ", 20)
		doc := `<html><body><div hidden><p>` + long + `</p></div>` +
			`<div><p>Visible text.</p></div></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "Visible text.", got)
	})

	t.Run("breaks ties by document order", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><div><p>Alpha text here.</p></div><div><p>Bravo text here.</p></div></body></html>`

		got, err := extract(t, html.NewExtractor(), doc)

		require.NoError(t, err)
		assert.Equal(t, "Alpha text here.", got)
	})
}

func TestExtractor_Candidates(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body><nav>Menu</nav><article class="post"><h1>T</h1><p>Body, <em>text</em>.</p></article></body></html>`)

	candidates := html.NewExtractor().Candidates(doc)

	require.Len(t, candidates, 3)
	best := candidates[0]
	assert.Equal(t, "article", best.Node.Data)
	assert.InDelta(t, 10, best.Breakdown.Tag, 1e-9)
	assert.InDelta(t, 25, best.Breakdown.Hint, 1e-9)
	assert.Equal(t, 1, best.Breakdown.TextLength)
	assert.InDelta(t, 1.01, best.Breakdown.Text, 1e-9)
	assert.InDelta(t, 2.1, best.Breakdown.Propagated, 1e-9)
	assert.InDelta(t, 10+25+1.01+2.1, best.Score, 1e-9)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}

	// Candidates does not prune.
	assert.Contains(t, html.NewSerializer().Serialize(doc, nil, webmd.DefaultConfig()), "Menu")
}
