package goquery_test

import (
	"testing"

	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/goquery"
	"github.com/stretchr/testify/assert"
)

func TestMetadataReader_ReadMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads all fields", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html lang="en"><head>
<title>  Page
  Title </title>
<meta name="description" content="About the page">
<base href="https://cdn.example.com/root/">
</head><body></body></html>`)

		got := goquery.NewMetadataReader().ReadMetadata(doc)

		assert.Equal(t, webmd.Metadata{
			Title:       "Page Title",
			Description: "About the page",
			Language:    "en",
			BaseHref:    "https://cdn.example.com/root/",
		}, got)
	})

	t.Run("prefers open graph title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><title>Site | Page</title>`+
			`<meta property="og:title" content="Page"><meta property="og:description" content="OG"></head></html>`)

		got := goquery.NewMetadataReader().ReadMetadata(doc)

		assert.Equal(t, "Page", got.Title)
		assert.Equal(t, "OG", got.Description)
	})

	t.Run("returns empty metadata for bare document", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewMetadataReader().ReadMetadata(parse(t, `<p>x</p>`))

		assert.Equal(t, webmd.Metadata{}, got)
	})
}
