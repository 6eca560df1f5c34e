package webmd_test

import (
	"testing"

	"github.com/fwojciec/webmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *webmd.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include keeps only matching URLs", func(t *testing.T) {
		t.Parallel()

		f, err := webmd.NewURLFilter([]string{`/blog/`}, nil)
		require.NoError(t, err)

		assert.True(t, f.Match("https://example.com/blog/post"))
		assert.False(t, f.Match("https://example.com/about"))
	})

	t.Run("exclude applies after include", func(t *testing.T) {
		t.Parallel()

		f, err := webmd.NewURLFilter([]string{`/blog/`}, []string{`/drafts/`})
		require.NoError(t, err)

		assert.True(t, f.Match("https://example.com/blog/post"))
		assert.False(t, f.Match("https://example.com/blog/drafts/post"))
	})
}

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		f, err := webmd.NewURLFilter(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := webmd.NewURLFilter([]string{`(`}, nil)
		require.Error(t, err)
		assert.Equal(t, webmd.EINVALID, webmd.ErrorCode(err))
	})
}
