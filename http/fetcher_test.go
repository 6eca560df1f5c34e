package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/webmd"
	webmdhttp "github.com/fwojciec/webmd/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body and content type from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := webmdhttp.NewFetcher()
		defer fetcher.Close()

		res, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(res.Body))
		assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
		assert.Equal(t, server.URL, res.URL)
	})

	t.Run("reports final URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new/", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<p>moved</p>"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		res, err := webmdhttp.NewFetcher().Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/new/", res.URL)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<p>x</p>"))
		}))
		defer server.Close()

		_, err := webmdhttp.NewFetcher(webmdhttp.WithUserAgent("test-agent")).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", <-agents)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := webmdhttp.NewFetcher(webmdhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.True(t, webmd.IsTransient(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := webmdhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns fetch error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := webmdhttp.NewFetcher(webmdhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, webmd.EFETCH, webmd.ErrorCode(err))
	})

	t.Run("returns fetch error with status for non-2xx responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := webmdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)

		var fe *webmd.FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
		assert.Equal(t, server.URL, fe.URL)
		assert.Contains(t, err.Error(), "404")
		assert.False(t, webmd.IsTransient(err))
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("<p>ok</p>"))
		}))
		defer server.Close()

		res, err := webmdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", string(res.Body))
	})

	t.Run("rejects non-document content types", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		_, err := webmdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		assert.Equal(t, webmd.EINVALID, webmd.ErrorCode(err))
	})

	t.Run("accepts configured extra media types", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/gzip")
			_, _ = w.Write([]byte{0x1f, 0x8b})
		}))
		defer server.Close()

		res, err := webmdhttp.NewFetcher(webmdhttp.WithMediaTypes("application/gzip")).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x1f, 0x8b}, res.Body)
	})

	t.Run("rejects bodies over the size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 64)))
		}))
		defer server.Close()

		_, err := webmdhttp.NewFetcher(webmdhttp.WithMaxBytes(32)).Fetch(context.Background(), server.URL)
		assert.Equal(t, webmd.EINVALID, webmd.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements webmd.Fetcher
var _ webmd.Fetcher = (*webmdhttp.Fetcher)(nil)
