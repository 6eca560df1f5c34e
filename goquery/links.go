package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webmd"
)

// Ensure LinkExtractor implements webmd.LinkExtractor at compile time.
var _ webmd.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects same-site links below a starting URL.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns links to pages on the same host whose path starts
// with the path of baseURL. Fragments are stripped for deduplication and
// links back to baseURL itself are dropped.
func (e *LinkExtractor) ExtractLinks(rawHTML []byte, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webmd.Errorf(webmd.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, webmd.Errorf(webmd.EPARSE, "failed to parse HTML: %v", err)
	}

	// <base href> changes how relative links resolve.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = base.ResolveReference(ref)
		}
	}
	prefix := pathPrefix(base.Path)

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil {
			return
		}
		if resolved.Host != base.Host || !strings.HasPrefix(resolved.Path, prefix) {
			return
		}

		s := resolved.String()
		if seen[s] {
			return
		}
		seen[s] = true
		links = append(links, s)
	})

	return links, nil
}

// pathPrefix returns the directory part of a URL path: /docs/intro → /docs/.
func pathPrefix(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "/"
	}
	return p[:i+1]
}

// resolveURL resolves a relative URL against a base URL.
// Returns nil if the href cannot be parsed or if the resolved URL is
// self-referential (same as base URL after stripping fragment).
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return nil
	}
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
