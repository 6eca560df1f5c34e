package webmd

import (
	"context"
	"regexp"
)

// SitemapService discovers page URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs lists the pages published in a site's sitemap.
	// Sitemap locations come from robots.txt, falling back to /sitemap.xml;
	// sitemap indexes are followed recursively.
	//
	// A nil filter returns every URL.
	DiscoverURLs(ctx context.Context, siteURL string, filter *URLFilter) ([]string, error)
}

// URLSource lists the pages of a site.
type URLSource interface {
	// Discover returns the page URLs to convert for siteURL.
	Discover(ctx context.Context, siteURL string) ([]string, error)
}

// URLFilter selects URLs by pattern.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a filter.
// Returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether the URL passes the filter.
// A nil filter matches everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
