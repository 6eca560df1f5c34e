// Package bloom provides page URL deduplication using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers page URLs in a fixed amount of memory. URLs that differ
// only by fragment are the same page. Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(key(url))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(key(url))
}

// TestAndAdd adds the URL and reports whether it was probably present
// before the call.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(key(url))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}
