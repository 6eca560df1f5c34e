package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/webmd/bloom"
)

// Link is a URL queued for discovery together with its distance from the
// start page.
type Link struct {
	URL   string
	Depth int
}

// Frontier is an in-memory FIFO URL queue with Bloom filter deduplication,
// giving breadth-first discovery order.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []Link
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a link to the back of the queue.
// Returns false if the URL has already been seen.
// URLs differing only by fragment are considered duplicates, and the
// fragment is dropped from the queued URL.
func (f *Frontier) Push(link Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	link.URL = stripFragment(link.URL)
	if f.seen.TestAndAdd(link.URL) {
		return false
	}
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the oldest queued link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return Link{}, false
	}
	link := f.queue[0]
	f.queue[0] = Link{}
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		return url[:i]
	}
	return url
}
