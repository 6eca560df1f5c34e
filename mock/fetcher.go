package mock

import (
	"context"

	"github.com/fwojciec/webmd"
)

var _ webmd.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webmd.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*webmd.Resource, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*webmd.Resource, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
