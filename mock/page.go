package mock

import (
	"context"

	"github.com/fwojciec/webmd"
)

// Compile-time interface verification.
var (
	_ webmd.PageCache     = (*PageCache)(nil)
	_ webmd.PageStore     = (*PageStore)(nil)
	_ webmd.PageWriter    = (*PageWriter)(nil)
	_ webmd.DomainLimiter = (*DomainLimiter)(nil)
)

// PageCache is a mock implementation of webmd.PageCache.
type PageCache struct {
	FindPageFn func(ctx context.Context, url string) (*webmd.Page, error)
	SavePageFn func(ctx context.Context, page *webmd.Page) error
}

func (c *PageCache) FindPage(ctx context.Context, url string) (*webmd.Page, error) {
	return c.FindPageFn(ctx, url)
}

func (c *PageCache) SavePage(ctx context.Context, page *webmd.Page) error {
	return c.SavePageFn(ctx, page)
}

// PageStore is a mock implementation of webmd.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *webmd.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *webmd.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// PageWriter is a mock implementation of webmd.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *webmd.Page) error
}

func (w *PageWriter) WritePage(ctx context.Context, page *webmd.Page) error {
	return w.WritePageFn(ctx, page)
}

// DomainLimiter is a mock implementation of webmd.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
