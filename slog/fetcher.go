// Package slog decorates webmd services with structured logging from
// log/slog. Each decorator logs one line per call after it returns.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webmd"
)

// Ensure LoggingFetcher implements webmd.Fetcher.
var _ webmd.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   webmd.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webmd.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *webmd.Resource, err error) {
	defer func(begin time.Time) {
		var size int
		if res != nil {
			size = len(res.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
