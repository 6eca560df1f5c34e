package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webmd"
)

// Ensure the decorators implement their interfaces.
var (
	_ webmd.PageConverter  = (*LoggingPageConverter)(nil)
	_ webmd.BatchConverter = (*LoggingBatchConverter)(nil)
)

// LoggingPageConverter wraps a PageConverter with logging.
type LoggingPageConverter struct {
	next   webmd.PageConverter
	logger *slog.Logger
}

// NewLoggingPageConverter creates a new LoggingPageConverter.
func NewLoggingPageConverter(next webmd.PageConverter, logger *slog.Logger) *LoggingPageConverter {
	return &LoggingPageConverter{next: next, logger: logger}
}

// ConvertResource delegates to the wrapped converter and logs the
// resulting Markdown size. Failures carry their error code.
func (c *LoggingPageConverter) ConvertResource(res *webmd.Resource, cfg webmd.Config) (page *webmd.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", resourceURL(res), "duration", time.Since(begin)}
		if page != nil {
			attrs = append(attrs, "title", page.Title, "chars", len(page.Markdown))
		}
		if err != nil {
			attrs = append(attrs, "code", webmd.ErrorCode(err), "err", err)
		}
		c.logger.Info("convert", attrs...)
	}(time.Now())
	return c.next.ConvertResource(res, cfg)
}

func resourceURL(res *webmd.Resource) string {
	if res == nil {
		return ""
	}
	return res.URL
}

// LoggingBatchConverter wraps a BatchConverter with logging.
type LoggingBatchConverter struct {
	next   webmd.BatchConverter
	logger *slog.Logger
}

// NewLoggingBatchConverter creates a new LoggingBatchConverter.
func NewLoggingBatchConverter(next webmd.BatchConverter, logger *slog.Logger) *LoggingBatchConverter {
	return &LoggingBatchConverter{next: next, logger: logger}
}

// ConvertAll delegates to the wrapped converter and logs how many of the
// requested pages were converted.
func (c *LoggingBatchConverter) ConvertAll(ctx context.Context, urls []string, cfg webmd.Config, progress webmd.ProgressFunc) (pages []*webmd.Page, err error) {
	defer func(begin time.Time) {
		c.logger.Info("batch",
			"requested", len(urls),
			"converted", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ConvertAll(ctx, urls, cfg, progress)
}
