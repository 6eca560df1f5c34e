package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webmd"
)

// ComputeHash returns, as hex, the xxhash of a fetched document together
// with the settings it is converted under: the output config and the
// engine name. A cached page is reused only when all three are unchanged.
func ComputeHash(body []byte, cfg webmd.Config, engine string) string {
	d := xxhash.New()
	_, _ = d.Write(body)
	_, _ = fmt.Fprintf(d, "\x00%s\x00%s\x00%s\x00%s\x00%s\x00%t\x00%s",
		cfg.EmDelimiter, cfg.StrongDelimiter, cfg.BulletMarker, cfg.Fence,
		cfg.Tables, cfg.NumberOrderedLists, engine)
	return fmt.Sprintf("%016x", d.Sum64())
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
