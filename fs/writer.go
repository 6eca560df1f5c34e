// Package fs provides file-based storage for converted pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webmd"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users.html → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webmd.Errorf(webmd.EINVALID, "invalid page URL: %v", err)
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "", webmd.Errorf(webmd.EINVALID, "path traversal in URL: %s", rawURL)
		}
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	for _, ext := range []string{".html", ".htm"} {
		path = strings.TrimSuffix(path, ext)
	}
	return path + ".md", nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *webmd.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	if page.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.ContentHash)
	}
	if !page.ConvertedAt.IsZero() {
		b.WriteString("\nconverted: ")
		b.WriteString(page.ConvertedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(page.Markdown)
	return b.String()
}

// writePage writes page under dir at the path derived from its URL.
func writePage(dir string, page *webmd.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(dir, filepath.FromSlash(relPath))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// Ensure Writer implements webmd.PageWriter at compile time.
var _ webmd.PageWriter = (*Writer)(nil)

// Writer writes pages as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes a page to disk as a markdown file.
func (w *Writer) WritePage(ctx context.Context, page *webmd.Page) error {
	return writePage(w.baseDir, page)
}
