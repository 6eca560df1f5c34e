package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/webmd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webmd.PageCache = (*PageCache)(nil)

// PageCache implements webmd.PageCache using SQLite.
type PageCache struct {
	db *DB
}

// NewPageCache creates a new PageCache.
func NewPageCache(db *DB) *PageCache {
	return &PageCache{db: db}
}

// PageFilter selects cached pages.
type PageFilter struct {
	// URLPrefix keeps pages whose URL starts with the prefix.
	URLPrefix string

	Limit  int
	Offset int
}

// FindPage retrieves the cached page for url.
func (c *PageCache) FindPage(ctx context.Context, url string) (*webmd.Page, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT url, title, markdown, content_hash, converted_at
		FROM pages
		WHERE url = ?
	`, url)

	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webmd.Errorf(webmd.ENOTFOUND, "page not cached: %s", url)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// SavePage inserts the page or replaces the cached entry for its URL.
// A zero ConvertedAt is stamped with the current time.
func (c *PageCache) SavePage(ctx context.Context, page *webmd.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if page.ConvertedAt.IsZero() {
		page.ConvertedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, markdown, content_hash, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			markdown = excluded.markdown,
			content_hash = excluded.content_hash,
			converted_at = excluded.converted_at
	`, uuid.New().String(), page.URL, page.Title, page.Markdown, page.ContentHash,
		page.ConvertedAt.UTC().Format(time.RFC3339))

	return err
}

// FindPages lists cached pages, most recently converted first.
func (c *PageCache) FindPages(ctx context.Context, filter PageFilter) ([]*webmd.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, markdown, content_hash, converted_at FROM pages WHERE 1=1")
	if filter.URLPrefix != "" {
		query.WriteString(" AND substr(url, 1, ?) = ?")
		args = append(args, len(filter.URLPrefix), filter.URLPrefix)
	}
	query.WriteString(" ORDER BY converted_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := c.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*webmd.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// DeletePage removes the cached entry for url.
func (c *PageCache) DeletePage(ctx context.Context, url string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM pages WHERE url = ?", url)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return webmd.Errorf(webmd.ENOTFOUND, "page not cached: %s", url)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(s scanner) (*webmd.Page, error) {
	var page webmd.Page
	var convertedAt string
	if err := s.Scan(&page.URL, &page.Title, &page.Markdown, &page.ContentHash, &convertedAt); err != nil {
		return nil, err
	}

	var err error
	page.ConvertedAt, err = parseRFC3339(convertedAt, "converted_at")
	if err != nil {
		return nil, err
	}
	return &page, nil
}
