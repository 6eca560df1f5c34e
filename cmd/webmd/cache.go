package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/sqlite"
)

// Run executes the cache command.
func (c *CacheCmd) Run(deps *Dependencies) error {
	if deps.Cache == nil {
		err := webmd.Errorf(webmd.EINVALID, "no cache configured, set --cache-db or WEBMD_CACHE_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	if c.Delete != "" {
		if err := deps.Cache.DeletePage(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.Delete)
		return nil
	}

	pages, err := deps.Cache.FindPages(deps.Ctx, sqlite.PageFilter{URLPrefix: c.Prefix, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached pages found. Use 'webmd batch --cache-db' to fill the cache.")
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ConvertedAt.Format(time.DateTime), p.URL, p.Title)
	}
	return nil
}
