package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/crawl"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if c.Site == "" && c.URLs == "" {
		err := webmd.Errorf(webmd.EINVALID, "a site URL or --urls file is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	urls, err := c.collect(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))

	var failed int
	progress := func(p webmd.Progress) {
		if p.Error != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", p.URL, webmd.ErrorMessage(p.Error))
		}
		fmt.Fprintf(deps.Stderr, "\r[%d/%d] %s", p.Completed, p.Total, crawl.TruncateURL(p.URL, 50))
	}

	pages, err := deps.Batch.ConvertAll(deps.Ctx, urls, deps.Config, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "\nerror converting: %v\n", err)
		return err
	}

	// Clear progress line
	fmt.Fprintf(deps.Stderr, "\r%80s\r", "")

	name := c.Name
	if name == "" {
		name = siteName(c.Site)
	}
	store := deps.NewStore(c.Out, name)

	var size int
	for _, page := range pages {
		if err := store.Save(deps.Ctx, page); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", page.URL, err)
			return err
		}
		size += len(page.Markdown)
	}

	if len(pages) == 0 {
		_ = store.Abort()
		fmt.Fprintln(deps.Stdout, "No pages saved")
		return nil
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s)", len(pages), crawl.FormatBytes(size))
	if failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", failed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

// collect returns the URLs to convert: the --urls file when given,
// otherwise the pages discovered from the site.
func (c *BatchCmd) collect(deps *Dependencies) ([]string, error) {
	if c.URLs == "" {
		return deps.Source.Discover(deps.Ctx, c.Site)
	}

	f, err := os.Open(c.URLs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
