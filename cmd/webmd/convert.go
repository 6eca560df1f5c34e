package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/webmd"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	res, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	page, err := deps.Pages.ConvertResource(res, deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}
	page.URL = c.URL

	if c.Out != "" {
		if err := deps.NewWriter(c.Out).WritePage(deps.Ctx, page); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", page.URL, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s\n", page.URL)
		return nil
	}

	fmt.Fprintln(deps.Stdout, page.Markdown)
	return nil
}

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	body, err := readSource(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page, err := deps.Pages.ConvertResource(&webmd.Resource{URL: c.BaseURL, Body: body}, deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, page.Markdown)
	return nil
}

// readSource reads a file, or stdin when path is "-".
func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
