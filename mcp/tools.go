package mcp

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/webmd"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FetchInput is the input schema for the fetch_markdown tool.
type FetchInput struct {
	URL       string `json:"url" jsonschema:"the http or https URL of the page to convert"`
	Extractor string `json:"extractor,omitempty" jsonschema:"content extractor: native, readability or trafilatura"`
	Tables    string `json:"tables,omitempty" jsonschema:"table layout: flatten or grid"`
}

// FetchOutput is the output schema for the fetch_markdown tool.
type FetchOutput struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_markdown",
		Description: "Fetch a web page and return its main content as Markdown",
	}, s.handleFetch)
}

// handleFetch handles the fetch_markdown tool invocation.
func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchInput,
) (*mcp.CallToolResult, FetchOutput, error) {
	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		return nil, FetchOutput{}, webmd.Errorf(webmd.EINVALID, "url must start with http:// or https://")
	}

	name := input.Extractor
	if name == "" {
		name = s.fallback
	}
	pages, ok := s.pages[name]
	if !ok {
		names := slices.Sorted(maps.Keys(s.pages))
		return nil, FetchOutput{}, webmd.Errorf(webmd.EINVALID, "unknown extractor %q, want one of %s", name, strings.Join(names, ", "))
	}

	cfg := s.config
	if input.Tables != "" {
		cfg.Tables = webmd.TableMode(input.Tables)
	}
	if err := cfg.Validate(); err != nil {
		return nil, FetchOutput{}, err
	}

	res, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, FetchOutput{}, err
	}
	page, err := pages.ConvertResource(res, cfg)
	if err != nil {
		return nil, FetchOutput{}, err
	}

	return nil, FetchOutput{
		URL:      page.URL,
		Title:    page.Title,
		Markdown: page.Markdown,
	}, nil
}
