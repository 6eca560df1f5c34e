// Package mcp exposes page conversion as a Model Context Protocol tool
// server.
package mcp

import (
	"context"

	"github.com/fwojciec/webmd"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server serves the fetch_markdown tool.
type Server struct {
	fetcher  webmd.Fetcher
	pages    map[string]webmd.PageConverter
	fallback string
	config   webmd.Config
	server   *mcp.Server
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the Markdown configuration used when a call does not
// override it.
func WithConfig(cfg webmd.Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithDefaultExtractor selects the converter used when a call names no
// extractor.
func WithDefaultExtractor(name string) Option {
	return func(s *Server) {
		s.fallback = name
	}
}

// NewServer creates a server that fetches pages with fetcher and converts
// them with the converter registered under the requested extractor name.
func NewServer(fetcher webmd.Fetcher, pages map[string]webmd.PageConverter, opts ...Option) (*Server, error) {
	if fetcher == nil {
		return nil, webmd.Errorf(webmd.EINVALID, "mcp: fetcher is required")
	}
	if len(pages) == 0 {
		return nil, webmd.Errorf(webmd.EINVALID, "mcp: at least one converter is required")
	}

	s := &Server{
		fetcher:  fetcher,
		pages:    pages,
		fallback: "native",
		config:   webmd.DefaultConfig(),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "webmd",
			Version: Version,
		}, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := s.pages[s.fallback]; !ok {
		return nil, webmd.Errorf(webmd.EINVALID, "mcp: no converter for default extractor %q", s.fallback)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	s.registerTools()
	return s, nil
}

// Run serves over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunTransport serves over t. It is used to serve in-process clients.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}
