package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/html"
	"github.com/fwojciec/webmd/sqlite"
	nethtml "golang.org/x/net/html"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config webmd.Config

	Fetcher webmd.Fetcher
	Pages   webmd.PageConverter

	// Explain
	Parser    webmd.Parser
	Sanitizer webmd.Sanitizer
	Scorer    CandidateScorer

	// Batch
	Source   webmd.URLSource
	Batch    webmd.BatchConverter
	NewStore func(baseDir, name string) webmd.PageStore

	// Convert --out
	NewWriter func(dir string) webmd.PageWriter

	// Cache is nil unless a cache path is configured.
	Cache PageLister

	// Tools serves the MCP tool server.
	Tools ToolServer
}

// CandidateScorer scores the content candidates of a document.
type CandidateScorer interface {
	Candidates(doc *nethtml.Node) []html.Candidate
}

// PageLister lists and removes cached pages.
type PageLister interface {
	FindPages(ctx context.Context, filter sqlite.PageFilter) ([]*webmd.Page, error)
	DeletePage(ctx context.Context, url string) error
}

// ToolServer runs a tool server until the context is canceled.
type ToolServer interface {
	Run(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Fetch a URL and print its Markdown"`
	File    FileCmd    `cmd:"" help:"Convert a local HTML file (- for stdin)"`
	Explain ExplainCmd `cmd:"" help:"Show how the native extractor scored a page's candidates"`
	Batch   BatchCmd   `cmd:"" help:"Convert every page of a site into a directory of Markdown files"`
	Cache   CacheCmd   `cmd:"" help:"List or delete cached pages"`
	Serve   ServeCmd   `cmd:"" help:"Serve the fetch_markdown tool over MCP stdio"`
}

// Globals are flags shared by every command.
type Globals struct {
	Em          string        `default:"_" enum:"_,*" env:"WEBMD_EM" help:"Emphasis delimiter"`
	Strong      string        `default:"**" enum:"**,__" env:"WEBMD_STRONG" help:"Strong delimiter"`
	Bullet      string        `default:"*" enum:"*,-,+" env:"WEBMD_BULLET" help:"List bullet marker"`
	Fence       string        `default:"backtick" enum:"backtick,tilde" env:"WEBMD_FENCE" help:"Code fence style"`
	Tables      string        `default:"flatten" enum:"flatten,grid" env:"WEBMD_TABLES" help:"Table layout"`
	NumberLists bool          `name:"number-lists" env:"WEBMD_NUMBER_LISTS" help:"Number ordered list items"`
	Extractor   string        `default:"native" enum:"native,readability,trafilatura" env:"WEBMD_EXTRACTOR" help:"Content extractor"`
	Renderer    string        `default:"native" enum:"native,commonmark" env:"WEBMD_RENDERER" help:"Markdown renderer"`
	Timeout     time.Duration `default:"10s" env:"WEBMD_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent   string        `name:"user-agent" env:"WEBMD_USER_AGENT" help:"User-Agent header for requests"`
	Cache       string        `name:"cache-db" env:"WEBMD_CACHE_DB" help:"SQLite page cache path (disabled when empty)"`
	LogLevel    string        `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"WEBMD_LOG_LEVEL" help:"Log level"`
}

// MarkdownConfig maps the output flags onto a webmd.Config.
func (g *Globals) MarkdownConfig() webmd.Config {
	cfg := webmd.DefaultConfig()
	if g.Em != "" {
		cfg.EmDelimiter = g.Em
	}
	if g.Strong != "" {
		cfg.StrongDelimiter = g.Strong
	}
	if g.Bullet != "" {
		cfg.BulletMarker = g.Bullet
	}
	if g.Fence == "tilde" {
		cfg.Fence = "~~~"
	}
	if g.Tables != "" {
		cfg.Tables = webmd.TableMode(g.Tables)
	}
	cfg.NumberOrderedLists = g.NumberLists
	return cfg
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URL string `arg:"" help:"Page URL"`
	Out string `short:"o" type:"path" help:"Write <out>/<url path>.md with frontmatter instead of printing"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	Path    string `arg:"" help:"HTML file path, or - for stdin"`
	BaseURL string `name:"base-url" short:"b" help:"URL that relative links resolve against"`
}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Source string `arg:"" help:"Page URL or HTML file path"`
	Limit  int    `short:"n" default:"10" help:"Number of candidates to show"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Site        string   `arg:"" optional:"" help:"Site URL to discover pages from"`
	URLs        string   `name:"urls" type:"path" help:"File with one URL per line, instead of discovery"`
	Out         string   `short:"o" default:"." type:"path" help:"Parent directory for output"`
	Name        string   `help:"Output directory name (default: site host)"`
	Filter      []string `short:"F" help:"Keep URLs matching regex (repeatable)"`
	Exclude     []string `short:"X" help:"Drop URLs matching regex (repeatable)"`
	MaxPages    int      `name:"max-pages" default:"1000" help:"Maximum pages to discover"`
	MaxDepth    int      `name:"max-depth" default:"5" help:"Maximum link depth when no sitemap exists"`
	Concurrency int      `short:"c" default:"10" env:"WEBMD_CONCURRENCY" help:"Concurrent conversions"`
	RPS         float64  `name:"rps" default:"2" env:"WEBMD_RPS" help:"Requests per second per host (0 disables)"`
	Preview     bool     `short:"p" help:"Print discovered URLs without converting"`
}

// CacheCmd is the "cache" subcommand.
type CacheCmd struct {
	Prefix string `help:"Only pages whose URL starts with prefix"`
	Limit  int    `short:"n" default:"50" help:"Maximum pages to list"`
	Delete string `help:"Remove the cached page for this URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
