package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webmd"
	"github.com/fwojciec/webmd/crawl"
	"github.com/fwojciec/webmd/fs"
	"github.com/fwojciec/webmd/goquery"
	"github.com/fwojciec/webmd/html"
	"github.com/fwojciec/webmd/htmltomarkdown"
	webmdhttp "github.com/fwojciec/webmd/http"
	webmdmcp "github.com/fwojciec/webmd/mcp"
	"github.com/fwojciec/webmd/readability"
	webmdslog "github.com/fwojciec/webmd/slog"
	"github.com/fwojciec/webmd/sqlite"
	"github.com/fwojciec/webmd/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP fetcher when set. Set before calling Run().
	Fetcher webmd.Fetcher

	// SQLite database backing the page cache, open only when a cache
	// path is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webmd"),
		kong.Description("Convert web pages into clean Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webmd --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.wire(cli, kongCtx.Command(), deps); err != nil {
		return err
	}
	defer m.Close()
	defer deps.Fetcher.Close()

	return kongCtx.Run(deps)
}

// wire builds the services the selected command needs.
func (m *Main) wire(cli *CLI, command string, deps *Dependencies) error {
	g := &cli.Globals
	deps.Config = g.MarkdownConfig()
	if err := deps.Config.Validate(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return webmd.Errorf(webmd.EINVALID, "invalid log level %q", g.LogLevel)
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = webmdhttp.NewFetcher(fetchOptions(g)...)
	}
	deps.Fetcher = webmdslog.NewLoggingFetcher(fetcher, logger)

	pipeline, err := newPipeline(g.Extractor, g.Renderer)
	if err != nil {
		return err
	}
	deps.Pages = webmdslog.NewLoggingPageConverter(pipeline, logger)

	deps.Parser = pipeline.Parser
	deps.Sanitizer = pipeline.Sanitizer
	deps.Scorer = html.NewExtractor()
	deps.NewWriter = func(dir string) webmd.PageWriter { return fs.NewWriter(dir) }
	deps.NewStore = func(baseDir, name string) webmd.PageStore { return fs.NewFileStore(baseDir, name) }

	var cache webmd.PageCache
	if g.Cache != "" {
		m.DB = sqlite.NewDB(g.Cache)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Set WEBMD_CACHE_DB or --cache-db to a writable path")
			return fmt.Errorf("failed to open cache at %q: %w", g.Cache, err)
		}
		pc := sqlite.NewPageCache(m.DB)
		cache = pc
		deps.Cache = pc
	}

	switch strings.Fields(command)[0] {
	case "batch":
		if err := wireBatch(&cli.Batch, g, deps, cache, logger); err != nil {
			return err
		}
	case "serve":
		tools, err := newToolServer(deps.Fetcher, g, deps.Config, logger)
		if err != nil {
			return err
		}
		deps.Tools = tools
	}
	return nil
}

func wireBatch(c *BatchCmd, g *Globals, deps *Dependencies, cache webmd.PageCache, logger *slog.Logger) error {
	filter, err := webmd.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		return err
	}
	limiter := crawl.NewDomainLimiter(c.RPS)

	sitemaps := webmdhttp.NewSitemapService(
		webmdhttp.WithSitemapFetcher(webmdslog.NewLoggingFetcher(webmdhttp.NewSitemapFetcher(fetchOptions(g)...), logger)),
		webmdhttp.WithMaxURLs(c.MaxPages),
	)

	deps.Source = webmdslog.NewLoggingURLSource(&crawl.Discoverer{
		Sitemaps:    webmdslog.NewLoggingSitemapService(sitemaps, logger),
		Fetcher:     deps.Fetcher,
		Links:       goquery.NewLinkExtractor(),
		RateLimiter: limiter,
		Filter:      filter,
		MaxPages:    c.MaxPages,
		MaxDepth:    c.MaxDepth,
	}, logger)

	deps.Batch = webmdslog.NewLoggingBatchConverter(&crawl.Converter{
		Fetcher:     deps.Fetcher,
		Pages:       deps.Pages,
		Cache:       cache,
		Engine:      g.Extractor + "/" + g.Renderer,
		RateLimiter: limiter,
		Concurrency: c.Concurrency,
	}, logger)
	return nil
}

// fetchOptions maps the global flags onto HTTP fetcher options.
func fetchOptions(g *Globals) []webmdhttp.Option {
	opts := []webmdhttp.Option{webmdhttp.WithTimeout(g.Timeout)}
	if g.UserAgent != "" {
		opts = append(opts, webmdhttp.WithUserAgent(g.UserAgent))
	}
	return opts
}

// newPipeline assembles the conversion chain for the chosen extractor and
// renderer.
func newPipeline(extractor, renderer string) (*webmd.Pipeline, error) {
	p := &webmd.Pipeline{
		Parser:    html.NewParser(),
		Sanitizer: goquery.NewSanitizer(),
		Metadata:  goquery.NewMetadataReader(),
	}

	switch extractor {
	case "", "native":
		p.Extractor = html.NewExtractor()
	case "readability":
		p.Extractor = readability.NewExtractor()
	case "trafilatura":
		p.Extractor = trafilatura.NewExtractor()
	default:
		return nil, webmd.Errorf(webmd.EINVALID, "unknown extractor %q", extractor)
	}

	switch renderer {
	case "", "native":
		p.Renderer = html.NewSerializer()
	case "commonmark":
		p.Renderer = htmltomarkdown.NewRenderer()
	default:
		return nil, webmd.Errorf(webmd.EINVALID, "unknown renderer %q", renderer)
	}
	return p, nil
}

// newToolServer registers a converter per extractor so tool calls can
// choose one.
func newToolServer(fetcher webmd.Fetcher, g *Globals, cfg webmd.Config, logger *slog.Logger) (*webmdmcp.Server, error) {
	pages := make(map[string]webmd.PageConverter)
	for _, name := range []string{"native", "readability", "trafilatura"} {
		p, err := newPipeline(name, g.Renderer)
		if err != nil {
			return nil, err
		}
		pages[name] = webmdslog.NewLoggingPageConverter(p, logger)
	}
	return webmdmcp.NewServer(fetcher, pages,
		webmdmcp.WithConfig(cfg),
		webmdmcp.WithDefaultExtractor(g.Extractor),
	)
}

// siteName derives an output directory name from a site URL.
func siteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "site"
	}
	return u.Hostname()
}
