// Package htmltomarkdown adapts JohannesKaufmann/html-to-markdown to
// webmd.Renderer.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Ensure Renderer implements webmd.Renderer at compile time.
var _ webmd.Renderer = (*Renderer)(nil)

// Renderer converts HTML to CommonMark with html-to-markdown. Ordered
// lists are always numbered and tables are always rendered as grids when
// Config.Tables is TableGrid; in flatten mode table cells fall back to
// plain blocks.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render converts root to Markdown. Relative links are resolved against
// base when it is non-nil.
func (r *Renderer) Render(root *html.Node, base *url.URL, cfg webmd.Config) (string, error) {
	if root == nil {
		return "", nil
	}

	conv := newConverter(cfg.WithDefaults())
	var out []byte
	var err error
	if base != nil {
		out, err = conv.ConvertNode(root, converter.WithDomain(base.String()))
	} else {
		out, err = conv.ConvertNode(root)
	}
	if err != nil {
		return "", webmd.Errorf(webmd.EINTERNAL, "html-to-markdown: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func newConverter(cfg webmd.Config) *converter.Converter {
	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(
			commonmark.WithHeadingStyle(commonmark.HeadingStyleSetext),
			commonmark.WithEmDelimiter(cfg.EmDelimiter),
			commonmark.WithStrongDelimiter(cfg.StrongDelimiter),
			commonmark.WithBulletListMarker(cfg.BulletMarker),
			commonmark.WithCodeBlockFence(cfg.Fence),
			commonmark.WithHorizontalRule("* * *"),
		),
	}
	if cfg.Tables == webmd.TableGrid {
		plugins = append(plugins, table.NewTablePlugin())
	}
	return converter.NewConverter(converter.WithPlugins(plugins...))
}
