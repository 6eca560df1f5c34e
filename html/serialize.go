package html

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/webmd"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

// Ensure Serializer implements webmd.Renderer at compile time.
var _ webmd.Renderer = (*Serializer)(nil)

// Serializer renders an HTML subtree as Markdown using a fixed tag rule
// table. It holds no state and is safe for concurrent use.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Render implements webmd.Renderer. Serialization cannot fail once the
// tree is built, so the error is always nil.
func (s *Serializer) Render(root *html.Node, base *url.URL, cfg webmd.Config) (string, error) {
	return s.Serialize(root, base, cfg), nil
}

// Serialize converts root and its descendants to Markdown. Relative link
// and image URLs are resolved against base when it is non-nil. Empty cfg
// fields fall back to webmd.DefaultConfig.
func (s *Serializer) Serialize(root *html.Node, base *url.URL, cfg webmd.Config) string {
	if root == nil {
		return ""
	}
	st := &state{base: base, cfg: cfg.WithDefaults()}
	out, _ := st.node(root)
	return strings.TrimSpace(out)
}

// state carries the per-call inputs through the recursive walk.
type state struct {
	base *url.URL
	cfg  webmd.Config
}

// node returns the Markdown for n and whether it forms a block.
func (st *state) node(n *html.Node) (string, bool) {
	switch n.Type {
	case html.TextNode:
		return collapseSpace(n.Data), false
	case html.DocumentNode:
		return st.children(n), true
	case html.ElementNode:
	default:
		return "", false
	}

	r := ruleFor(n.Data)
	switch r.kind {
	case kindOmit:
		return "", false
	case kindBlock, kindTableRow:
		return st.children(n), true
	case kindHeading:
		return st.heading(n, r.level), true
	case kindWrap:
		return wrap(st.children(n), r.delimiter(st.cfg)), false
	case kindLink:
		return st.link(n), false
	case kindImage:
		return st.image(n), false
	case kindFencedCode:
		return st.fencedCode(n), true
	case kindInlineCode:
		return inlineCode(textContent(n)), false
	case kindList:
		return st.list(n, r.ordered), true
	case kindListItem:
		return st.listItem(n, st.cfg.BulletMarker+"   "), true
	case kindTable:
		return st.table(n), true
	case kindBlockquote:
		return blockquote(st.children(n)), true
	case kindLineBreak:
		return hardBreak, false
	case kindRule:
		return "* * *", true
	}
	return st.children(n), false
}

func (st *state) children(n *html.Node) string {
	var f fragment
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text, block := st.node(c)
		if block {
			f.block(text)
		} else {
			f.inline(text)
		}
	}
	return f.String()
}

func (st *state) heading(n *html.Node, level int) string {
	text := oneLine(st.children(n))
	if text == "" {
		return ""
	}
	switch level {
	case 1:
		return text + "\n" + strings.Repeat("=", displayWidth(text))
	case 2:
		return text + "\n" + strings.Repeat("-", displayWidth(text))
	}
	return strings.Repeat("#", level) + " " + text
}

// displayWidth is the number of terminal columns s occupies, so setext
// underlines line up under wide characters.
func displayWidth(s string) int {
	return max(1, uniseg.StringWidth(s))
}

// wrap places delim around the content of inner, keeping edge whitespace
// outside the delimiters.
func wrap(inner, delim string) string {
	content := strings.TrimSpace(inner)
	if content == "" {
		if inner != "" {
			return " "
		}
		return ""
	}
	lead, trail := edgeSpace(inner)
	return lead + delim + content + delim + trail
}

func edgeSpace(s string) (lead, trail string) {
	if s != "" && isSpace(rune(s[0])) {
		lead = " "
	}
	if s != "" && isSpace(rune(s[len(s)-1])) {
		trail = " "
	}
	return lead, trail
}

func (st *state) link(n *html.Node) string {
	inner := st.children(n)
	href := strings.TrimSpace(attr(n, "href"))
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return inner
	}
	text := strings.TrimSpace(inner)
	if text == "" {
		return ""
	}
	if strings.Contains(text, "\n") {
		text = oneLine(text)
	}
	lead, trail := edgeSpace(inner)
	return lead + "[" + text + "](" + st.resolve(href) + ")" + trail
}

func (st *state) image(n *html.Node) string {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	return "![" + oneLine(attr(n, "alt")) + "](" + st.resolve(src) + ")"
}

// resolve makes ref absolute against the base URL. References that do not
// parse are returned unchanged.
func (st *state) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if st.base != nil {
		u = st.base.ResolveReference(u)
	}
	return u.String()
}

// fencedCode renders <pre> verbatim between fences. The fence grows when
// the code itself contains it.
func (st *state) fencedCode(pre *html.Node) string {
	code := strings.TrimSuffix(textContent(pre), "\n")
	fence := st.cfg.Fence
	for strings.Contains(code, fence) {
		fence += fence[:1]
	}
	return fence + codeLanguage(pre) + "\n" + code + "\n" + fence
}

// codeLanguage reads a language-* or lang-* class from the <pre> or its
// <code> child.
func codeLanguage(pre *html.Node) string {
	nodes := []*html.Node{pre}
	if code := firstElementChild(pre, "code"); code != nil {
		nodes = append([]*html.Node{code}, nodes...)
	}
	for _, n := range nodes {
		for _, class := range strings.Fields(attr(n, "class")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return ""
}

func inlineCode(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	run, longest := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	delim := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return delim + text + delim
}

func (st *state) list(n *html.Node, ordered bool) string {
	index := 1
	if ordered {
		if start, err := strconv.Atoi(strings.TrimSpace(attr(n, "start"))); err == nil {
			index = start
		}
	}

	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			items = append(items, st.listItem(c, st.marker(ordered, index)))
			index++
			continue
		}
		text, _ := st.node(c)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(items) == 0 {
			items = append(items, text)
			continue
		}
		items[len(items)-1] += "\n" + indentLines(text, listIndent)
	}
	return strings.Join(items, "\n")
}

// listIndent is the continuation indent of list item content.
const listIndent = "    "

func (st *state) marker(ordered bool, index int) string {
	if ordered && st.cfg.NumberOrderedLists {
		m := strconv.Itoa(index) + "."
		return m + strings.Repeat(" ", max(1, len(listIndent)-len(m)))
	}
	return st.cfg.BulletMarker + "   "
}

func (st *state) listItem(li *html.Node, marker string) string {
	var f fragment
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		text, block := st.node(c)
		switch {
		case isList(c):
			f.tight(text)
		case block:
			f.block(text)
		default:
			f.inline(text)
		}
	}
	content := strings.TrimSpace(f.String())
	if content == "" {
		return strings.TrimRight(marker, " ")
	}
	first, rest, found := strings.Cut(content, "\n")
	if !found {
		return marker + first
	}
	return marker + first + "\n" + indentLines(rest, listIndent)
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol")
}

// indentLines prefixes every non-empty line of s with pad.
func indentLines(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func blockquote(inner string) string {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ""
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (st *state) table(t *html.Node) string {
	var caption string
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "caption":
				caption = oneLine(st.children(c))
			case "thead", "tbody", "tfoot":
				walk(c)
			case "tr":
				rows = append(rows, st.cells(c))
			}
		}
	}
	walk(t)

	if st.cfg.Tables == webmd.TableGrid {
		return gridTable(caption, rows)
	}
	return flatTable(caption, rows)
}

func (st *state) cells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, oneLine(st.children(c)))
		}
	}
	return cells
}

// flatTable emits each non-empty cell on its own line and separates rows
// with a blank line.
func flatTable(caption string, rows [][]string) string {
	var blocks []string
	if caption != "" {
		blocks = append(blocks, caption)
	}
	for _, row := range rows {
		var cells []string
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			blocks = append(blocks, strings.Join(cells, "\n"))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// gridTable emits a pipe table whose first row is the header.
func gridTable(caption string, rows [][]string) string {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return caption
	}

	var b strings.Builder
	if caption != "" {
		b.WriteString(caption)
		b.WriteString("\n\n")
	}
	writeRow := func(row []string) {
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "|", `\|`)
			}
			b.WriteString(" " + cell + " |")
		}
	}
	writeRow(rows[0])
	b.WriteString("\n|")
	for i := 0; i < cols; i++ {
		b.WriteString(" --- |")
	}
	for _, row := range rows[1:] {
		b.WriteString("\n")
		writeRow(row)
	}
	return b.String()
}
