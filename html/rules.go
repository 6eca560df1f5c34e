package html

import "github.com/fwojciec/webmd"

// ruleKind is the transform applied to an element.
type ruleKind int

const (
	// kindInline recurses into children with no added markup. It is the
	// fallback for every tag missing from the table.
	kindInline ruleKind = iota
	kindBlock
	kindOmit
	kindHeading
	kindWrap
	kindLink
	kindImage
	kindFencedCode
	kindInlineCode
	kindList
	kindListItem
	kindTable
	kindTableRow
	kindTableCell
	kindBlockquote
	kindLineBreak
	kindRule
)

// rule describes how one tag is serialized.
type rule struct {
	kind ruleKind

	// level is the heading level for kindHeading.
	level int

	// delimiter returns the prefix and suffix for kindWrap.
	delimiter func(webmd.Config) string

	// ordered marks <ol> for kindList.
	ordered bool
}

func emphasis(cfg webmd.Config) string { return cfg.EmDelimiter }
func strong(cfg webmd.Config) string   { return cfg.StrongDelimiter }

// rules maps tag names to transforms. It is built once and only read
// afterwards, so it is shared by all conversions.
var rules = map[string]rule{
	"h1": {kind: kindHeading, level: 1},
	"h2": {kind: kindHeading, level: 2},
	"h3": {kind: kindHeading, level: 3},
	"h4": {kind: kindHeading, level: 4},
	"h5": {kind: kindHeading, level: 5},
	"h6": {kind: kindHeading, level: 6},

	"em":     {kind: kindWrap, delimiter: emphasis},
	"i":      {kind: kindWrap, delimiter: emphasis},
	"strong": {kind: kindWrap, delimiter: strong},
	"b":      {kind: kindWrap, delimiter: strong},

	"a":    {kind: kindLink},
	"img":  {kind: kindImage},
	"pre":  {kind: kindFencedCode},
	"code": {kind: kindInlineCode},
	"kbd":  {kind: kindInlineCode},
	"samp": {kind: kindInlineCode},

	"ul": {kind: kindList},
	"ol": {kind: kindList, ordered: true},
	"li": {kind: kindListItem},

	"table": {kind: kindTable},
	"tr":    {kind: kindTableRow},
	"td":    {kind: kindTableCell},
	"th":    {kind: kindTableCell},

	"blockquote": {kind: kindBlockquote},
	"br":         {kind: kindLineBreak},
	"hr":         {kind: kindRule},

	"html":       {kind: kindBlock},
	"body":       {kind: kindBlock},
	"p":          {kind: kindBlock},
	"div":        {kind: kindBlock},
	"section":    {kind: kindBlock},
	"article":    {kind: kindBlock},
	"main":       {kind: kindBlock},
	"header":     {kind: kindBlock},
	"footer":     {kind: kindBlock},
	"aside":      {kind: kindBlock},
	"nav":        {kind: kindBlock},
	"figure":     {kind: kindBlock},
	"figcaption": {kind: kindBlock},
	"address":    {kind: kindBlock},
	"details":    {kind: kindBlock},
	"summary":    {kind: kindBlock},
	"dl":         {kind: kindBlock},
	"dt":         {kind: kindBlock},
	"dd":         {kind: kindBlock},
	"fieldset":   {kind: kindBlock},
	"center":     {kind: kindBlock},
	"hgroup":     {kind: kindBlock},
	"caption":    {kind: kindBlock},
	"thead":      {kind: kindBlock},
	"tbody":      {kind: kindBlock},
	"tfoot":      {kind: kindBlock},
	"form":       {kind: kindBlock},

	"head":     {kind: kindOmit},
	"title":    {kind: kindOmit},
	"meta":     {kind: kindOmit},
	"link":     {kind: kindOmit},
	"script":   {kind: kindOmit},
	"style":    {kind: kindOmit},
	"noscript": {kind: kindOmit},
	"template": {kind: kindOmit},
	"iframe":   {kind: kindOmit},
	"svg":      {kind: kindOmit},
	"canvas":   {kind: kindOmit},
	"button":   {kind: kindOmit},
	"input":    {kind: kindOmit},
	"select":   {kind: kindOmit},
	"textarea": {kind: kindOmit},
}

// ruleFor returns the rule for tag, falling back to generic inline.
func ruleFor(tag string) rule {
	if r, ok := rules[tag]; ok {
		return r
	}
	return rule{kind: kindInline}
}
