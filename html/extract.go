package html

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Default extraction thresholds.
const (
	DefaultMinScore          = 1.0
	DefaultLinkDensityLimit  = 0.5
	DefaultPruneTextLength   = 200
	hintWeight               = 25.0
	grandparentPropagateRate = 0.5
)

// Ensure Extractor implements webmd.Extractor at compile time.
var _ webmd.Extractor = (*Extractor)(nil)

// candidateTags are the containers considered as content roots, with the
// base score each one starts from.
var candidateTags = map[string]float64{
	"article":    10,
	"main":       10,
	"div":        5,
	"section":    3,
	"pre":        3,
	"td":         3,
	"blockquote": 3,
	"p":          0,
	"body":       0,
}

// excludedTags are never candidates and their text never counts toward an
// ancestor's score.
var excludedTags = map[string]bool{
	"nav":    true,
	"aside":  true,
	"footer": true,
	"header": true,
	"form":   true,
}

// pruneTags are the containers removed from the winning root when they are
// short and made mostly of links.
var pruneTags = map[string]bool{
	"div":     true,
	"section": true,
	"aside":   true,
	"nav":     true,
	"ul":      true,
	"ol":      true,
	"table":   true,
	"footer":  true,
	"header":  true,
	"form":    true,
	"menu":    true,
}

var (
	positiveHint = regexp.MustCompile(`(?i)article|content|main|post|entry|body|text|story|blog`)
	negativeHint = regexp.MustCompile(`(?i)sidebar|footer|comment|nav|menu|(?:^|[^a-z])ads?(?:$|[^a-z])|banner|share|related|social|promo|sponsor|widget|masthead|breadcrumb|cookie`)
)

// Breakdown explains how a candidate's score was computed.
type Breakdown struct {
	// Tag is the base score of the element's tag.
	Tag float64

	// Hint is the class/id bonus or penalty.
	Hint float64

	// Text is the score earned by the element's direct text.
	Text float64

	// TextLength is the length in characters of the direct text.
	TextLength int

	// Commas counts commas in the direct text.
	Commas int

	// LinkDensity is the share of the direct text inside anchors.
	LinkDensity float64

	// Propagated is the text score received from descendant candidates.
	Propagated float64
}

// Content is the part of the score earned by text, without the tag and
// hint bonuses.
func (b Breakdown) Content() float64 {
	return b.Text + b.Propagated
}

// Candidate is an element considered as the content root.
type Candidate struct {
	Node      *html.Node
	Score     float64
	Breakdown Breakdown

	// total text length of the whole subtree
	totalLen int
}

// Extractor selects a document's main content by scoring candidate
// containers for text density, link density and class/id hints.
// An Extractor is immutable and safe for concurrent use.
type Extractor struct {
	minScore         float64
	linkDensityLimit float64
	pruneTextLength  int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinScore sets the text score a candidate must reach to qualify.
// Defaults to DefaultMinScore.
func WithMinScore(score float64) Option {
	return func(e *Extractor) {
		e.minScore = score
	}
}

// WithLinkDensityLimit sets the link density above which short containers
// inside the winning root are pruned. Defaults to DefaultLinkDensityLimit.
func WithLinkDensityLimit(limit float64) Option {
	return func(e *Extractor) {
		e.linkDensityLimit = limit
	}
}

// WithPruneTextLength sets the text length below which link-heavy
// containers are pruned. Defaults to DefaultPruneTextLength.
func WithPruneTextLength(n int) Option {
	return func(e *Extractor) {
		e.pruneTextLength = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		minScore:         DefaultMinScore,
		linkDensityLimit: DefaultLinkDensityLimit,
		pruneTextLength:  DefaultPruneTextLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the highest scoring candidate with residual boilerplate
// pruned. Only candidates whose text score, their own plus what descendants
// propagated, reaches the minimum qualify; tag and class/id bonuses rank
// candidates but never qualify one on their own. Ties go to the candidate
// that comes first in the document. The returned node is part of doc,
// which is modified by pruning.
func (e *Extractor) Extract(doc *html.Node) (*html.Node, error) {
	var best, bestContent *Candidate
	for _, c := range e.score(doc) {
		if c.totalLen == 0 {
			continue
		}
		if bestContent == nil || c.Breakdown.Content() > bestContent.Breakdown.Content() {
			bestContent = c
		}
		if c.Breakdown.Content() < e.minScore {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = c
		}
	}
	if bestContent == nil {
		return nil, webmd.Errorf(webmd.EEXTRACT, "no readable content found")
	}
	if best == nil {
		return nil, webmd.Errorf(webmd.EEXTRACT, "no readable content found: best candidate <%s> has text score %.2f, need %.2f",
			bestContent.Node.Data, bestContent.Breakdown.Content(), e.minScore)
	}

	e.prune(best.Node)
	return best.Node, nil
}

// Candidates returns every scored candidate, highest score first. Equal
// scores keep document order. The document is not modified.
func (e *Extractor) Candidates(doc *html.Node) []Candidate {
	scored := e.score(doc)
	out := make([]Candidate, len(scored))
	for i, c := range scored {
		out[i] = *c
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// score walks the tree once. Parent and grandparent candidates are passed
// down explicitly; a candidate's text score is pushed up to them after its
// subtree has been visited.
func (e *Extractor) score(doc *html.Node) []*Candidate {
	var candidates []*Candidate

	var walk func(n *html.Node, parent, grandparent *Candidate)
	walk = func(n *html.Node, parent, grandparent *Candidate) {
		if n.Type == html.ElementNode && isExcluded(n) {
			return
		}

		var c *Candidate
		if n.Type == html.ElementNode {
			if base, ok := candidateTags[n.Data]; ok {
				c = &Candidate{Node: n}
				c.Breakdown.Tag = base
				c.Breakdown.Hint = classWeight(n)
				candidates = append(candidates, c)
			}
		}

		childParent, childGrandparent := parent, grandparent
		if c != nil {
			childParent, childGrandparent = c, parent
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, childParent, childGrandparent)
		}

		if c == nil {
			return
		}
		measureDirect(c)
		c.totalLen, _ = linkStats(n)
		if parent != nil {
			parent.Breakdown.Propagated += c.Breakdown.Text
		}
		if grandparent != nil {
			grandparent.Breakdown.Propagated += c.Breakdown.Text * grandparentPropagateRate
		}
	}
	walk(doc, nil, nil)

	for _, c := range candidates {
		b := c.Breakdown
		c.Score = b.Tag + b.Hint + b.Text + b.Propagated
	}
	return candidates
}

// measureDirect computes the text score from the text of c that is not
// inside a nested candidate or an excluded element.
func measureDirect(c *Candidate) {
	var length, linkLength, commas int

	var walk func(n *html.Node, inLink bool)
	walk = func(n *html.Node, inLink bool) {
		switch n.Type {
		case html.TextNode:
			l := textLen(n.Data)
			length += l
			if inLink {
				linkLength += l
			}
			commas += strings.Count(n.Data, ",")
			return
		case html.ElementNode:
			if n != c.Node {
				if isExcluded(n) {
					return
				}
				if _, ok := candidateTags[n.Data]; ok {
					return
				}
			}
			if n.Data == "a" {
				inLink = true
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inLink)
		}
	}
	walk(c.Node, false)

	b := &c.Breakdown
	b.TextLength = length
	b.Commas = commas
	if length == 0 {
		return
	}
	b.LinkDensity = float64(linkLength) / float64(length)
	b.Text = (1 + float64(commas) + math.Min(float64(length)/100, 3)) * (1 - b.LinkDensity)
}

// linkStats returns the text length of the whole subtree of n and the
// length of the part inside anchors.
func linkStats(n *html.Node) (length, linkLength int) {
	var walk func(n *html.Node, inLink bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.TextNode {
			l := textLen(n.Data)
			length += l
			if inLink {
				linkLength += l
			}
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			inLink = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inLink)
		}
	}
	walk(n, false)
	return length, linkLength
}

// prune removes short, link-heavy containers below root.
func (e *Extractor) prune(root *html.Node) {
	var doomed []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if pruneTags[c.Data] && e.isBoilerplate(c) {
				doomed = append(doomed, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)

	for _, n := range doomed {
		n.Parent.RemoveChild(n)
	}
}

func (e *Extractor) isBoilerplate(n *html.Node) bool {
	length, linkLength := linkStats(n)
	if length == 0 || length >= e.pruneTextLength {
		return false
	}
	return float64(linkLength)/float64(length) > e.linkDensityLimit
}

// isExcluded reports whether n and its subtree are left out of scoring.
func isExcluded(n *html.Node) bool {
	if excludedTags[n.Data] || hasAttr(n, "hidden") {
		return true
	}
	switch attr(n, "role") {
	case "navigation", "complementary", "contentinfo", "banner":
		return true
	}
	switch n.Data {
	case "body", "article", "main":
		return false
	}
	hints := hintText(n)
	return hints != "" && negativeHint.MatchString(hints) && !positiveHint.MatchString(hints)
}

// classWeight scores the class and id attributes of n.
func classWeight(n *html.Node) float64 {
	hints := hintText(n)
	if hints == "" {
		return 0
	}
	var weight float64
	if positiveHint.MatchString(hints) {
		weight += hintWeight
	}
	if negativeHint.MatchString(hints) {
		weight -= hintWeight
	}
	return weight
}

func hintText(n *html.Node) string {
	return strings.TrimSpace(attr(n, "class") + " " + attr(n, "id"))
}
