package main

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/webmd"
	"golang.org/x/net/html"
)

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	res, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}

	doc, err := deps.Parser.Parse(bytes.NewReader(res.Body), res.ContentType)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webmd.ErrorMessage(err))
		return err
	}
	doc = deps.Sanitizer.Sanitize(doc)

	candidates := deps.Scorer.Candidates(doc)
	if len(candidates) == 0 {
		fmt.Fprintln(deps.Stdout, "No candidates found")
		return nil
	}
	if c.Limit > 0 && len(candidates) > c.Limit {
		candidates = candidates[:c.Limit]
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tELEMENT\tSCORE\tTAG\tHINT\tTEXT\tCHARS\tCOMMAS\tLINKS\tCHILDREN")
	for i, cand := range candidates {
		b := cand.Breakdown
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.0f\t%.0f\t%.2f\t%d\t%d\t%.2f\t%.2f\n",
			i+1, describe(cand.Node), cand.Score, b.Tag, b.Hint, b.Text, b.TextLength, b.Commas, b.LinkDensity, b.Propagated)
	}
	return w.Flush()
}

func (c *ExplainCmd) load(deps *Dependencies) (*webmd.Resource, error) {
	if strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://") {
		return deps.Fetcher.Fetch(deps.Ctx, c.Source)
	}
	body, err := readSource(c.Source)
	if err != nil {
		return nil, err
	}
	return &webmd.Resource{Body: body}, nil
}

// describe renders an element as a CSS-like selector: div#main.post.
func describe(n *html.Node) string {
	var b strings.Builder
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			if a.Val != "" {
				b.WriteString("#" + a.Val)
			}
		case "class":
			for _, cls := range strings.Fields(a.Val) {
				b.WriteString("." + cls)
			}
		}
	}
	return b.String()
}
