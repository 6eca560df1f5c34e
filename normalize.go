package webmd

import (
	"regexp"
	"strings"
)

var blankLineRun = regexp.MustCompile(`\n{3,}`)

// Normalize collapses runs of three or more newlines into a single blank
// line and trims surrounding whitespace. Normalize(Normalize(s)) equals
// Normalize(s) for every s.
func Normalize(markdown string) string {
	return strings.TrimSpace(blankLineRun.ReplaceAllString(markdown, "\n\n"))
}
