package webmd

import (
	"regexp"
	"strings"
)

// First-line patterns for untagged code fences, tested in order. The
// javascript rule is a plain prefix match, so a line matching both is
// always javascript.
var (
	javascriptFirstLine = regexp.MustCompile(`^(?:class|function|import|const|let|var|if|for|while)`)
	pythonFirstLine     = regexp.MustCompile(`^(?:def|class|import|from|with|if|for|while)\s`)
)

// Classify tags untagged fenced code blocks with a language guessed from
// their first line. Fences that already name a language are left alone.
// fence is the delimiter the Markdown was serialized with. Fences nested in
// list items or blockquotes are recognized under their indent and ">"
// markers.
func Classify(markdown, fence string) string {
	if fence == "" || !strings.Contains(markdown, fence) {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	open := ""
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " >")
		if !strings.HasPrefix(trimmed, fence) {
			continue
		}
		if open != "" {
			if strings.TrimSpace(trimmed) == open {
				open = ""
			}
			continue
		}
		// A block may open with a longer run of the fence character when
		// its code contains the fence itself.
		open = fenceRun(trimmed, fence[0])
		if strings.TrimSpace(trimmed) != open || i+1 >= len(lines) {
			continue
		}
		prefix := line[:len(line)-len(trimmed)]
		if lang := guessLanguage(strings.TrimPrefix(lines[i+1], prefix)); lang != "" {
			lines[i] = prefix + open + lang
		}
	}
	return strings.Join(lines, "\n")
}

func fenceRun(line string, c byte) string {
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return line[:n]
}

func guessLanguage(firstLine string) string {
	switch {
	case javascriptFirstLine.MatchString(firstLine):
		return "javascript"
	case pythonFirstLine.MatchString(firstLine):
		return "python"
	}
	return ""
}
