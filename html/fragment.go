package html

import (
	"bytes"
	"strings"
)

// fragment accumulates the Markdown of sibling nodes. Inline output is
// concatenated; block output is separated from its neighbours by exactly
// one blank line.
type fragment struct {
	buf bytes.Buffer

	// pending is the separator owed before the next piece of content.
	pending string
}

// hardBreak is the Markdown rendering of <br>.
const hardBreak = "  \n"

// inline appends s to the current text run.
func (f *fragment) inline(s string) {
	if s == "" {
		return
	}
	if s == hardBreak {
		f.lineBreak()
		return
	}
	if f.atLineStart() || f.endsWithSpace() {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			return
		}
	}
	f.flush()
	f.buf.WriteString(s)
}

func (f *fragment) lineBreak() {
	if f.pending != "" {
		return
	}
	f.buf.Truncate(len(bytes.TrimRight(f.buf.Bytes(), " ")))
	if f.buf.Len() > 0 {
		f.buf.WriteString(hardBreak)
	}
}

// block appends s as a block separated by a blank line.
func (f *fragment) block(s string) {
	f.add(s, "\n\n")
}

// tight appends s as a block separated by a single newline. Nested lists
// use it so they attach directly to their item's text.
func (f *fragment) tight(s string) {
	f.add(s, "\n")
}

func (f *fragment) add(s, sep string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if f.pending == "" || sep == "\n\n" {
		f.pending = sep
	}
	f.flush()
	f.buf.WriteString(s)
	f.pending = "\n\n"
}

func (f *fragment) flush() {
	if f.pending == "" {
		return
	}
	f.buf.Truncate(len(bytes.TrimRight(f.buf.Bytes(), " \t\n")))
	if f.buf.Len() > 0 {
		f.buf.WriteString(f.pending)
	}
	f.pending = ""
}

func (f *fragment) atLineStart() bool {
	if f.pending != "" {
		return true
	}
	b := f.buf.Bytes()
	return len(b) > 0 && b[len(b)-1] == '\n'
}

func (f *fragment) endsWithSpace() bool {
	b := f.buf.Bytes()
	return len(b) > 0 && b[len(b)-1] == ' '
}

// String returns the accumulated Markdown. Edge whitespace of a pure
// inline run is preserved for the enclosing element to place.
func (f *fragment) String() string {
	return f.buf.String()
}
