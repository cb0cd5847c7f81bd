package bracket

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Source is a named byte string. Templates and the AST nodes they
// produce borrow from it for the lifetime of the Source; a Source must
// outlive every Template compiled from it.
type Source struct {
	Name string
	Text string
}

// NewSource wraps text under a logical name used in diagnostics.
func NewSource(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

func (s *Source) String() string {
	return s.Name
}

// Span is a half-open byte range [Start, End) into exactly one Source.
type Span struct {
	Source *Source
	Start  int
	End    int
}

// IsZero reports whether the span carries no source (the zero value).
func (sp Span) IsZero() bool {
	return sp.Source == nil
}

// Text returns the source bytes the span covers.
func (sp Span) Text() string {
	if sp.IsZero() {
		return ""
	}
	return sp.Source.Text[sp.Start:sp.End]
}

// joinSpan returns the smallest span covering both a and b. Both must share
// a Source; the zero Span is absorbed.
func joinSpan(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{Source: a.Source, Start: start, End: end}
}

// lineCol returns the 1-based line and column (in display-width units,
// not bytes) of the byte offset off within text.
func lineCol(text string, off int) (line, col int) {
	if off > len(text) {
		off = len(text)
	}
	line = 1
	lastNL := -1
	for i := 0; i < off; i++ {
		if text[i] == '\n' {
			line++
			lastNL = i
		}
	}
	col = uniseg.StringWidth(text[lastNL+1:off]) + 1
	return
}

// lineText returns the full line of text surrounding byte offset off,
// without its trailing newline.
func lineText(text string, off int) string {
	if off > len(text) {
		off = len(text)
	}
	start := strings.LastIndexByte(text[:off], '\n') + 1
	end := strings.IndexByte(text[off:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : off+end]
}

// snippet renders a source line with a caret underline beneath sp,
// using Unicode display width so wide runes and emoji line up.
func snippet(sp Span) string {
	if sp.IsZero() {
		return ""
	}
	text := sp.Source.Text
	line, col := lineCol(text, sp.Start)
	src := lineText(text, sp.Start)

	// A span may cross a newline; underline only through the end of its
	// first line.
	underlined := sp.Text()
	if nl := strings.IndexByte(underlined, '\n'); nl >= 0 {
		underlined = underlined[:nl]
	}
	width := uniseg.StringWidth(underlined)
	if width < 1 {
		width = 1
	}

	pad := strings.Repeat(" ", col-1)
	caret := strings.Repeat("^", width)
	return fmt.Sprintf("%s:%d:%d\n%s\n%s%s", sp.Source.Name, line, col, src, pad, caret)
}
