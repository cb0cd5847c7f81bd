package bracket

import (
	"strings"
	"testing"
)

func TestSpanTextReturnsCoveredBytes(t *testing.T) {
	src := NewSource("t", "hello world")
	sp := Span{Source: src, Start: 6, End: 11}
	if got := sp.Text(); got != "world" {
		t.Fatalf("got %q", got)
	}
}

func TestSpanIsZero(t *testing.T) {
	if !(Span{}).IsZero() {
		t.Fatal("zero-value Span should report IsZero")
	}
	src := NewSource("t", "x")
	if (Span{Source: src, Start: 0, End: 1}).IsZero() {
		t.Fatal("a Span with a Source should not report IsZero")
	}
}

func TestJoinSpanCoversBothRanges(t *testing.T) {
	src := NewSource("t", "0123456789")
	a := Span{Source: src, Start: 2, End: 4}
	b := Span{Source: src, Start: 6, End: 8}
	got := joinSpan(a, b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("got [%d,%d), want [2,8)", got.Start, got.End)
	}
}

func TestJoinSpanAbsorbsZeroSpan(t *testing.T) {
	src := NewSource("t", "abc")
	a := Span{Source: src, Start: 0, End: 1}
	if got := joinSpan(Span{}, a); got != a {
		t.Fatalf("joinSpan(zero, a) = %+v, want %+v", got, a)
	}
	if got := joinSpan(a, Span{}); got != a {
		t.Fatalf("joinSpan(a, zero) = %+v, want %+v", got, a)
	}
}

func TestLineColFirstLine(t *testing.T) {
	text := "abc\ndef"
	line, col := lineCol(text, 1)
	if line != 1 || col != 2 {
		t.Fatalf("got line=%d col=%d, want line=1 col=2", line, col)
	}
}

func TestLineColSecondLine(t *testing.T) {
	text := "abc\ndef"
	line, col := lineCol(text, 5) // 'e' in "def"
	if line != 2 || col != 2 {
		t.Fatalf("got line=%d col=%d, want line=2 col=2", line, col)
	}
}

// TestLineColWideRunesUseDisplayWidth confirms column counting is in
// Unicode display-width units, not bytes: a wide rune before the target
// offset advances the column by its display width, not its byte length.
func TestLineColWideRunesUseDisplayWidth(t *testing.T) {
	text := "中x" // "中" is 3 bytes, display width 2
	_, col := lineCol(text, len("中"))
	if col != 3 {
		t.Fatalf("got col=%d, want 3 (display width 2 plus 1)", col)
	}
}

func TestLineTextReturnsSurroundingLineWithoutNewline(t *testing.T) {
	text := "first\nsecond\nthird"
	if got := lineText(text, 8); got != "second" { // offset inside "second"
		t.Fatalf("got %q, want %q", got, "second")
	}
	if got := lineText(text, 0); got != "first" {
		t.Fatalf("got %q, want %q", got, "first")
	}
	if got := lineText(text, len(text)); got != "third" {
		t.Fatalf("got %q, want %q", got, "third")
	}
}

func TestSnippetIncludesNameLineColAndCaret(t *testing.T) {
	src := NewSource("greet.hbs", "Hello {{name}}")
	sp := Span{Source: src, Start: 7, End: 13} // "{name}"
	got := snippet(sp)
	if !strings.HasPrefix(got, "greet.hbs:1:8\n") {
		t.Fatalf("got %q, want a header line greet.hbs:1:8", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header, source, caret), got %q", len(lines), got)
	}
	if lines[1] != "Hello {{name}}" {
		t.Fatalf("source line = %q", lines[1])
	}
	if want := strings.Repeat(" ", 7) + strings.Repeat("^", 6); lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestSnippetZeroSpanIsEmpty(t *testing.T) {
	if got := snippet(Span{}); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestSnippetMultilineSpanUnderlinesOnlyFirstLine(t *testing.T) {
	src := NewSource("t", "a{{x\ny}}b")
	sp := Span{Source: src, Start: 1, End: len(src.Text) - 1} // "{{x\ny}}"
	got := snippet(sp)
	lines := strings.Split(got, "\n")
	// only "a{{x" - the first physical line - is reproduced as source
	if lines[1] != "a{{x" {
		t.Fatalf("source line = %q, want %q", lines[1], "a{{x")
	}
}
