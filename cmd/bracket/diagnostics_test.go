package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwe-app/bracket"
)

func TestFormatOneNonBracketErrorIsPlainText(t *testing.T) {
	err := assertError("plain failure")
	got := formatOne(err)
	assert.Contains(t, got, "plain failure")
}

func TestFormatOneBracketErrorIncludesKindAndSnippet(t *testing.T) {
	reg := bracket.NewRegistry()
	_, err := reg.Compile(bracket.NewSource("t", `{{#if x}}unclosed`))
	require.Error(t, err)

	got := formatOne(err)
	assert.Contains(t, got, "unclosed block")
}

// TestPrintDiagnosticAggregatesMultierrorCauses confirms every boundary
// a render failure crossed is listed, numbered innermost-first, not just
// the first or last cause.
func TestPrintDiagnosticAggregatesMultierrorCauses(t *testing.T) {
	reg := bracket.NewRegistry()
	reg.RegisterHelper("fail", func(args bracket.HelperArgs) (bracket.Value, error) {
		return bracket.Value{}, assertError("boom")
	})
	require.NoError(t, reg.RegisterTemplate("t", bracket.NewSource("t", `{{fail}}`)))

	_, err := reg.Render("t", nil)
	require.Error(t, err)

	got := printDiagnostic(err)
	assert.Contains(t, got, "[1]")
	assert.Contains(t, got, "[2]")
	assert.Contains(t, got, "boom")
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func assertError(msg string) error { return simpleError(msg) }
