package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"

	"github.com/uwe-app/bracket"
)

var (
	errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorBody  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	snippetDim = lipgloss.NewStyle().Faint(true)
	okLabel    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// printDiagnostic renders err as a colorized, multi-cause-aware report:
// a *bracket.Error is styled by formatOne (kind label colorized, message
// and snippet styled), and a *multierror.Error lists every boundary the
// failure crossed on its way back up the render stack, innermost first.
func printDiagnostic(err error) string {
	var me *multierror.Error
	if errors.As(err, &me) {
		out := ""
		for i, cause := range me.Errors {
			out += fmt.Sprintf("%s %s\n", errorLabel.Render(fmt.Sprintf("[%d]", i+1)), formatOne(cause))
		}
		return out
	}
	return formatOne(err)
}

// formatOne colorizes a *bracket.Error's "kind: message" header and
// dims its source snippet lines, without altering their content -
// anything that isn't a *bracket.Error is printed as plain text.
func formatOne(err error) string {
	var be *bracket.Error
	if !errors.As(err, &be) {
		return errorBody.Render(err.Error())
	}
	lines := strings.SplitN(be.Error(), "\n", 2)
	header := errorLabel.Render(be.Kind.String()+":") + errorBody.Render(strings.TrimPrefix(lines[0], be.Kind.String()+":"))
	if len(lines) == 1 {
		return header
	}
	return header + "\n" + snippetDim.Render(lines[1])
}
