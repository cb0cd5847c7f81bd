package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uwe-app/bracket"
)

// newCheckCmd parses a template and reports diagnostics without
// rendering it, the lint/inspect mode original_source/examples/lint.rs
// and parser-document.rs model.
func newCheckCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>",
		Short: "Parse a template and report diagnostics without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSuffix(args[0], cfg.Ext)
			path := filepath.Join(cfg.Root, name+cfg.Ext)

			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			reg := bracket.NewRegistry()
			if _, err := reg.Compile(bracket.NewSource(path, string(text))); err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), printDiagnostic(err))
				return fmt.Errorf("%s has errors", path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), okLabel.Render("ok")+" "+path)
			return nil
		},
	}
}
