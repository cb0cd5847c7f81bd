// Command bracket is a small CLI over the bracket template engine: it
// renders a template against JSON data, lints a template without
// rendering it, and watches a template directory for changes.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// buildLogger returns a stderr-writing logger at debug level when
// verbose is set, or the discard logger Registry.Logger otherwise
// defaults to.
func buildLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:           "bracket",
		Short:         "Render and inspect bracket templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./bracket.yaml)")
	root.PersistentFlags().StringVar(&cfg.Root, "root", cfg.Root, "directory templates and partials are loaded from")
	root.PersistentFlags().StringVar(&cfg.Ext, "ext", cfg.Ext, "template file extension")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log helper/loader activity to stderr")

	root.AddCommand(newRenderCmd(cfg))
	root.AddCommand(newCheckCmd(cfg))
	root.AddCommand(newWatchCmd(cfg))

	return root
}
