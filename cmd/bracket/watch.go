package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/uwe-app/bracket"
	"github.com/uwe-app/bracket/loader"
)

// newWatchCmd runs a loader's fsnotify watch over --root, logging each
// cache invalidation, until interrupted. It compiles no templates itself.
func newWatchCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch --root for changes and log each template invalidation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := bracket.NewRegistry()
			reg.Logger = buildLogger(true)

			fl := loader.NewFSLoader(cfg.Root, reg)
			fl.Ext = cfg.Ext
			fl.Logger = reg.Logger

			if err := fl.Watch(); err != nil {
				return err
			}
			defer fl.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s for %s files, press Ctrl+C to stop\n", cfg.Root, cfg.Ext)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			return nil
		},
	}
}
