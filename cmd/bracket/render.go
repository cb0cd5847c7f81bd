package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/uwe-app/bracket"
	"github.com/uwe-app/bracket/loader"
)

func newRenderCmd(cfg *Config) *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a template under --root against JSON data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSuffix(args[0], cfg.Ext)

			reg := bracket.NewRegistry()
			reg.Logger = buildLogger(cfg.Verbose)

			fl := loader.NewFSLoader(cfg.Root, reg)
			fl.Ext = cfg.Ext
			if err := registerPartials(fl, cfg.Root, cfg.Ext, name); err != nil {
				return err
			}

			tpl, err := fl.Template(name)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), printDiagnostic(err))
				return fmt.Errorf("rendering %q failed", name)
			}

			data, err := readData(dataPath)
			if err != nil {
				return err
			}

			out, err := reg.RenderTemplate(tpl, data)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), out)
				fmt.Fprint(cmd.ErrOrStderr(), printDiagnostic(err))
				return fmt.Errorf("rendering %q failed", name)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "JSON data file (default: stdin, or {} if a terminal)")
	return cmd
}

// readData loads render data from a JSON file, or from stdin when path
// is empty and stdin isn't a terminal.
func readData(path string) (interface{}, error) {
	var r io.Reader
	switch {
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening data file: %w", err)
		}
		defer f.Close()
		r = f
	default:
		stat, _ := os.Stdin.Stat()
		if stat.Mode()&os.ModeCharDevice != 0 {
			return map[string]interface{}{}, nil
		}
		r = os.Stdin
	}

	var data interface{}
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding JSON data: %w", err)
	}
	return data, nil
}

// registerPartials registers every other template under root as a
// partial available to name, so "{{> header}}" resolves without the
// caller having to list partials one by one.
func registerPartials(fl *loader.FSLoader, root, ext, skip string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading template root %q: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ext)
		if base == skip {
			continue
		}
		if err := fl.RegisterPartial(base); err != nil {
			return fmt.Errorf("registering partial %q: %w", base, err)
		}
	}
	return nil
}
