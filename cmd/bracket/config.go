package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is cmd/bracket's full set of knobs. Precedence (highest to
// lowest): flags > config file > these defaults.
type Config struct {
	Root    string `koanf:"root"`
	Ext     string `koanf:"ext"`
	Verbose bool   `koanf:"verbose"`
}

func defaultConfig() *Config {
	return &Config{Root: ".", Ext: ".hbs"}
}

// loadConfig layers an optional YAML config file under the flags cobra
// already parsed onto the built-in defaults. Bracket's flag surface is
// small enough that flags are read directly off the FlagSet rather than
// through a koanf posflag provider.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	cfg := defaultConfig()

	path := cfgFile
	if path == "" {
		path = "bracket.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "root":
			cfg.Root = f.Value.String()
		case "ext":
			cfg.Ext = f.Value.String()
		case "verbose":
			cfg.Verbose, _ = flags.GetBool("verbose")
		}
	})

	return cfg, nil
}
