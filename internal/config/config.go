// Package config loads bookshelf settings from flags, environment and an
// optional YAML file.
//
// Precedence, highest first: explicitly set flags, BOOKSHELF_* environment
// variables, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. BOOKSHELF_FORMAT.
const EnvPrefix = "BOOKSHELF"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidLogLevels defines the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds resolved settings.
type Config struct {
	Format       string `mapstructure:"format" yaml:"format"`
	Verbose      bool   `mapstructure:"verbose" yaml:"verbose"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	SeedDefaults bool   `mapstructure:"seed_defaults" yaml:"seed_defaults"`
	Trace        bool   `mapstructure:"trace" yaml:"trace"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:       "text",
		LogLevel:     "warn",
		SeedDefaults: true,
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile is an explicit config file path. It must exist if set.
	ConfigFile string

	// SearchPaths are directories searched for bookshelf.yaml when
	// ConfigFile is empty. A missing file is not an error.
	SearchPaths []string

	// Flags, if set, are bound so that explicitly changed flags win.
	Flags *pflag.FlagSet
}

// DefaultSearchPaths returns ".", $XDG_CONFIG_HOME/bookshelf and ~/.config/bookshelf.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "bookshelf"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bookshelf"))
	}
	return paths
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"format":    "format",
	"verbose":   "verbose",
	"log-level": "log_level",
	"trace":     "trace",
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	v.SetDefault("format", cfg.Format)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("seed_defaults", cfg.SeedDefaults)
	v.SetDefault("trace", cfg.Trace)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("bookshelf")
		v.SetConfigType("yaml")
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		if len(opts.SearchPaths) > 0 {
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("read config: %w", err)
				}
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// --no-seed is the inverse of seed_defaults.
	if opts.Flags != nil {
		if f := opts.Flags.Lookup("no-seed"); f != nil && f.Changed && f.Value.String() == "true" {
			cfg.SeedDefaults = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !slices.Contains(ValidLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q: must be one of %v", c.LogLevel, ValidLogLevels)
	}
	return nil
}

// SlogLevel returns the log level; Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
