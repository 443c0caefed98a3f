// Package config loads the carbonpack configuration file.
//
// Configuration is optional: a missing file yields defaults, and every value
// can be overridden by a CLI flag.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Factors FactorsConfig `yaml:"factors"`
}

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to "info".
	Level string `yaml:"level"`
	// Format is "console" or "json". Defaults to "console".
	Format string `yaml:"format"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	// DefaultFormat is used when --format is not given. Defaults to "pdf".
	DefaultFormat string `yaml:"default_format"`
}

// FactorsConfig points at an optional factor overlay file.
type FactorsConfig struct {
	// Overlay is a path to a YAML factor overlay, empty for none.
	Overlay string `yaml:"overlay"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{DefaultFormat: "pdf"},
	}
}

// DefaultPath returns the conventional config location,
// $HOME/.carbonpack/config.yaml, or empty when the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".carbonpack", "config.yaml")
}

// Load reads the config at path, falling back to defaults when path is
// empty or the file does not exist. A present but malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Output.DefaultFormat == "" {
		cfg.Output.DefaultFormat = "pdf"
	}
	return cfg, nil
}
