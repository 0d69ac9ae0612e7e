// Package config holds the semantic core's run configuration and language
// constants. Configuration is loaded from an optional swayc.yaml; every
// field has a default so the file may be absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls checker behavior for one compilation run.
type Config struct {
	// GenericShadowing selects whether a generic type parameter may shadow
	// another generic parameter in the same function scope: "allow" or
	// "disallow".
	GenericShadowing string `yaml:"generic_shadowing"`

	// MaxErrors caps accumulated hard errors (0 = unlimited).
	MaxErrors int `yaml:"max_errors"`

	// Color enables ANSI color in rendered diagnostics when stdout is a
	// terminal.
	Color bool `yaml:"color"`

	// LogLevel is the zerolog level for the session logger ("disabled",
	// "debug", "info", ...).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no swayc.yaml is present.
func Default() Config {
	return Config{
		GenericShadowing: "disallow",
		MaxErrors:        DefaultMaxErrors,
		Color:            true,
		LogLevel:         "disabled",
	}
}

// Load reads a YAML configuration file, filling unset fields with defaults.
// A missing file is not an error; it yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.GenericShadowing {
	case "allow", "disallow":
	default:
		return fmt.Errorf("config: invalid generic_shadowing %q (want allow or disallow)", c.GenericShadowing)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("config: max_errors must be >= 0, got %d", c.MaxErrors)
	}
	return nil
}
