// Package config loads the engine configuration from YAML, layered over
// compiled-in defaults. Absent keys keep their default values, so a config
// file only needs to name what it changes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"semgate/internal/engine"
	"semgate/internal/session"
)

// #region types
// Store configures the session persistence layer.
type Store struct {
	// Path is the sqlite database file. Empty disables persistence.
	Path string `yaml:"path"`
}

// Log configures the structured logger.
type Log struct {
	Level       string `yaml:"level"` // debug | info | warn | error
	Development bool   `yaml:"development"`
}

// Config is the full application configuration.
type Config struct {
	Engine  engine.Config `yaml:"engine"`
	Session session.Caps  `yaml:"session"`
	Store   Store         `yaml:"store"`
	Log     Log           `yaml:"log"`
}

// #endregion types

// #region load
// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Engine:  engine.DefaultConfig(),
		Session: session.DefaultCaps(),
		Store:   Store{Path: "semgate.db"},
		Log:     Log{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// #endregion load
