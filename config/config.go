// Package config loads the host/server configuration file this module's
// binaries read at startup, the same `toml.Unmarshal`-a-flat-struct
// pattern chazu-maggie/manifest/manifest.go uses for `maggie.toml`.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level `inferno.toml` shape.
type Config struct {
	Prelude   Prelude   `toml:"prelude"`
	LSP       LSP       `toml:"lsp"`
	Log       Log       `toml:"log"`
	rawPath   string
}

// Prelude configures where a host's prelude modules are discovered.
type Prelude struct {
	SearchPaths []string `toml:"search_paths"`
}

// LSP configures the lspcore.Core this binary starts.
type LSP struct {
	// MaxHoverVersionsPerDoc bounds the hover index's per-document LRU
	// (SPEC_FULL.md §9 decision 1). Zero means "use lspcore's default".
	MaxHoverVersionsPerDoc int `toml:"max_hover_versions_per_doc"`
}

// Log configures telemetry's verbosity.
type Log struct {
	Level string `toml:"level"` // "debug", "info", "warning", "error"
}

// Path returns the filesystem path Config was loaded from, or "" for a
// programmatically constructed Config.
func (c *Config) Path() string { return c.rawPath }

// Default returns the zero-value configuration a host can run with
// before any file is found: no prelude search paths, lspcore's built-in
// hover LRU depth, "info" logging.
func Default() *Config {
	return &Config{Log: Log{Level: "info"}}
}

// Load reads and parses path as TOML, applying Default()'s values for
// any field the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.rawPath = path

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return c, nil
}
