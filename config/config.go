// Package config handles knoten.toml runtime configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file the runtime looks for.
const FileName = "knoten.toml"

// Config represents a knoten.toml runtime configuration.
type Config struct {
	Runtime Runtime `toml:"runtime"`
	Display Display `toml:"display"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the knoten.toml file (set at
	// load time; empty for defaults).
	Dir string `toml:"-"`
}

// Runtime configures the evaluator.
type Runtime struct {
	// MaxDepth caps evaluation recursion depth. Zero means the
	// engine default.
	MaxDepth int `toml:"max-depth"`
}

// Display configures default surface creation and loop bounds.
type Display struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// MaxFrames bounds how many frames a surface accepts before
	// reporting closed. Zero means unbounded.
	MaxFrames int `toml:"max-frames"`
}

// Log configures diagnostics verbosity.
type Log struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the configuration used when no knoten.toml exists.
func Default() *Config {
	return &Config{
		Display: Display{
			Width:  640,
			Height: 480,
		},
	}
}

// Load parses a knoten.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if c.Runtime.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: runtime.max-depth must not be negative", path)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return nil, fmt.Errorf("%s: display dimensions must be positive", path)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a knoten.toml file, then
// loads and returns it. Returns defaults if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}
