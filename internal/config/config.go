// Package config loads linescope settings from a YAML file and provides
// defaults when no file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"linescope/internal/imaging"
	"linescope/internal/pipeline"
)

// Config is the application configuration loaded from YAML.
type Config struct {
	// Viewport bounds the scaled composite returned by each recompute.
	Viewport struct {
		MaxWidth  int `yaml:"maxWidth"`
		MaxHeight int `yaml:"maxHeight"`
	} `yaml:"viewport"`

	// Markers selects the overlay colors and stroke width.
	Markers struct {
		// EdgeColor and LineColor are "#RRGGBB" hex strings.
		EdgeColor string `yaml:"edgeColor"`
		LineColor string `yaml:"lineColor"`
		LineWidth int    `yaml:"lineWidth"`
	} `yaml:"markers"`

	// Defaults is the parameter set applied at startup.
	Defaults pipeline.ParameterSet `yaml:"defaults"`
}

// Default returns the built-in configuration: the standard viewport, red
// edge markers, green 2-pixel line strokes and the default tuning knobs.
func Default() *Config {
	cfg := &Config{}
	cfg.Viewport.MaxWidth = imaging.DefaultViewportWidth
	cfg.Viewport.MaxHeight = imaging.DefaultViewportHeight
	cfg.Markers.EdgeColor = "#ff0000"
	cfg.Markers.LineColor = "#00ff00"
	cfg.Markers.LineWidth = 2
	cfg.Defaults = pipeline.DefaultParameters()
	return cfg
}

// Load reads configuration from a YAML file. A missing file is not an
// error; it yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
