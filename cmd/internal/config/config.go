// Package config loads the optional sumi.yaml render configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the optional sumi.yaml configuration. Command-line
// flags override anything set here.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Serve  ServeConfig  `yaml:"serve"`
}

// RenderConfig controls a single offline render.
type RenderConfig struct {
	Source string `yaml:"source,omitempty"`
	Output string `yaml:"output,omitempty"`
	Scale  int    `yaml:"scale,omitempty"`
}

// ServeConfig controls the HTTP render service.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LoadOptional reads sumi.yaml from dir if present. A missing file is
// not an error; the zero Config is returned instead.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "sumi.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read sumi.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sumi.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolved contains resolved render settings after applying defaults.
type Resolved struct {
	Source string
	Output string
	Scale  int
	Addr   string
}

// Resolve loads sumi.yaml (if present) and fills in defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	out := &Resolved{
		Source: cfg.Render.Source,
		Output: cfg.Render.Output,
		Scale:  cfg.Render.Scale,
		Addr:   cfg.Serve.Addr,
	}
	if out.Output == "" {
		out.Output = "out.png"
	}
	if out.Scale <= 0 {
		out.Scale = 1
	}
	if out.Addr == "" {
		out.Addr = ":8080"
	}
	return out, nil
}
