// Package config loads pycx configuration files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for pycx.
type Config struct {
	// Complexity warning threshold
	Threshold int `koanf:"threshold" toml:"threshold"`

	// Report settings
	Report ReportConfig `koanf:"report" toml:"report"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ReportConfig controls what the report includes.
type ReportConfig struct {
	Raw            bool `koanf:"raw" toml:"raw"`
	IncludeImports bool `koanf:"include_imports" toml:"include_imports"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color  bool   `koanf:"color" toml:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold: 10,
		Report: ReportConfig{
			Raw:            false,
			IncludeImports: false,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"pycx.toml",
		"pycx.yaml",
		"pycx.yml",
		"pycx.json",
		".pycx.toml",
		".pycx.yaml",
		".pycx.yml",
		".pycx.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
