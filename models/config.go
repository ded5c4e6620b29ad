// Package models defines data structures for records, taxonomies and aggregates.
package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for a run. CLI flags override every field.
type Config struct {
	TaxonomyPath string `yaml:"taxonomy"`
	MatchMode    string `yaml:"match"`
	OutputDir    string `yaml:"output_dir"`
	DBPath       string `yaml:"db"`
	TopN         int    `yaml:"top"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		MatchMode: MatchToken.String(),
		OutputDir: "results",
		TopN:      5,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
