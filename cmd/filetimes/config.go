package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ScanConfig mirrors the scan subcommand's flags so recurring scans can
// be kept in a checked-in yaml file.
type ScanConfig struct {
	Root     string   `yaml:"root"`
	Patterns []string `yaml:"patterns"`
}

func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{
		Root: ".",
	}
}

func LoadScanConfig(name string) (*ScanConfig, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}

	config := DefaultScanConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("scan config: %w", err)
	}

	return config, nil
}

// Matches reports whether the slash-separated relative path is selected
// by any configured pattern.
func (config *ScanConfig) Matches(path string) bool {
	for _, pattern := range config.Patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
