// Package config reads and writes grid.yaml, the workspace-level settings
// file. The books file itself carries the ledger metadata; this only
// covers defaults for creating and locating books.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level grid.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Fiscal  FiscalConfig  `yaml:"fiscal"`
	Books   BooksConfig   `yaml:"books"`
}

// CompanyConfig identifies the company new books are created for.
type CompanyConfig struct {
	Name string `yaml:"name"`
}

// FiscalConfig defines the default fiscal year end.
type FiscalConfig struct {
	YearEnd string `yaml:"year_end"` // "MM-DD" format, e.g. "12-31"
}

// BooksConfig locates the ledger file.
type BooksConfig struct {
	Path string `yaml:"path"`
}

// Load reads a grid.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for new books.
func Default(companyName, booksPath string) *Config {
	return &Config{
		Company: CompanyConfig{Name: companyName},
		Fiscal:  FiscalConfig{YearEnd: "12-31"},
		Books:   BooksConfig{Path: booksPath},
	}
}
