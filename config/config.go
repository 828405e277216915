// Package config loads the toolkit configuration from YAML or JSON,
// with optional .env overrides for paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete toolkit configuration.
type Config struct {
	Watchlist []string      `json:"watchlist" yaml:"watchlist"`
	Data      DataConfig    `json:"data" yaml:"data"`
	Journal   JournalConfig `json:"journal" yaml:"journal"`
	Scan      ScanConfig    `json:"scan" yaml:"scan"`
}

// DataConfig locates the persisted ledger state.
type DataConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// JournalConfig selects the closed-trade journal backend.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ScanConfig tunes the trade scan.
type ScanConfig struct {
	WeeksOut     int     `json:"weeks_out" yaml:"weeks_out"`
	MinRiskRatio float64 `json:"min_risk_ratio" yaml:"min_risk_ratio"`
}

// LoadFromFile reads configuration from a YAML or JSON file, applies
// .env overrides, and validates.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv loads a .env file if present and overrides path settings
// from the environment.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if dir := os.Getenv("SWING_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if path := os.Getenv("SWING_JOURNAL_PATH"); path != "" {
		c.Journal.Path = path
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	for _, t := range c.Watchlist {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("watchlist contains an empty ticker")
		}
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Scan.WeeksOut <= 0 {
		return fmt.Errorf("scan.weeks_out must be positive")
	}
	if c.Scan.MinRiskRatio < 0 {
		return fmt.Errorf("scan.min_risk_ratio must not be negative")
	}
	return nil
}

// SaveToFile writes the configuration as YAML (or JSON for .json).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Watchlist: []string{"NVDA", "MU", "TSLA", "BABA"},
		Data:      DataConfig{Dir: "."},
		Journal:   JournalConfig{Type: "none"},
		Scan: ScanConfig{
			WeeksOut:     3,
			MinRiskRatio: 1.5,
		},
	}
}
