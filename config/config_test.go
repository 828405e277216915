package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
watchlist:
  - NVDA
  - MU
data:
  dir: /tmp/swing
journal:
  type: sqlite
  path: /tmp/swing/journal.db
scan:
  weeks_out: 3
  min_risk_ratio: 1.5
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"NVDA", "MU"}, cfg.Watchlist)
	assert.Equal(t, "/tmp/swing", cfg.Data.Dir)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, 3, cfg.Scan.WeeksOut)
	assert.InDelta(t, 1.5, cfg.Scan.MinRiskRatio, 1e-9)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "watchlist": ["TSLA"],
  "data": {"dir": "."},
  "journal": {"type": "none"},
  "scan": {"weeks_out": 2, "min_risk_ratio": 1.0}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TSLA"}, cfg.Watchlist)
	assert.Equal(t, 2, cfg.Scan.WeeksOut)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadGarbage(t *testing.T) {
	path := writeFile(t, "config.yaml", "::: not a config :::")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SWING_DATA_DIR", "/data/override")
	t.Setenv("SWING_JOURNAL_PATH", "/data/override/journal.csv")

	path := writeFile(t, "config.yaml", `
watchlist: [NVDA]
data:
  dir: /tmp/swing
journal:
  type: csv
  path: /tmp/swing/journal.csv
scan:
  weeks_out: 3
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/override", cfg.Data.Dir)
	assert.Equal(t, "/data/override/journal.csv", cfg.Journal.Path)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty watchlist", func(c *Config) { c.Watchlist = nil }},
		{"blank ticker", func(c *Config) { c.Watchlist = []string{"NVDA", " "} }},
		{"missing data dir", func(c *Config) { c.Data.Dir = "" }},
		{"journal path required", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"unknown journal type", func(c *Config) { c.Journal = JournalConfig{Type: "postgres", Path: "x"} }},
		{"zero weeks out", func(c *Config) { c.Scan.WeeksOut = 0 }},
		{"negative risk ratio", func(c *Config) { c.Scan.MinRiskRatio = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Default().SaveToFile(path))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, Default(), cfg, name)
	}
}
