package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "2025-26", cfg.Season)
	assert.Equal(t, 5, cfg.API.Retries)
	assert.Equal(t, 120*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.0, cfg.API.BackoffMultiplier)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
season: "2024-25"
api:
  retries: 3
  call_delay: 2s
output:
  data_dir: /tmp/nba
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "2024-25", cfg.Season)
	assert.Equal(t, 3, cfg.API.Retries)
	assert.Equal(t, 2*time.Second, cfg.API.CallDelay)
	assert.Equal(t, "/tmp/nba", cfg.Output.DataDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, 120*time.Second, cfg.API.Timeout)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile("/nonexistent/config.yaml"))
}

func TestSeasonEnvOverride(t *testing.T) {
	t.Setenv("NBA_SEASON", "2023-24")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	assert.Equal(t, "2023-24", cfg.Season)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad season format", func(c *Config) { c.Season = "2025" }},
		{"zero retries", func(c *Config) { c.API.Retries = 0 }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"sub-1 multiplier", func(c *Config) { c.API.BackoffMultiplier = 0.5 }},
		{"negative delay", func(c *Config) { c.API.CallDelay = -time.Second }},
		{"empty data dir", func(c *Config) { c.Output.DataDir = "" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCatalogsNonEmpty(t *testing.T) {
	assert.Len(t, MeasureTypes, 7)
	assert.Equal(t, []int{5, 3, 2}, GroupQuantities)
	assert.Len(t, PerModes, 3)
	assert.Len(t, SeasonTypes, 2)
	assert.Len(t, PTMeasureTypes, 12)
	assert.Len(t, SynergyPlayTypes, 11)
	assert.Len(t, DefenseCategories, 6)
}
