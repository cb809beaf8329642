package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Search.Query = "golang"
	cfg.Crawl.Since = "2024-01-01"
	cfg.Crawl.Until = "2024-01-31"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 100, cfg.Search.Limit)
	assert.Equal(t, 60, cfg.Crawl.MinuteInterval)
	assert.Equal(t, -3, cfg.Crawl.UTCOffsetHours)
	assert.Equal(t, 50000, cfg.Output.PostsPerFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing query", func(c *Config) { c.Search.Query = "" }},
		{"limit too high", func(c *Config) { c.Search.Limit = 200 }},
		{"limit zero", func(c *Config) { c.Search.Limit = 0 }},
		{"bad since", func(c *Config) { c.Crawl.Since = "January 1st" }},
		{"bad until", func(c *Config) { c.Crawl.Until = "2024-13-99" }},
		{"inverted range", func(c *Config) { c.Crawl.Since = "2024-02-01"; c.Crawl.Until = "2024-01-01" }},
		{"zero interval", func(c *Config) { c.Crawl.MinuteInterval = 0 }},
		{"interval too long", func(c *Config) { c.Crawl.MinuteInterval = 2000 }},
		{"bad offset", func(c *Config) { c.Crawl.UTCOffsetHours = 20 }},
		{"no output dir", func(c *Config) { c.Output.BaseDirectory = "" }},
		{"zero posts per file", func(c *Config) { c.Output.PostsPerFile = 0 }},
		{"zero rpm", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
search:
  query: "eleições"
  language: pt
  limit: 50
crawl:
  since: "2024-01-01"
  until: "2024-01-02"
  minute_interval: 720
output:
  base_directory: /tmp/crawl
  posts_per_file: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "eleições", cfg.Search.Query)
	assert.Equal(t, 50, cfg.Search.Limit)
	assert.Equal(t, 720, cfg.Crawl.MinuteInterval)
	assert.Equal(t, 1000, cfg.Output.PostsPerFile)
	// Untouched sections keep their defaults
	assert.Equal(t, -3, cfg.Crawl.UTCOffsetHours)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileMissingIsError(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile("/does/not/exist.yaml"))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BSKYCRAWL_QUERY", "from-env")
	t.Setenv("BSKYCRAWL_LIMIT", "42")
	t.Setenv("BSKYCRAWL_MINUTE_INTERVAL", "30")
	t.Setenv("BSKYCRAWL_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "from-env", cfg.Search.Query)
	assert.Equal(t, 42, cfg.Search.Limit)
	assert.Equal(t, 30, cfg.Crawl.MinuteInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BSKYCRAWL_QUERY", "from-env")
	t.Setenv("BSKYCRAWL_SINCE", "2024-01-01")
	t.Setenv("BSKYCRAWL_UNTIL", "2024-01-02")

	cfg, err := Load("", map[string]interface{}{
		"query": "from-flag",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Search.Query)
	assert.Equal(t, "2024-01-01", cfg.Crawl.Since)
}

func TestLoadValidatesResult(t *testing.T) {
	// No query anywhere: the merged config fails validation
	_, err := Load("", map[string]interface{}{
		"since": "2024-01-01",
		"until": "2024-01-02",
	})
	assert.Error(t, err)
}
