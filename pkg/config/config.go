package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DateLayout is the format for the since/until range bounds.
const DateLayout = "2006-01-02"

// Config holds all configuration options for the crawler
type Config struct {
	// Search parameters sent to the API
	Search SearchConfig `yaml:"search" json:"search"`

	// Date range and window partitioning
	Crawl CrawlConfig `yaml:"crawl" json:"crawl"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Request pacing configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig holds the query parameters sent on every API call
type SearchConfig struct {
	Query    string `yaml:"query" json:"query"`
	Language string `yaml:"language" json:"language"`
	Limit    int    `yaml:"limit" json:"limit"`
}

// CrawlConfig holds the date range and how it is partitioned
type CrawlConfig struct {
	Since          string `yaml:"since" json:"since"`
	Until          string `yaml:"until" json:"until"`
	MinuteInterval int    `yaml:"minute_interval" json:"minute_interval"`
	UTCOffsetHours int    `yaml:"utc_offset_hours" json:"utc_offset_hours"`
}

// OutputConfig holds shard output configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	PostsPerFile  int    `yaml:"posts_per_file" json:"posts_per_file"`
}

// RateLimitConfig holds request pacing configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int `yaml:"burst_size" json:"burst_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Language: "pt",
			Limit:    100,
		},
		Crawl: CrawlConfig{
			MinuteInterval: 60,
			UTCOffsetHours: -3,
		},
		Output: OutputConfig{
			BaseDirectory: "./data",
			PostsPerFile:  50000,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			BurstSize:         5,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "crawler.log",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if query := os.Getenv("BSKYCRAWL_QUERY"); query != "" {
		c.Search.Query = query
	}
	if lang := os.Getenv("BSKYCRAWL_LANGUAGE"); lang != "" {
		c.Search.Language = lang
	}
	if limit := os.Getenv("BSKYCRAWL_LIMIT"); limit != "" {
		var val int
		fmt.Sscanf(limit, "%d", &val)
		if val > 0 {
			c.Search.Limit = val
		}
	}

	if since := os.Getenv("BSKYCRAWL_SINCE"); since != "" {
		c.Crawl.Since = since
	}
	if until := os.Getenv("BSKYCRAWL_UNTIL"); until != "" {
		c.Crawl.Until = until
	}
	if interval := os.Getenv("BSKYCRAWL_MINUTE_INTERVAL"); interval != "" {
		var val int
		fmt.Sscanf(interval, "%d", &val)
		if val > 0 {
			c.Crawl.MinuteInterval = val
		}
	}

	if outputDir := os.Getenv("BSKYCRAWL_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if perFile := os.Getenv("BSKYCRAWL_POSTS_PER_FILE"); perFile != "" {
		var val int
		fmt.Sscanf(perFile, "%d", &val)
		if val > 0 {
			c.Output.PostsPerFile = val
		}
	}

	if logLevel := os.Getenv("BSKYCRAWL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("BSKYCRAWL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".bskycrawl.yaml",
		".bskycrawl.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "bskycrawl", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "bskycrawl", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Search.Query == "" {
		errs = append(errs, errors.New("search query is required"))
	}
	if c.Search.Limit <= 0 || c.Search.Limit > 100 {
		errs = append(errs, errors.New("limit must be between 1 and 100"))
	}

	since, err := time.Parse(DateLayout, c.Crawl.Since)
	if err != nil {
		errs = append(errs, fmt.Errorf("since must be a YYYY-MM-DD date: %q", c.Crawl.Since))
	}
	until, err2 := time.Parse(DateLayout, c.Crawl.Until)
	if err2 != nil {
		errs = append(errs, fmt.Errorf("until must be a YYYY-MM-DD date: %q", c.Crawl.Until))
	}
	if err == nil && err2 == nil && until.Before(since) {
		errs = append(errs, errors.New("until must not be before since"))
	}

	if c.Crawl.MinuteInterval <= 0 || c.Crawl.MinuteInterval > 1440 {
		errs = append(errs, errors.New("minute interval must be between 1 and 1440"))
	}
	if c.Crawl.UTCOffsetHours < -12 || c.Crawl.UTCOffsetHours > 14 {
		errs = append(errs, errors.New("utc offset must be between -12 and +14"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.PostsPerFile <= 0 {
		errs = append(errs, errors.New("posts per file must be positive"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.BurstSize <= 0 {
		errs = append(errs, errors.New("burst size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if query, ok := flags["query"].(string); ok && query != "" {
		c.Search.Query = query
	}
	if lang, ok := flags["lang"].(string); ok && lang != "" {
		c.Search.Language = lang
	}
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Search.Limit = limit
	}
	if since, ok := flags["since"].(string); ok && since != "" {
		c.Crawl.Since = since
	}
	if until, ok := flags["until"].(string); ok && until != "" {
		c.Crawl.Until = until
	}
	if interval, ok := flags["interval"].(int); ok && interval > 0 {
		c.Crawl.MinuteInterval = interval
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if perFile, ok := flags["posts-per-file"].(int); ok && perFile > 0 {
		c.Output.PostsPerFile = perFile
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".bskycrawl.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
