// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for transcript resolution.
type Config struct {
	// Languages is the requested transcript language sequence, in
	// preference order.
	Languages []string `json:"languages"`
	// DefaultLanguage is the fallback language code.
	DefaultLanguage string `json:"default_language"`

	// OutputDir is the directory transcript artifacts are written to.
	OutputDir string `json:"output_dir"`

	// HTTPTimeout is the per-request timeout for captions backend calls.
	HTTPTimeout time.Duration `json:"http_timeout"`
	// UserAgent overrides the user agent presented to the backend.
	UserAgent string `json:"user_agent"`

	// MaxAttempts is the number of tries per backend request (1 = no retry).
	MaxAttempts int `json:"max_attempts"`
	// InitialBackoff is the initial backoff duration for retries.
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries.
	MaxBackoff time.Duration `json:"max_backoff"`

	// RequestsPerSecond paces outbound backend calls (0 = unpaced).
	RequestsPerSecond float64 `json:"requests_per_second"`

	// APIKey is a YouTube Data API key for metadata lookups (optional).
	APIKey string `json:"api_key"`

	// ListenAddr is the JSON API listen address.
	ListenAddr string `json:"listen_addr"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		Languages:         []string{"en"},
		DefaultLanguage:   "en",
		OutputDir:         ".",
		HTTPTimeout:       30 * time.Second,
		MaxAttempts:       1,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        10 * time.Second,
		RequestsPerSecond: 0,
		ListenAddr:        ":8080",
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytscribe.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytscribe.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytscribe", "ytscribe.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSCRIBE_LANGUAGES"); v != "" {
		if langs := ParseLanguages(v); len(langs) > 0 {
			c.Languages = langs
		}
	}
	if v := os.Getenv("YTSCRIBE_DEFAULT_LANGUAGE"); v != "" {
		c.DefaultLanguage = v
	}
	if v := os.Getenv("YTSCRIBE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("YTSCRIBE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
	if v := os.Getenv("YTSCRIBE_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTSCRIBE_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
	if v := os.Getenv("YTSCRIBE_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTSCRIBE_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
	if v := os.Getenv("YTSCRIBE_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("YTSCRIBE_YOUTUBE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTSCRIBE_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.DefaultLanguage == "" {
		return fmt.Errorf("default_language must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	return nil
}

// ParseLanguages splits a comma-separated language list, trimming
// whitespace and dropping empty entries.
func ParseLanguages(s string) []string {
	parts := strings.Split(s, ",")
	langs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			langs = append(langs, p)
		}
	}
	return langs
}
