// Package config loads the noborders YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/noborders/internal/engine"
)

// Match modes for reapplication identity checks.
const (
	MatchExact = "exact"
	MatchFold  = "fold"
)

// Config is the effective daemon configuration.
type Config struct {
	// RefreshSeconds is the reconciliation cadence while a UI is visible.
	RefreshSeconds int `yaml:"refresh_seconds"`
	// IdleRefreshSeconds is the relaxed cadence while no UI is watching.
	IdleRefreshSeconds int `yaml:"idle_refresh_seconds"`
	// Listen is the loopback address the IPC server binds to.
	Listen string `yaml:"listen"`
	// Match selects the process-name predicate used for reapplication:
	// "exact" or "fold" (case-insensitive).
	Match string `yaml:"match"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RefreshSeconds:     3,
		IdleRefreshSeconds: 10,
		Listen:             "127.0.0.1:47821",
		Match:              MatchExact,
		LogLevel:           "info",
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "noborders", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file. A missing file yields the
// defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.RefreshSeconds <= 0 {
		return fmt.Errorf("refresh_seconds must be positive, got %d", c.RefreshSeconds)
	}
	if c.IdleRefreshSeconds < c.RefreshSeconds {
		return fmt.Errorf("idle_refresh_seconds (%d) must be >= refresh_seconds (%d)",
			c.IdleRefreshSeconds, c.RefreshSeconds)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	switch c.Match {
	case MatchExact, MatchFold:
	default:
		return fmt.Errorf("match must be %q or %q, got %q", MatchExact, MatchFold, c.Match)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// RefreshInterval returns the visible-cadence refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// IdleRefreshInterval returns the hidden-cadence refresh interval.
func (c *Config) IdleRefreshInterval() time.Duration {
	return time.Duration(c.IdleRefreshSeconds) * time.Second
}

// Matcher returns the configured process-name predicate.
func (c *Config) Matcher() engine.MatchFunc {
	if c.Match == MatchFold {
		return engine.FoldMatch
	}
	return engine.ExactMatch
}

// SlogLevel maps the configured log level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
