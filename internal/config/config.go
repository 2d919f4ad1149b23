package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the time tracker application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Tracking    TrackingConfig    `yaml:"tracking"`
	Sweeper     SweeperConfig     `yaml:"sweeper"`
	Log         LogConfig         `yaml:"log"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TT_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TT_DB_FILENAME"`
	BusyTimeout    time.Duration `yaml:"busy_timeout" env:"TT_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TT_DB_DIR_PERMISSIONS"`
}

// TrackingConfig controls how calendar days and timelines are computed.
type TrackingConfig struct {
	// Timezone is an IANA name; empty or "Local" means the host zone.
	Timezone      string `yaml:"timezone" env:"TT_TIMEZONE"`
	InactiveLabel string `yaml:"inactive_label" env:"TT_INACTIVE_LABEL"`
}

// SweeperConfig controls the daily auto-completion of abandoned entries.
type SweeperConfig struct {
	Enabled    bool   `yaml:"enabled" env:"TT_SWEEPER_ENABLED"`
	At         string `yaml:"at" env:"TT_SWEEPER_AT"`
	RunOnStart bool   `yaml:"run_on_start" env:"TT_SWEEPER_RUN_ON_START"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"TT_LOG_LEVEL"`
	Format string `yaml:"format" env:"TT_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `yaml:"timeout" env:"TT_APP_TIMEOUT"`
	Environment string        `yaml:"environment" env:"TT_ENV"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tt")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tt.db",
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Tracking: TrackingConfig{
			Timezone:      "Local",
			InactiveLabel: "Inactive",
		},
		Sweeper: SweeperConfig{
			Enabled:    true,
			At:         "23:59",
			RunOnStart: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Environment: "development",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// Location resolves Tracking.Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Tracking.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Tracking.Timezone)
}

// SweepTime parses Sweeper.At as a 24-hour HH:MM time of day.
func (c *Config) SweepTime() (hour, minute int, err error) {
	return ParseTimeOfDay(c.Sweeper.At)
}

// ParseTimeOfDay parses a 24-hour HH:MM string.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("time of day %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time of day %q: hour must be 0-23", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q: minute must be 0-59", s)
	}
	return hour, minute, nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TT_DB_BUSY_TIMEOUT"); timeout != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(timeout, c.Database.BusyTimeout)
	}
	if perms := os.Getenv("TT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Tracking configuration
	if tz := os.Getenv("TT_TIMEZONE"); tz != "" {
		c.Tracking.Timezone = tz
	}
	if label := os.Getenv("TT_INACTIVE_LABEL"); label != "" {
		c.Tracking.InactiveLabel = label
	}

	// Sweeper configuration
	if enabled := os.Getenv("TT_SWEEPER_ENABLED"); enabled != "" {
		c.Sweeper.Enabled = ParseBoolWithFallback(enabled, c.Sweeper.Enabled)
	}
	if at := os.Getenv("TT_SWEEPER_AT"); at != "" {
		c.Sweeper.At = at
	}
	if onStart := os.Getenv("TT_SWEEPER_RUN_ON_START"); onStart != "" {
		c.Sweeper.RunOnStart = ParseBoolWithFallback(onStart, c.Sweeper.RunOnStart)
	}

	// Log configuration
	if level := os.Getenv("TT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("TT_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	// Application configuration
	if timeout := os.Getenv("TT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if env := os.Getenv("TT_ENV"); env != "" {
		c.Application.Environment = env
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "tracking.timezone", Message: err.Error()}
	}
	if strings.TrimSpace(c.Tracking.InactiveLabel) == "" {
		return &ConfigError{Field: "tracking.inactive_label", Message: "inactive label cannot be empty"}
	}

	if _, _, err := c.SweepTime(); err != nil {
		return &ConfigError{Field: "sweeper.at", Message: err.Error()}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "log.level", Message: fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "log.format", Message: "log format must be text or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
