// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads calculator settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/zetaloop/DSProject2-Calculator/internal/format"
	"github.com/zetaloop/DSProject2-Calculator/internal/session"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Environment overrides.
const (
	EnvDB       = "CALC_DB"
	EnvLogLevel = "CALC_LOG_LEVEL"
)

// Config holds all calculator configuration.
type Config struct {
	Storage StorageConfig       `yaml:"storage"`
	Logging LoggingConfig       `yaml:"logging"`
	Display DisplayConfig       `yaml:"display"`
	Keymap  map[string][]string `yaml:"keymap,omitempty"` // overrides; an empty list removes a key
}

// StorageConfig selects where sessions are kept.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, memory
	Path   string `yaml:"path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

// DisplayConfig tunes result formatting and session defaults.
type DisplayConfig struct {
	Digits           int    `yaml:"digits"`
	ScientificDigits int    `yaml:"scientific_digits"`
	BaseDigits       int    `yaml:"base_digits"`
	MaxDenominator   int64  `yaml:"max_denominator"`
	Angle            string `yaml:"angle"` // Rad, Deg, Hyp
}

// DefaultDir returns the per-user directory for config and data.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".calc"
	}
	return filepath.Join(dir, "calc")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(DefaultDir(), "sessions.db"),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Display: DisplayConfig{
			Digits:           format.DefaultDigits,
			ScientificDigits: format.DefaultScientificDigits,
			BaseDigits:       format.DefaultBaseDigits,
			MaxDenominator:   format.DefaultMaxDenominator,
			Angle:            session.Rad.String(),
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv(EnvDB); path != "" {
		c.Storage.Driver = DriverSQLite
		c.Storage.Path = path
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path required for driver %s", DriverSQLite)
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (valid: %s, %s)", c.Storage.Driver, DriverSQLite, DriverMemory)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s (valid: json, console)", c.Logging.Encoding)
	}

	d := c.Display
	if d.Digits < 1 || d.Digits > 17 {
		return fmt.Errorf("display.digits must be in [1, 17], got %d", d.Digits)
	}
	if d.ScientificDigits < 1 || d.ScientificDigits > 64 {
		return fmt.Errorf("display.scientific_digits must be in [1, 64], got %d", d.ScientificDigits)
	}
	if d.BaseDigits < 0 || d.BaseDigits > 64 {
		return fmt.Errorf("display.base_digits must be in [0, 64], got %d", d.BaseDigits)
	}
	if d.MaxDenominator < 1 {
		return fmt.Errorf("display.max_denominator must be positive, got %d", d.MaxDenominator)
	}
	if _, ok := session.ParseAngle(d.Angle); !ok {
		return fmt.Errorf("invalid angle unit: %s (valid: Rad, Deg, Hyp)", d.Angle)
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Angle returns the angle unit new sessions start with.
func (c *Config) Angle() session.Angle {
	a, _ := session.ParseAngle(c.Display.Angle)
	return a
}

// FormatOptions returns the formatter settings.
func (c *Config) FormatOptions() []format.Option {
	return []format.Option{
		format.WithDigits(c.Display.Digits),
		format.WithScientificDigits(c.Display.ScientificDigits),
		format.WithBaseDigits(c.Display.BaseDigits),
		format.WithMaxDenominator(c.Display.MaxDenominator),
	}
}
