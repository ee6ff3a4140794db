// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 15, cfg.Display.Digits)
	assert.Equal(t, int64(1_000_000), cfg.Display.MaxDenominator)
	assert.Equal(t, session.Rad, cfg.Angle())
	assert.Len(t, cfg.FormatOptions(), 4)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: memory
display:
  digits: 10
  angle: Deg
keymap:
  "x^4": ["^", "4"]
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Display.Digits)
	assert.Equal(t, 30, cfg.Display.ScientificDigits, "unset fields keep defaults")
	assert.Equal(t, session.Deg, cfg.Angle())
	assert.Equal(t, []string{"^", "4"}, cfg.Keymap["x^4"])
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Keymap = map[string][]string{"sq": {"^", "2"}}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("CALC_DB selects sqlite at the given path", func(t *testing.T) {
		t.Setenv(EnvDB, "/tmp/other.db")

		cfg := &Config{Storage: StorageConfig{Driver: DriverMemory}}
		cfg.applyEnvOverrides()

		assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "/tmp/other.db", cfg.Storage.Path)
	})

	t.Run("CALC_LOG_LEVEL sets the level", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		level, err := cfg.LogLevel()
		require.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, level)
	})

	t.Run("empty variables change nothing", func(t *testing.T) {
		t.Setenv(EnvDB, "")
		t.Setenv(EnvLogLevel, "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad driver", func(c *Config) { c.Storage.Driver = "postgres" }, "invalid storage driver"},
		{"sqlite without path", func(c *Config) { c.Storage.Path = "" }, "storage path required"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "xml" }, "invalid log encoding"},
		{"zero digits", func(c *Config) { c.Display.Digits = 0 }, "display.digits"},
		{"huge scientific", func(c *Config) { c.Display.ScientificDigits = 100 }, "display.scientific_digits"},
		{"negative base digits", func(c *Config) { c.Display.BaseDigits = -1 }, "display.base_digits"},
		{"zero denominator", func(c *Config) { c.Display.MaxDenominator = 0 }, "display.max_denominator"},
		{"bad angle", func(c *Config) { c.Display.Angle = "Grad" }, "invalid angle unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := DefaultConfig()
	cfg.Storage = StorageConfig{Driver: DriverMemory}
	assert.NoError(t, cfg.Validate(), "memory driver needs no path")
}
