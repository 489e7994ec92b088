package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "general", cfg.DefaultCategory)
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "nope.yaml"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "levelup.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "levelup.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_path: /tmp/custom.db\nlog_level: DEBUG\ndefault_category: Programming\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Programming", cfg.DefaultCategory)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))

	t.Setenv("LEVELUP_LOG_LEVEL", "error")
	t.Setenv("LEVELUP_LOG_FILE", "-")

	cfg, err := LoadFrom(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "-", cfg.LogFile)
}

func TestLoadFromInvalidLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEVELUP_LOG_LEVEL", "loud")

	_, err := LoadFrom(filepath.Join(dir, "config.yaml"), dir)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "log_level", verr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"missing db path", func(c *Config) { c.DBPath = "" }, "db_path"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"empty category", func(c *Config) { c.DefaultCategory = " " }, "default_category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DBPath = "x.db"
			tt.mod(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	cfg := DefaultConfig()
	cfg.DBPath = "x.db"
	assert.NoError(t, cfg.Validate())
}
