package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Dir is the per-user directory holding the database, config and log.
const Dir = ".levelup"

type Config struct {
	DBPath          string `mapstructure:"db_path" env:"LEVELUP_DB_PATH"`
	LogLevel        string `mapstructure:"log_level" env:"LEVELUP_LOG_LEVEL"`
	LogFormat       string `mapstructure:"log_format" env:"LEVELUP_LOG_FORMAT"`
	LogFile         string `mapstructure:"log_file" env:"LEVELUP_LOG_FILE"`
	DefaultCategory string `mapstructure:"default_category" env:"LEVELUP_DEFAULT_CATEGORY"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// DefaultConfig returns the configuration used when no file or env override exists.
// Paths are empty here and resolved against the home directory by Load.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		DefaultCategory: "general",
	}
}

// HomeDir returns ~/.levelup.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// Path returns the path of the user config file.
func Path() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load merges defaults, ~/.levelup/config.yaml and LEVELUP_* environment variables,
// in that order, and validates the result.
func Load() (*Config, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"), dir)
}

// LoadFrom is Load with an explicit config file and data directory. A missing file
// is not an error.
func LoadFrom(path, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dataDir, "levelup.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dataDir, "levelup.log")
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return &ValidationError{Field: "db_path", Message: "is required"}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &ValidationError{Field: "log_format", Message: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	if strings.TrimSpace(c.DefaultCategory) == "" {
		return &ValidationError{Field: "default_category", Message: "must not be empty"}
	}
	return nil
}
