// Package config loads the application configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the circulation system.
type Config struct {
	// DataDir is where the CSV collections live.
	DataDir string `yaml:"data_dir"`
	// SeedDefaultAdmin seeds admin/admin123 into an empty admins collection.
	// Disable it once a real credential exists.
	SeedDefaultAdmin bool      `yaml:"seed_default_admin"`
	Log              LogConfig `yaml:"log"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir:          "data",
		SeedDefaultAdmin: true,
		Log:              LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path if it exists, falls back to defaults otherwise, and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.overrideWithEnv()

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data_dir is required")
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("LIBRARY_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("LIBRARY_SEED_ADMIN"); val != "" {
		c.SeedDefaultAdmin = val == "1" || val == "true"
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Logger builds a slog.Logger per the log settings, writing to stderr so
// log lines never mix into menu output.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
