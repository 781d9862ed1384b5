// Package config loads settings from an optional YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Environment is "production" or anything else (treated as dev).
	Environment string `yaml:"environment"`
	ListenAddr  string `yaml:"listen_addr"`
	Debug       bool   `yaml:"debug"`

	Database struct {
		// Path is the SQLite file, or ":memory:" for an ephemeral store.
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// Default returns the configuration used when no file and no overrides are
// present.
func Default() Config {
	cfg := Config{
		Environment: "development",
		ListenAddr:  ":8080",
	}
	cfg.Database.Path = "taskboard.db"
	return cfg
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKBOARD_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("TASKBOARD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TASKBOARD_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
}

// Production reports whether the process runs with production gating.
func (c Config) Production() bool { return c.Environment == "production" }
