// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for lazynote.
type Config struct {
	// Paths configures directory and file locations.
	Paths PathsConfig `yaml:"paths"`

	// Database configures the SQLite connection pool.
	Database DatabaseConfig `yaml:"database"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// Search configures full-text search behavior.
	Search SearchConfig `yaml:"search"`
}

// PathsConfig configures directory and file locations.
type PathsConfig struct {
	// Root is the base directory for lazynote data.
	Root string `yaml:"root"`

	// Database is the SQLite database file. Defaults to
	// lazynote.db under Root.
	Database string `yaml:"database"`
}

// DatabaseConfig configures the SQLite connection pool.
type DatabaseConfig struct {
	// PoolSize is the number of pooled connections. Zero means the
	// storage layer's default.
	PoolSize int `yaml:"pool_size"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	// Default: warn, so normal CLI output stays clean.
	Level string `yaml:"level"`

	// Format is "text" or "json". Default: text.
	Format string `yaml:"format"`
}

// SearchConfig configures full-text search behavior.
type SearchConfig struct {
	// Limit is the default number of search hits. Zero means the
	// search store's default.
	Limit int `yaml:"limit"`
}

// Default returns the default configuration. These defaults are a
// complete working setup; a config file only has to mention what it
// changes.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".local", "share", "lazynote")

	return &Config{
		Paths: PathsConfig{
			Root:     defaultRoot,
			Database: filepath.Join(defaultRoot, "lazynote.db"),
		},
		Database: DatabaseConfig{
			PoolSize: 0,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Search: SearchConfig{
			Limit: 0,
		},
	}
}

// Load loads configuration from the LAZYNOTE_CONFIG environment
// variable, falling back to defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("LAZYNOTE_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file's
// values merge over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// values. LAZYNOTE_ROOT resolves to paths.root so the database path
// can be written relative to it.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"LAZYNOTE_ROOT": c.Paths.Root,
		"HOME":          os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["LAZYNOTE_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Database = expandVars(c.Paths.Database, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	if c.Paths.Database == "" {
		errs = append(errs, fmt.Errorf("paths.database is required"))
	}
	if c.Database.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("database.pool_size must not be negative"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search.limit must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Log.Level into a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
}

// EnsurePaths creates the data directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.Root,
		filepath.Dir(c.Paths.Database),
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}
