// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Paths.Root == "" {
		t.Error("expected a non-empty default root")
	}

	if filepath.Dir(cfg.Paths.Database) != cfg.Paths.Root {
		t.Errorf("expected database under root, got %s", cfg.Paths.Database)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutLazynoteConfig(t *testing.T) {
	// Unset LAZYNOTE_CONFIG - Load() should return defaults.
	t.Setenv("LAZYNOTE_CONFIG", "")
	os.Unsetenv("LAZYNOTE_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without LAZYNOTE_CONFIG failed: %v", err)
	}

	if cfg.Paths.Database != Default().Paths.Database {
		t.Errorf("expected default database path, got %s", cfg.Paths.Database)
	}
}

func TestLoad_WithLazynoteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lazynote.yaml")

	configContent := `
paths:
  root: /test/root
log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("LAZYNOTE_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Paths.Root != "/test/root" {
		t.Errorf("expected root=/test/root, got %s", cfg.Paths.Root)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lazynote.yaml")

	configContent := `
paths:
  root: /custom/root
  database: /custom/notes.db

database:
  pool_size: 8

log:
  level: info
  format: json

search:
  limit: 50
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Root != "/custom/root" {
		t.Errorf("expected root=/custom/root, got %s", cfg.Paths.Root)
	}

	if cfg.Paths.Database != "/custom/notes.db" {
		t.Errorf("expected database=/custom/notes.db, got %s", cfg.Paths.Database)
	}

	if cfg.Database.PoolSize != 8 {
		t.Errorf("expected pool_size=8, got %d", cfg.Database.PoolSize)
	}

	if cfg.Log.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Log.Format)
	}

	if cfg.Search.Limit != 50 {
		t.Errorf("expected search limit=50, got %d", cfg.Search.Limit)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
	if !strings.Contains(err.Error(), "reading config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootExpansionInDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lazynote.yaml")

	configContent := `
paths:
  root: /data/lazynote
  database: ${LAZYNOTE_ROOT}/custom.db
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Database != "/data/lazynote/custom.db" {
		t.Errorf("expected expanded database path, got %s", cfg.Paths.Database)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/notes",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/notes",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "empty root path",
			modify: func(c *Config) {
				c.Paths.Root = ""
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			modify: func(c *Config) {
				c.Paths.Database = ""
			},
			wantErr: true,
		},
		{
			name: "negative pool size",
			modify: func(c *Config) {
				c.Database.PoolSize = -1
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "loud"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "negative search limit",
			modify: func(c *Config) {
				c.Search.Limit = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Log.Level = tt.level
		got, err := cfg.LogLevel()
		if err != nil {
			t.Errorf("LogLevel(%q) failed: %v", tt.level, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestEnsurePaths(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.Paths.Root = filepath.Join(tmpDir, "lazynote")
	cfg.Paths.Database = filepath.Join(cfg.Paths.Root, "db", "lazynote.db")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths failed: %v", err)
	}

	for _, path := range []string{cfg.Paths.Root, filepath.Dir(cfg.Paths.Database)} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("path %s not created: %v", path, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("path %s is not a directory", path)
		}
	}
}
