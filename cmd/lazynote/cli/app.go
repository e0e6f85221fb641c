// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/clock"
	"github.com/lazynote-foundation/lazynote/lib/config"
	"github.com/lazynote-foundation/lazynote/lib/note"
	"github.com/lazynote-foundation/lazynote/lib/search"
	"github.com/lazynote-foundation/lazynote/lib/storage"
	"github.com/lazynote-foundation/lazynote/lib/workspace"
)

// ConfigFlag is an embeddable struct that adds the --config flag to a
// command's parameter struct. It implements [FlagBinder] so BindFlags
// picks it up from embedded fields.
type ConfigFlag struct {
	ConfigPath string
}

// AddFlags registers the --config flag, satisfying [FlagBinder].
func (c *ConfigFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "path to config file (default: LAZYNOTE_CONFIG)")
}

// App bundles the opened database and the stores built on it. Leaf
// commands call [OpenApp] in their Run function and defer Close.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *storage.DB

	Atoms  *atom.Store
	Notes  *note.Store
	Search *search.Store
	Tree   *workspace.Service
}

// OpenApp loads configuration, opens the database (running any
// pending migrations), and wires up the full store stack. configPath
// overrides the LAZYNOTE_CONFIG environment variable when non-empty.
func OpenApp(ctx context.Context, configPath string) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := NewCommandLogger(level, cfg.Log.Format)

	db, err := storage.Open(ctx, storage.Config{
		Path:     cfg.Paths.Database,
		PoolSize: cfg.Database.PoolSize,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	app, err := buildStores(cfg, logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func buildStores(cfg *config.Config, logger *slog.Logger, db *storage.DB) (*App, error) {
	wallClock := clock.Real()

	atoms, err := atom.NewStore(atom.StoreConfig{
		Pool:   db.Pool(),
		Clock:  wallClock,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	notes, err := note.NewStore(note.StoreConfig{
		Pool:   db.Pool(),
		Atoms:  atoms,
		Clock:  wallClock,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	searchStore, err := search.NewStore(search.StoreConfig{
		Pool:   db.Pool(),
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	treeStore, err := workspace.NewStore(workspace.StoreConfig{
		Pool:   db.Pool(),
		Clock:  wallClock,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	tree, err := workspace.NewService(workspace.ServiceConfig{
		Store:  treeStore,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Atoms:  atoms,
		Notes:  notes,
		Search: searchStore,
		Tree:   tree,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	return a.DB.Close()
}
