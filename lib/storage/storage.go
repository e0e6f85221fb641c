// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lazynote-foundation/lazynote/lib/sqlitepool"
)

// Config holds the parameters for opening a lazynote database.
type Config struct {
	// Path is the filesystem path to the database file. Required.
	// ":memory:" opens an in-memory database with a pool size of 1.
	Path string

	// PoolSize is the number of pooled connections. Zero means the
	// sqlitepool default. Forced to 1 for in-memory databases.
	PoolSize int

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// DB is an open, migrated lazynote database. The stores in lib/atom,
// lib/note, lib/workspace, and lib/search all borrow connections from
// its pool.
type DB struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger
}

// Open opens the database at cfg.Path, creating it if needed, and
// applies any pending schema migrations before returning. The caller
// must Close the returned DB.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	poolSize := cfg.PoolSize
	if cfg.Path == ":memory:" {
		// Each in-memory connection is a separate database.
		poolSize = 1
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: poolSize,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	conn, err := pool.Take(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	migrateErr := migrate(conn, logger)
	pool.Put(conn)
	if migrateErr != nil {
		pool.Close()
		return nil, migrateErr
	}

	return &DB{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying connection pool for the stores.
func (db *DB) Pool() *sqlitepool.Pool { return db.pool }

// Close closes the underlying connection pool.
func (db *DB) Close() error { return db.pool.Close() }
