// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ErrSchemaTooNew means the database was written by a newer binary.
// Downgrading is not supported; the caller should surface this to the
// user instead of retrying.
var ErrSchemaTooNew = errors.New("storage: database schema is newer than this binary")

// migration is one schema upgrade step. Version numbers are strictly
// increasing and never reused; the applied version is mirrored to
// PRAGMA user_version.
type migration struct {
	version int64
	name    string
	sql     string
}

var migrations = []migration{
	{version: 1, name: "init", sql: migrationInit},
	{version: 2, name: "tags", sql: migrationTags},
	{version: 3, name: "fts", sql: migrationFTS},
	{version: 4, name: "note_preview", sql: migrationNotePreview},
	{version: 5, name: "workspace_tree", sql: migrationWorkspaceTree},
}

const migrationInit = `
CREATE TABLE atoms (
    uuid          TEXT PRIMARY KEY,
    type          TEXT NOT NULL CHECK (type IN ('note', 'task', 'event')),
    content       TEXT NOT NULL,
    created_at    INTEGER NOT NULL,
    updated_at    INTEGER NOT NULL,
    is_deleted    INTEGER NOT NULL DEFAULT 0,
    task_status   TEXT,
    event_start   INTEGER,
    event_end     INTEGER,
    hlc_timestamp TEXT,
    device_id     TEXT
);

CREATE INDEX idx_atoms_updated ON atoms (updated_at DESC, uuid ASC);
CREATE INDEX idx_atoms_type ON atoms (type) WHERE is_deleted = 0;
`

const migrationTags = `
CREATE TABLE tags (
    name TEXT PRIMARY KEY
) WITHOUT ROWID;

CREATE TABLE atom_tags (
    atom_uuid TEXT NOT NULL REFERENCES atoms (uuid),
    tag_name  TEXT NOT NULL REFERENCES tags (name),
    PRIMARY KEY (atom_uuid, tag_name)
) WITHOUT ROWID;

CREATE INDEX idx_atom_tags_tag ON atom_tags (tag_name);
`

const migrationFTS = `
CREATE VIRTUAL TABLE atoms_fts USING fts5(
    content,
    content = 'atoms',
    content_rowid = 'rowid'
);

CREATE TRIGGER atoms_fts_insert AFTER INSERT ON atoms BEGIN
    INSERT INTO atoms_fts (rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER atoms_fts_delete AFTER DELETE ON atoms BEGIN
    INSERT INTO atoms_fts (atoms_fts, rowid, content)
    VALUES ('delete', old.rowid, old.content);
END;

CREATE TRIGGER atoms_fts_update AFTER UPDATE OF content ON atoms BEGIN
    INSERT INTO atoms_fts (atoms_fts, rowid, content)
    VALUES ('delete', old.rowid, old.content);
    INSERT INTO atoms_fts (rowid, content) VALUES (new.rowid, new.content);
END;

INSERT INTO atoms_fts (rowid, content) SELECT rowid, content FROM atoms;
`

const migrationNotePreview = `
ALTER TABLE atoms ADD COLUMN preview_text TEXT;
ALTER TABLE atoms ADD COLUMN preview_image TEXT;
`

const migrationWorkspaceTree = `
CREATE TABLE workspace_nodes (
    node_uuid    TEXT PRIMARY KEY,
    kind         TEXT NOT NULL CHECK (kind IN ('folder', 'note_ref')),
    parent_uuid  TEXT REFERENCES workspace_nodes (node_uuid),
    atom_uuid    TEXT REFERENCES atoms (uuid),
    display_name TEXT NOT NULL,
    sort_order   INTEGER NOT NULL DEFAULT 0,
    is_deleted   INTEGER NOT NULL DEFAULT 0,
    created_at   INTEGER NOT NULL,
    updated_at   INTEGER NOT NULL,
    CHECK ((kind = 'note_ref') = (atom_uuid IS NOT NULL))
);

CREATE INDEX idx_workspace_nodes_parent
    ON workspace_nodes (parent_uuid, sort_order, node_uuid)
    WHERE is_deleted = 0;
CREATE INDEX idx_workspace_nodes_atom
    ON workspace_nodes (atom_uuid)
    WHERE is_deleted = 0;
`

// latestVersion returns the highest version in the registry.
func latestVersion() int64 {
	return migrations[len(migrations)-1].version
}

// validateRegistry rejects a registry whose versions are not strictly
// increasing starting from 1. Called once at Open; a broken registry
// is a programming error caught before any SQL runs.
func validateRegistry() error {
	want := int64(1)
	for _, m := range migrations {
		if m.version != want {
			return fmt.Errorf("storage: migration registry broken at %q: version %d, want %d", m.name, m.version, want)
		}
		if m.sql == "" {
			return fmt.Errorf("storage: migration %q has empty SQL", m.name)
		}
		want++
	}
	return nil
}

// migrate brings the database up to the latest schema version. All
// pending steps run in a single immediate transaction together with the
// final user_version update, so a failed upgrade leaves the database
// exactly where it was.
func migrate(conn *sqlite.Conn, logger *slog.Logger) (err error) {
	if err := validateRegistry(); err != nil {
		return err
	}

	current, err := userVersion(conn)
	if err != nil {
		return err
	}
	latest := latestVersion()

	if current > latest {
		return fmt.Errorf("%w: database at %d, binary supports %d", ErrSchemaTooNew, current, latest)
	}
	if current == latest {
		logger.Debug("schema up to date", "version", current)
		return nil
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("storage: begin migration transaction: %w", err)
	}
	defer endFn(&err)

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := sqlitex.ExecuteScript(conn, m.sql, nil); err != nil {
			return fmt.Errorf("storage: migration %d (%s): %w", m.version, m.name, err)
		}
		if err := setUserVersion(conn, m.version); err != nil {
			return err
		}
		applied++
	}

	logger.Info("schema migrated",
		"from_version", current,
		"to_version", latest,
		"applied", applied,
	)
	return nil
}

func userVersion(conn *sqlite.Conn) (int64, error) {
	var version int64
	err := sqlitex.ExecuteTransient(conn, "PRAGMA user_version", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			version = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("storage: read user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(conn *sqlite.Conn, version int64) error {
	// PRAGMA does not accept bound parameters.
	stmt := fmt.Sprintf("PRAGMA user_version = %d", version)
	if err := sqlitex.ExecuteTransient(conn, stmt, nil); err != nil {
		return fmt.Errorf("storage: set user_version to %d: %w", version, err)
	}
	return nil
}
