// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package note provides the note-facing view over note atoms: content
// with derived markdown preview projections and normalized tags.
//
// Notes are not a separate table. A note is a note-kind atom; this
// package layers preview derivation (lib/note/preview.go), tagging,
// and note-specific queries on top of the atoms table owned by
// lib/atom.
package note

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/clock"
	"github.com/lazynote-foundation/lazynote/lib/sqlitepool"
)

// ErrNotFound means the referenced atom does not exist, is not a
// note, or is tombstoned.
var ErrNotFound = errors.New("note: not found")

// List pagination bounds. A zero or missing limit falls back to
// DefaultListLimit; anything above MaxListLimit is clamped.
const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

// Record is the note-shaped projection of a note atom.
type Record struct {
	AtomID       uuid.UUID
	Content      string
	PreviewText  string
	PreviewImage string
	UpdatedAt    int64

	// Tags are normalized to lowercase and sorted.
	Tags []string
}

// StoreConfig holds the dependencies for a note Store.
type StoreConfig struct {
	// Pool is the database connection pool. Required.
	Pool *sqlitepool.Pool

	// Atoms creates the underlying note atoms. Required.
	Atoms *atom.Store

	// Clock stamps updated_at. Required.
	Clock clock.Clock

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Store persists notes and their tags. Safe for concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	atoms  *atom.Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewStore validates the configuration and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Pool == nil {
		return nil, fmt.Errorf("note store: Pool is required")
	}
	if cfg.Atoms == nil {
		return nil, fmt.Errorf("note store: Atoms is required")
	}
	if cfg.Clock == nil {
		return nil, fmt.Errorf("note store: Clock is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{pool: cfg.Pool, atoms: cfg.Atoms, clock: cfg.Clock, logger: logger}, nil
}

// Create makes a new note atom from markdown content, deriving the
// preview projections, and returns the stored record.
func (s *Store) Create(ctx context.Context, content string) (*Record, error) {
	preview := DerivePreview(content)
	a := atom.New(atom.KindNote, content)
	a.PreviewText = preview.Text
	a.PreviewImage = preview.Image
	if err := s.atoms.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("note store: create: %w", err)
	}
	return s.Get(ctx, a.ID)
}

// Update replaces a note's content and recomputes the preview
// projections. Returns ErrNotFound for missing, tombstoned, or
// non-note atoms.
func (s *Store) Update(ctx context.Context, id uuid.UUID, content string) (*Record, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("note store: update: %w", err)
	}

	preview := DerivePreview(content)
	err = sqlitex.Execute(conn, `
		UPDATE atoms
		SET content = ?, preview_text = ?, preview_image = ?, updated_at = ?
		WHERE uuid = ? AND type = 'note' AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{
				content,
				nullableText(preview.Text),
				nullableText(preview.Image),
				s.clock.Now().UnixMilli(),
				id.String(),
			},
		})
	changes := conn.Changes()
	s.pool.Put(conn)
	if err != nil {
		return nil, fmt.Errorf("note store: update %s: %w", id, err)
	}
	if changes == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

// Get returns the note record for an active note atom.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("note store: get: %w", err)
	}
	defer s.pool.Put(conn)

	var found *Record
	err = sqlitex.Execute(conn, `
		SELECT uuid, content, preview_text, preview_image, updated_at
		FROM atoms
		WHERE uuid = ? AND type = 'note' AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record, err := scanRecord(stmt)
				if err != nil {
					return err
				}
				found = record
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("note store: get %s: %w", id, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	found.Tags, err = loadTags(conn, id)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListQuery filters and paginates List.
type ListQuery struct {
	// Tag restricts results to notes carrying that tag. Matched
	// case-insensitively against the normalized tag set.
	Tag string

	// Limit caps the result count, defaulted and clamped per
	// DefaultListLimit/MaxListLimit.
	Limit int

	// Offset skips that many notes.
	Offset int
}

// List returns active notes by recency (updated_at DESC, uuid ASC).
func (s *Store) List(ctx context.Context, q ListQuery) ([]*Record, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("note store: list: %w", err)
	}
	defer s.pool.Put(conn)

	var sql strings.Builder
	sql.WriteString(`
		SELECT uuid, content, preview_text, preview_image, updated_at
		FROM atoms
		WHERE type = 'note' AND is_deleted = 0`)
	var args []any

	if q.Tag != "" {
		sql.WriteString(`
		AND EXISTS (
			SELECT 1 FROM atom_tags
			WHERE atom_tags.atom_uuid = atoms.uuid
			  AND atom_tags.tag_name = ?
		)`)
		args = append(args, strings.ToLower(strings.TrimSpace(q.Tag)))
	}

	sql.WriteString(" ORDER BY updated_at DESC, uuid ASC LIMIT ?")
	args = append(args, normalizeListLimit(q.Limit))
	if q.Offset > 0 {
		sql.WriteString(" OFFSET ?")
		args = append(args, q.Offset)
	}

	var records []*Record
	err = sqlitex.Execute(conn, sql.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			record, err := scanRecord(stmt)
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("note store: list: %w", err)
	}

	for _, record := range records {
		record.Tags, err = loadTags(conn, record.AtomID)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// SetTags replaces a note's tag set atomically. Tags are trimmed,
// lowercased, and deduplicated; blank tags are dropped. The note's
// updated_at is refreshed. Runs in one immediate transaction.
func (s *Store) SetTags(ctx context.Context, id uuid.UUID, tags []string) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("note store: set tags: %w", err)
	}
	defer s.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("note store: set tags %s: %w", id, err)
	}
	defer endFn(&err)

	var exists bool
	err = sqlitex.Execute(conn, `
		SELECT EXISTS(
			SELECT 1 FROM atoms
			WHERE uuid = ? AND type = 'note' AND is_deleted = 0
		)`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				exists = stmt.ColumnInt(0) == 1
				return nil
			},
		})
	if err != nil {
		return fmt.Errorf("note store: set tags %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	err = sqlitex.Execute(conn, `DELETE FROM atom_tags WHERE atom_uuid = ?`,
		&sqlitex.ExecOptions{Args: []any{id.String()}})
	if err != nil {
		return fmt.Errorf("note store: clear tags of %s: %w", id, err)
	}

	for _, tag := range NormalizeTags(tags) {
		err = sqlitex.Execute(conn, `INSERT OR IGNORE INTO tags (name) VALUES (?)`,
			&sqlitex.ExecOptions{Args: []any{tag}})
		if err != nil {
			return fmt.Errorf("note store: register tag %q: %w", tag, err)
		}
		err = sqlitex.Execute(conn, `INSERT INTO atom_tags (atom_uuid, tag_name) VALUES (?, ?)`,
			&sqlitex.ExecOptions{Args: []any{id.String(), tag}})
		if err != nil {
			return fmt.Errorf("note store: tag %s with %q: %w", id, tag, err)
		}
	}

	err = sqlitex.Execute(conn, `
		UPDATE atoms SET updated_at = ?
		WHERE uuid = ? AND type = 'note' AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{s.clock.Now().UnixMilli(), id.String()},
		})
	if err != nil {
		return fmt.Errorf("note store: stamp %s: %w", id, err)
	}
	return nil
}

// ListTags returns every known tag name in case-insensitive order.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("note store: list tags: %w", err)
	}
	defer s.pool.Put(conn)

	var tags []string
	err = sqlitex.Execute(conn, `SELECT name FROM tags ORDER BY name COLLATE NOCASE ASC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				tags = append(tags, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("note store: list tags: %w", err)
	}
	return tags, nil
}

// NormalizeTag trims and lowercases one tag. ok is false for blank
// tags.
func NormalizeTag(tag string) (string, bool) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "", false
	}
	return strings.ToLower(trimmed), true
}

// NormalizeTags normalizes, deduplicates, and sorts a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var normalized []string
	for _, tag := range tags {
		value, ok := NormalizeTag(tag)
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		normalized = append(normalized, value)
	}
	sort.Strings(normalized)
	return normalized
}

func normalizeListLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

func scanRecord(stmt *sqlite.Stmt) (*Record, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("invalid atoms.uuid %q: %w", stmt.ColumnText(0), err)
	}
	return &Record{
		AtomID:       id,
		Content:      stmt.ColumnText(1),
		PreviewText:  stmt.ColumnText(2),
		PreviewImage: stmt.ColumnText(3),
		UpdatedAt:    stmt.ColumnInt64(4),
	}, nil
}

func loadTags(conn *sqlite.Conn, id uuid.UUID) ([]string, error) {
	var tags []string
	err := sqlitex.Execute(conn, `
		SELECT tag_name FROM atom_tags
		WHERE atom_uuid = ?
		ORDER BY tag_name ASC`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				tags = append(tags, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("note store: tags of %s: %w", id, err)
	}
	return tags, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
