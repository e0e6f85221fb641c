// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package atom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lazynote-foundation/lazynote/lib/clock"
	"github.com/lazynote-foundation/lazynote/lib/sqlitepool"
)

// ErrNotFound means the referenced atom does not exist (or is
// tombstoned, for operations that only see active atoms).
var ErrNotFound = errors.New("atom: not found")

// StoreConfig holds the dependencies for an atom Store.
type StoreConfig struct {
	// Pool is the database connection pool. Required.
	Pool *sqlitepool.Pool

	// Clock stamps created_at and updated_at. Required.
	Clock clock.Clock

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Store persists atoms. Safe for concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// NewStore validates the configuration and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Pool == nil {
		return nil, fmt.Errorf("atom store: Pool is required")
	}
	if cfg.Clock == nil {
		return nil, fmt.Errorf("atom store: Clock is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{pool: cfg.Pool, clock: cfg.Clock, logger: logger}, nil
}

const atomColumns = `uuid, type, content, task_status, event_start, event_end,
	hlc_timestamp, device_id, preview_text, preview_image,
	is_deleted, created_at, updated_at`

// Create inserts a new atom. The atom's CreatedAt and UpdatedAt are
// stamped from the store's clock.
func (s *Store) Create(ctx context.Context, a *Atom) error {
	if err := a.Validate(); err != nil {
		return err
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("atom store: create: %w", err)
	}
	defer s.pool.Put(conn)

	now := s.clock.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now

	err = sqlitex.Execute(conn, `
		INSERT INTO atoms (`+atomColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				a.ID.String(),
				string(a.Kind),
				a.Content,
				nullableText(string(a.TaskStatus)),
				nullableInt(a.EventStart),
				nullableInt(a.EventEnd),
				nullableText(a.HLCTimestamp),
				nullableText(a.DeviceID),
				nullableText(a.PreviewText),
				nullableText(a.PreviewImage),
				boolToInt(a.Deleted),
				a.CreatedAt,
				a.UpdatedAt,
			},
		})
	if err != nil {
		return fmt.Errorf("atom store: create %s: %w", a.ID, err)
	}

	s.logger.Debug("atom created", "atom_id", a.ID, "kind", a.Kind)
	return nil
}

// Update rewrites every mutable column of an existing atom and stamps
// UpdatedAt. Returns ErrNotFound if no row has the atom's ID.
func (s *Store) Update(ctx context.Context, a *Atom) error {
	if err := a.Validate(); err != nil {
		return err
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("atom store: update: %w", err)
	}
	defer s.pool.Put(conn)

	a.UpdatedAt = s.clock.Now().UnixMilli()

	err = sqlitex.Execute(conn, `
		UPDATE atoms SET
			type = ?, content = ?, task_status = ?,
			event_start = ?, event_end = ?,
			hlc_timestamp = ?, device_id = ?,
			preview_text = ?, preview_image = ?,
			is_deleted = ?, updated_at = ?
		WHERE uuid = ?`,
		&sqlitex.ExecOptions{
			Args: []any{
				string(a.Kind),
				a.Content,
				nullableText(string(a.TaskStatus)),
				nullableInt(a.EventStart),
				nullableInt(a.EventEnd),
				nullableText(a.HLCTimestamp),
				nullableText(a.DeviceID),
				nullableText(a.PreviewText),
				nullableText(a.PreviewImage),
				boolToInt(a.Deleted),
				a.UpdatedAt,
				a.ID.String(),
			},
		})
	if err != nil {
		return fmt.Errorf("atom store: update %s: %w", a.ID, err)
	}
	if conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return nil
}

// Get returns the atom with the given ID. Tombstoned atoms are
// reported as ErrNotFound unless includeDeleted is set.
func (s *Store) Get(ctx context.Context, id uuid.UUID, includeDeleted bool) (*Atom, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("atom store: get: %w", err)
	}
	defer s.pool.Put(conn)

	var found *Atom
	err = sqlitex.Execute(conn, `
		SELECT `+atomColumns+`
		FROM atoms
		WHERE uuid = ? AND (? = 1 OR is_deleted = 0)`,
		&sqlitex.ExecOptions{
			Args: []any{id.String(), boolToInt(includeDeleted)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				a, err := scanAtom(stmt)
				if err != nil {
					return err
				}
				found = a
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("atom store: get %s: %w", id, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// ListQuery filters and paginates List results.
type ListQuery struct {
	// Kind restricts results to one atom kind. Empty means all kinds.
	Kind Kind

	// IncludeDeleted also returns tombstoned atoms.
	IncludeDeleted bool

	// Limit caps the number of results. Zero means no limit.
	Limit int

	// Offset skips that many rows. Only meaningful with a stable
	// order, which List guarantees (updated_at DESC, uuid ASC).
	Offset int
}

// List returns atoms ordered by recency (updated_at DESC, uuid ASC as
// the tiebreaker, so pagination is stable).
func (s *Store) List(ctx context.Context, q ListQuery) ([]*Atom, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("atom store: list: %w", err)
	}
	defer s.pool.Put(conn)

	var sql strings.Builder
	sql.WriteString("SELECT " + atomColumns + " FROM atoms WHERE 1 = 1")
	var args []any

	if !q.IncludeDeleted {
		sql.WriteString(" AND is_deleted = 0")
	}
	if q.Kind != "" {
		sql.WriteString(" AND type = ?")
		args = append(args, string(q.Kind))
	}
	sql.WriteString(" ORDER BY updated_at DESC, uuid ASC")
	if q.Limit > 0 {
		sql.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	} else if q.Offset > 0 {
		sql.WriteString(" LIMIT -1")
	}
	if q.Offset > 0 {
		sql.WriteString(" OFFSET ?")
		args = append(args, q.Offset)
	}

	var atoms []*Atom
	err = sqlitex.Execute(conn, sql.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			a, err := scanAtom(stmt)
			if err != nil {
				return err
			}
			atoms = append(atoms, a)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("atom store: list: %w", err)
	}
	return atoms, nil
}

// SoftDelete tombstones an atom. Returns ErrNotFound if no row has
// the given ID. Tombstoning an already tombstoned atom is a no-op
// that still refreshes updated_at.
func (s *Store) SoftDelete(ctx context.Context, id uuid.UUID) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("atom store: soft delete: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		UPDATE atoms SET is_deleted = 1, updated_at = ? WHERE uuid = ?`,
		&sqlitex.ExecOptions{
			Args: []any{s.clock.Now().UnixMilli(), id.String()},
		})
	if err != nil {
		return fmt.Errorf("atom store: soft delete %s: %w", id, err)
	}
	if conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.logger.Debug("atom tombstoned", "atom_id", id)
	return nil
}

// Restore clears an atom's tombstone. Returns ErrNotFound if no row
// has the given ID.
func (s *Store) Restore(ctx context.Context, id uuid.UUID) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("atom store: restore: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		UPDATE atoms SET is_deleted = 0, updated_at = ? WHERE uuid = ?`,
		&sqlitex.ExecOptions{
			Args: []any{s.clock.Now().UnixMilli(), id.String()},
		})
	if err != nil {
		return fmt.Errorf("atom store: restore %s: %w", id, err)
	}
	if conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ActiveKind reports the kind of an active (non-tombstoned) atom using
// an already-held connection. ok is false when the atom is missing or
// tombstoned. The workspace tree calls this inside its own
// transactions, which is why it takes a connection rather than the
// pool.
func ActiveKind(conn *sqlite.Conn, id uuid.UUID) (kind Kind, ok bool, err error) {
	err = sqlitex.Execute(conn, `
		SELECT type FROM atoms WHERE uuid = ? AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				parsed, valid := ParseKind(stmt.ColumnText(0))
				if !valid {
					return fmt.Errorf("invalid atoms.type %q", stmt.ColumnText(0))
				}
				kind = parsed
				ok = true
				return nil
			},
		})
	if err != nil {
		return "", false, fmt.Errorf("atom store: kind of %s: %w", id, err)
	}
	return kind, ok, nil
}

// SoftDeleteNote tombstones an atom only if it is an active note,
// stamping updated_at with nowMS. Atoms of other kinds and already
// tombstoned atoms are left untouched. Used by the workspace tree's
// cascading delete, inside the tree's own transaction.
func SoftDeleteNote(conn *sqlite.Conn, id uuid.UUID, nowMS int64) error {
	err := sqlitex.Execute(conn, `
		UPDATE atoms SET is_deleted = 1, updated_at = ?
		WHERE uuid = ? AND type = 'note' AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{nowMS, id.String()},
		})
	if err != nil {
		return fmt.Errorf("atom store: tombstone note %s: %w", id, err)
	}
	return nil
}

func scanAtom(stmt *sqlite.Stmt) (*Atom, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("invalid atoms.uuid %q: %w", stmt.ColumnText(0), err)
	}
	kind, ok := ParseKind(stmt.ColumnText(1))
	if !ok {
		return nil, fmt.Errorf("invalid atoms.type %q", stmt.ColumnText(1))
	}

	a := &Atom{
		ID:      id,
		Kind:    kind,
		Content: stmt.ColumnText(2),
	}
	if !stmt.ColumnIsNull(3) {
		status, ok := ParseTaskStatus(stmt.ColumnText(3))
		if !ok {
			return nil, fmt.Errorf("invalid atoms.task_status %q", stmt.ColumnText(3))
		}
		a.TaskStatus = status
	}
	if !stmt.ColumnIsNull(4) {
		v := stmt.ColumnInt64(4)
		a.EventStart = &v
	}
	if !stmt.ColumnIsNull(5) {
		v := stmt.ColumnInt64(5)
		a.EventEnd = &v
	}
	a.HLCTimestamp = stmt.ColumnText(6)
	a.DeviceID = stmt.ColumnText(7)
	a.PreviewText = stmt.ColumnText(8)
	a.PreviewImage = stmt.ColumnText(9)
	a.Deleted = stmt.ColumnInt(10) != 0
	a.CreatedAt = stmt.ColumnInt64(11)
	a.UpdatedAt = stmt.ColumnInt64(12)
	return a, nil
}

// nullableText maps "" to SQL NULL so optional text columns stay NULL
// instead of accumulating empty strings.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
