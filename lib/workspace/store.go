// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/clock"
	"github.com/lazynote-foundation/lazynote/lib/sqlitepool"
)

// StoreConfig holds the dependencies for a workspace Store.
type StoreConfig struct {
	// Pool is the database connection pool. Required.
	Pool *sqlitepool.Pool

	// Clock stamps created_at and updated_at. Required.
	Clock clock.Clock

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Store is the persistence layer of the workspace tree. It enforces
// ordering and tombstone mechanics but not hierarchy rules; those live
// in [Service]. Safe for concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// NewStore validates the configuration and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Pool == nil {
		return nil, fmt.Errorf("workspace store: Pool is required")
	}
	if cfg.Clock == nil {
		return nil, fmt.Errorf("workspace store: Clock is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{pool: cfg.Pool, clock: cfg.Clock, logger: logger}, nil
}

const nodeColumns = `node_uuid, kind, parent_uuid, atom_uuid, display_name,
	sort_order, is_deleted, created_at, updated_at`

const visibleNodeColumns = `n.node_uuid, n.kind, n.parent_uuid, n.atom_uuid,
	n.display_name, n.sort_order, n.is_deleted, n.created_at, n.updated_at`

// visibleNodeFilter is the predicate for nodes the UI can see: not
// tombstoned, and for note_refs the referenced atom must still be an
// active note. Requires `workspace_nodes n LEFT JOIN atoms a`.
const visibleNodeFilter = `n.is_deleted = 0
	AND (
		n.kind = 'folder'
		OR (n.kind = 'note_ref' AND a.type = 'note' AND a.is_deleted = 0)
	)`

// CreateFolder inserts a folder under the given parent (uuid.Nil for
// root). The new node is appended after the existing non-tombstoned
// siblings. Parent validation happens in the Service.
func (s *Store) CreateFolder(ctx context.Context, parent uuid.UUID, displayName string) (_ *Node, err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace store: create folder: %w", err)
	}
	defer s.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return nil, fmt.Errorf("workspace store: create folder: %w", err)
	}
	defer endFn(&err)

	id := uuid.New()
	if err := s.insertNode(conn, id, KindFolder, parent, uuid.Nil, displayName); err != nil {
		return nil, err
	}
	return s.loadNode(conn, id)
}

// CreateNoteRef inserts a note_ref pointing at the given atom. Atom
// kind validation happens in the Service.
func (s *Store) CreateNoteRef(ctx context.Context, parent, atomID uuid.UUID, displayName string) (_ *Node, err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace store: create note_ref: %w", err)
	}
	defer s.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return nil, fmt.Errorf("workspace store: create note_ref: %w", err)
	}
	defer endFn(&err)

	id := uuid.New()
	if err := s.insertNode(conn, id, KindNoteRef, parent, atomID, displayName); err != nil {
		return nil, err
	}
	return s.loadNode(conn, id)
}

func (s *Store) insertNode(conn *sqlite.Conn, id uuid.UUID, kind NodeKind, parent, atomID uuid.UUID, displayName string) error {
	// New nodes are appended after the non-tombstoned siblings, not
	// just the visible ones. A create after atom deletions can
	// therefore leave a sparse (but still increasing) ordering until
	// the next move rewrites it. Observed behavior, kept as is.
	order, err := nextSortOrder(conn, parent)
	if err != nil {
		return err
	}

	now := s.clock.Now().UnixMilli()
	err = sqlitex.Execute(conn, `
		INSERT INTO workspace_nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				id.String(),
				string(kind),
				nullableID(parent),
				nullableID(atomID),
				displayName,
				order,
				now,
				now,
			},
		})
	if err != nil {
		return fmt.Errorf("workspace store: insert %s: %w", id, err)
	}
	return nil
}

// GetNode returns the node with the given ID, or nil if there is no
// visible node with that ID. With includeDeleted set, tombstoned and
// dangling nodes are returned too.
func (s *Store) GetNode(ctx context.Context, id uuid.UUID, includeDeleted bool) (*Node, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace store: get node: %w", err)
	}
	defer s.pool.Put(conn)

	return getNode(conn, id, includeDeleted)
}

func getNode(conn *sqlite.Conn, id uuid.UUID, includeDeleted bool) (*Node, error) {
	sql := `
		SELECT ` + visibleNodeColumns + `
		FROM workspace_nodes n
		LEFT JOIN atoms a ON a.uuid = n.atom_uuid
		WHERE n.node_uuid = ? AND ` + visibleNodeFilter
	if includeDeleted {
		sql = `SELECT ` + nodeColumns + ` FROM workspace_nodes WHERE node_uuid = ?`
	}

	var found *Node
	err := sqlitex.Execute(conn, sql, &sqlitex.ExecOptions{
		Args: []any{id.String()},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			node, err := scanNode(stmt)
			if err != nil {
				return err
			}
			found = node
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("workspace store: get %s: %w", id, err)
	}
	return found, nil
}

// ListChildren returns the children of parent (uuid.Nil for the root
// level) ordered by sort_order with node_uuid as the tiebreaker. Only
// visible nodes are returned unless includeDeleted is set.
func (s *Store) ListChildren(ctx context.Context, parent uuid.UUID, includeDeleted bool) ([]*Node, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace store: list children: %w", err)
	}
	defer s.pool.Put(conn)

	sql := `
		SELECT ` + visibleNodeColumns + `
		FROM workspace_nodes n
		LEFT JOIN atoms a ON a.uuid = n.atom_uuid
		WHERE n.parent_uuid IS ? AND ` + visibleNodeFilter + `
		ORDER BY n.sort_order ASC, n.node_uuid ASC`
	if includeDeleted {
		sql = `
			SELECT ` + nodeColumns + `
			FROM workspace_nodes
			WHERE parent_uuid IS ?
			ORDER BY sort_order ASC, node_uuid ASC`
	}

	var nodes []*Node
	err = sqlitex.Execute(conn, sql, &sqlitex.ExecOptions{
		Args: []any{nullableID(parent)},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			node, err := scanNode(stmt)
			if err != nil {
				return err
			}
			nodes = append(nodes, node)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("workspace store: list children of %s: %w", parent, err)
	}
	return nodes, nil
}

// Rename updates a node's display name. Returns ErrNodeNotFound if no
// active node has the given ID. Name normalization happens in the
// Service.
func (s *Store) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("workspace store: rename: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		UPDATE workspace_nodes
		SET display_name = ?, updated_at = ?
		WHERE node_uuid = ? AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{displayName, s.clock.Now().UnixMilli(), id.String()},
		})
	if err != nil {
		return fmt.Errorf("workspace store: rename %s: %w", id, err)
	}
	if conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return nil
}

// Move reparents a node and rewrites the sibling ordering of the
// destination. targetOrder is the desired index among the visible
// siblings; nil appends, out-of-range values are clamped. After Move
// the visible siblings of the destination are numbered densely 0..n-1.
// The whole operation runs in one immediate transaction.
//
// Cycle and parent-kind validation happen in the Service; Move only
// checks that the node itself is visible.
func (s *Store) Move(ctx context.Context, id, newParent uuid.UUID, targetOrder *int) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("workspace store: move: %w", err)
	}
	defer s.pool.Put(conn)

	node, err := getNode(conn, id, false)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("workspace store: move %s: %w", id, err)
	}
	defer endFn(&err)

	// The destination ordering is computed over visible siblings
	// only. Dangling note_refs keep their rows but never occupy a
	// visible slot.
	siblings, err := visibleChildIDs(conn, newParent)
	if err != nil {
		return err
	}
	withoutNode := siblings[:0]
	for _, sibling := range siblings {
		if sibling != id {
			withoutNode = append(withoutNode, sibling)
		}
	}

	index := len(withoutNode)
	if targetOrder != nil {
		index = *targetOrder
		if index < 0 {
			index = 0
		}
		if index > len(withoutNode) {
			index = len(withoutNode)
		}
	}
	ordered := make([]uuid.UUID, 0, len(withoutNode)+1)
	ordered = append(ordered, withoutNode[:index]...)
	ordered = append(ordered, id)
	ordered = append(ordered, withoutNode[index:]...)

	now := s.clock.Now().UnixMilli()
	err = sqlitex.Execute(conn, `
		UPDATE workspace_nodes
		SET parent_uuid = ?, updated_at = ?
		WHERE node_uuid = ? AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{nullableID(newParent), now, id.String()},
		})
	if err != nil {
		return fmt.Errorf("workspace store: move %s: %w", id, err)
	}

	for position, sibling := range ordered {
		err = sqlitex.Execute(conn, `
			UPDATE workspace_nodes
			SET sort_order = ?, updated_at = ?
			WHERE node_uuid = ? AND is_deleted = 0`,
			&sqlitex.ExecOptions{
				Args: []any{position, now, sibling.String()},
			})
		if err != nil {
			return fmt.Errorf("workspace store: reorder %s: %w", sibling, err)
		}
	}

	s.logger.Debug("node moved",
		"node_id", id,
		"new_parent", newParent,
		"siblings", len(ordered),
	)
	return nil
}

// DeleteFolderDissolve tombstones a folder and reparents its direct
// non-tombstoned children to root, appending them after the existing
// root nodes in their current order. Nested structure below the
// children is preserved. Runs in one immediate transaction.
func (s *Store) DeleteFolderDissolve(ctx context.Context, folderID uuid.UUID) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("workspace store: dissolve: %w", err)
	}
	defer s.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("workspace store: dissolve %s: %w", folderID, err)
	}
	defer endFn(&err)

	if err := ensureActiveFolder(conn, folderID); err != nil {
		return err
	}

	children, err := activeChildIDs(conn, folderID)
	if err != nil {
		return err
	}
	baseOrder, err := nextSortOrder(conn, uuid.Nil)
	if err != nil {
		return err
	}

	now := s.clock.Now().UnixMilli()
	for i, child := range children {
		err = sqlitex.Execute(conn, `
			UPDATE workspace_nodes
			SET parent_uuid = NULL, sort_order = ?, updated_at = ?
			WHERE node_uuid = ? AND is_deleted = 0`,
			&sqlitex.ExecOptions{
				Args: []any{baseOrder + int64(i), now, child.String()},
			})
		if err != nil {
			return fmt.Errorf("workspace store: reparent %s: %w", child, err)
		}
	}

	err = sqlitex.Execute(conn, `
		UPDATE workspace_nodes
		SET is_deleted = 1, updated_at = ?
		WHERE node_uuid = ? AND kind = 'folder' AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{now, folderID.String()},
		})
	if err != nil {
		return fmt.Errorf("workspace store: tombstone %s: %w", folderID, err)
	}

	s.logger.Info("folder dissolved",
		"folder_id", folderID,
		"reparented", len(children),
	)
	return nil
}

// DeleteFolderDeleteAll tombstones a folder's whole subtree and then
// tombstones every note atom referenced from inside that subtree that
// has no active reference left anywhere in the tree. Atoms still
// referenced from outside the subtree survive. Runs in one immediate
// transaction.
func (s *Store) DeleteFolderDeleteAll(ctx context.Context, folderID uuid.UUID) (err error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("workspace store: delete all: %w", err)
	}
	defer s.pool.Put(conn)

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("workspace store: delete all %s: %w", folderID, err)
	}
	defer endFn(&err)

	if err := ensureActiveFolder(conn, folderID); err != nil {
		return err
	}

	// Snapshot the referenced atoms before tombstoning; afterwards
	// the subtree's refs no longer count as active and the orphan
	// check below sees only references from outside the subtree.
	atoms, err := referencedNoteAtoms(conn, folderID)
	if err != nil {
		return err
	}

	now := s.clock.Now().UnixMilli()
	if err := tombstoneSubtree(conn, folderID, now); err != nil {
		return err
	}

	orphaned := 0
	for _, atomID := range atoms {
		var hasActiveRef bool
		err = sqlitex.Execute(conn, `
			SELECT EXISTS(
				SELECT 1 FROM workspace_nodes
				WHERE kind = 'note_ref' AND atom_uuid = ? AND is_deleted = 0
			)`,
			&sqlitex.ExecOptions{
				Args: []any{atomID.String()},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					hasActiveRef = stmt.ColumnInt(0) == 1
					return nil
				},
			})
		if err != nil {
			return fmt.Errorf("workspace store: ref count of %s: %w", atomID, err)
		}
		if hasActiveRef {
			continue
		}
		if err := atom.SoftDeleteNote(conn, atomID, now); err != nil {
			return fmt.Errorf("workspace store: %w", err)
		}
		orphaned++
	}

	s.logger.Info("folder subtree deleted",
		"folder_id", folderID,
		"atoms_referenced", len(atoms),
		"atoms_tombstoned", orphaned,
	)
	return nil
}

// AtomKind reports the kind of an active atom. ok is false when the
// atom is missing or tombstoned. Delegates to the atom store's
// conn-level lookup.
func (s *Store) AtomKind(ctx context.Context, atomID uuid.UUID) (atom.Kind, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", false, fmt.Errorf("workspace store: atom kind: %w", err)
	}
	defer s.pool.Put(conn)

	return atom.ActiveKind(conn, atomID)
}

// loadNode fetches a just-written row; absence is a store bug, not a
// caller error.
func (s *Store) loadNode(conn *sqlite.Conn, id uuid.UUID) (*Node, error) {
	node, err := getNode(conn, id, true)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("workspace store: inserted node %s not readable", id)
	}
	return node, nil
}

// nextSortOrder returns one past the highest sort_order among the
// non-tombstoned children of parent, or 0 for an empty parent. Note
// this counts dangling note_refs, unlike the visibility predicate.
func nextSortOrder(conn *sqlite.Conn, parent uuid.UUID) (int64, error) {
	var next int64
	err := sqlitex.Execute(conn, `
		SELECT COALESCE(MAX(sort_order), -1) + 1
		FROM workspace_nodes
		WHERE parent_uuid IS ? AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{nullableID(parent)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				next = stmt.ColumnInt64(0)
				return nil
			},
		})
	if err != nil {
		return 0, fmt.Errorf("workspace store: next sort order under %s: %w", parent, err)
	}
	return next, nil
}

// visibleChildIDs returns the visible children of parent in display
// order.
func visibleChildIDs(conn *sqlite.Conn, parent uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := sqlitex.Execute(conn, `
		SELECT n.node_uuid
		FROM workspace_nodes n
		LEFT JOIN atoms a ON a.uuid = n.atom_uuid
		WHERE n.parent_uuid IS ? AND `+visibleNodeFilter+`
		ORDER BY n.sort_order ASC, n.node_uuid ASC`,
		&sqlitex.ExecOptions{
			Args: []any{nullableID(parent)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return fmt.Errorf("invalid workspace_nodes.node_uuid %q: %w", stmt.ColumnText(0), err)
				}
				ids = append(ids, id)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("workspace store: visible children of %s: %w", parent, err)
	}
	return ids, nil
}

// activeChildIDs returns the non-tombstoned children of parent in
// display order, including dangling note_refs. Dissolve uses this so
// a dangling ref survives its folder's dissolution.
func activeChildIDs(conn *sqlite.Conn, parent uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := sqlitex.Execute(conn, `
		SELECT node_uuid
		FROM workspace_nodes
		WHERE parent_uuid IS ? AND is_deleted = 0
		ORDER BY sort_order ASC, node_uuid ASC`,
		&sqlitex.ExecOptions{
			Args: []any{nullableID(parent)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return fmt.Errorf("invalid workspace_nodes.node_uuid %q: %w", stmt.ColumnText(0), err)
				}
				ids = append(ids, id)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("workspace store: active children of %s: %w", parent, err)
	}
	return ids, nil
}

// ensureActiveFolder fails with ErrNodeNotFound when the node is
// missing or tombstoned and ErrNodeMustBeFolder when it is a note_ref.
func ensureActiveFolder(conn *sqlite.Conn, id uuid.UUID) error {
	var kind string
	found := false
	err := sqlitex.Execute(conn, `
		SELECT kind FROM workspace_nodes
		WHERE node_uuid = ? AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				kind = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	if err != nil {
		return fmt.Errorf("workspace store: check folder %s: %w", id, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if NodeKind(kind) != KindFolder {
		return fmt.Errorf("%w: %s", ErrNodeMustBeFolder, id)
	}
	return nil
}

// referencedNoteAtoms returns the distinct atom IDs referenced by
// non-tombstoned note_refs anywhere in the subtree rooted at folderID.
func referencedNoteAtoms(conn *sqlite.Conn, folderID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := sqlitex.Execute(conn, `
		WITH RECURSIVE subtree(node_uuid) AS (
			SELECT node_uuid FROM workspace_nodes
			WHERE node_uuid = ? AND is_deleted = 0
			UNION ALL
			SELECT child.node_uuid
			FROM workspace_nodes child
			JOIN subtree parent ON child.parent_uuid = parent.node_uuid
			WHERE child.is_deleted = 0
		)
		SELECT DISTINCT nodes.atom_uuid
		FROM workspace_nodes nodes
		JOIN subtree ON subtree.node_uuid = nodes.node_uuid
		WHERE nodes.kind = 'note_ref'
		  AND nodes.is_deleted = 0
		  AND nodes.atom_uuid IS NOT NULL`,
		&sqlitex.ExecOptions{
			Args: []any{folderID.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return fmt.Errorf("invalid workspace_nodes.atom_uuid %q: %w", stmt.ColumnText(0), err)
				}
				ids = append(ids, id)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("workspace store: referenced atoms under %s: %w", folderID, err)
	}
	return ids, nil
}

// tombstoneSubtree marks the folder and every non-tombstoned
// descendant deleted in a single statement.
func tombstoneSubtree(conn *sqlite.Conn, folderID uuid.UUID, nowMS int64) error {
	err := sqlitex.Execute(conn, `
		WITH RECURSIVE subtree(node_uuid) AS (
			SELECT node_uuid FROM workspace_nodes
			WHERE node_uuid = ? AND is_deleted = 0
			UNION ALL
			SELECT child.node_uuid
			FROM workspace_nodes child
			JOIN subtree parent ON child.parent_uuid = parent.node_uuid
			WHERE child.is_deleted = 0
		)
		UPDATE workspace_nodes
		SET is_deleted = 1, updated_at = ?
		WHERE node_uuid IN (SELECT node_uuid FROM subtree)
		  AND is_deleted = 0`,
		&sqlitex.ExecOptions{
			Args: []any{folderID.String(), nowMS},
		})
	if err != nil {
		return fmt.Errorf("workspace store: tombstone subtree %s: %w", folderID, err)
	}
	return nil
}

func scanNode(stmt *sqlite.Stmt) (*Node, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("invalid workspace_nodes.node_uuid %q: %w", stmt.ColumnText(0), err)
	}
	kind, ok := ParseNodeKind(stmt.ColumnText(1))
	if !ok {
		return nil, fmt.Errorf("invalid workspace_nodes.kind %q", stmt.ColumnText(1))
	}

	node := &Node{
		ID:          id,
		Kind:        kind,
		DisplayName: stmt.ColumnText(4),
		SortOrder:   stmt.ColumnInt64(5),
		Deleted:     stmt.ColumnInt(6) != 0,
		CreatedAt:   stmt.ColumnInt64(7),
		UpdatedAt:   stmt.ColumnInt64(8),
	}
	if !stmt.ColumnIsNull(2) {
		parent, err := uuid.Parse(stmt.ColumnText(2))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace_nodes.parent_uuid %q: %w", stmt.ColumnText(2), err)
		}
		node.ParentID = parent
	}
	if !stmt.ColumnIsNull(3) {
		atomID, err := uuid.Parse(stmt.ColumnText(3))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace_nodes.atom_uuid %q: %w", stmt.ColumnText(3), err)
		}
		node.AtomID = atomID
	}
	return node, nil
}

// nullableID maps uuid.Nil to SQL NULL. Used with `IS ?` so one query
// covers both the root level (parent_uuid IS NULL) and a concrete
// parent.
func nullableID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id.String()
}
