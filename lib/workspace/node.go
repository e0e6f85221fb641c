// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import "github.com/google/uuid"

// NodeKind distinguishes folders from note references. The values
// match the workspace_nodes.kind column.
type NodeKind string

const (
	KindFolder  NodeKind = "folder"
	KindNoteRef NodeKind = "note_ref"
)

// ParseNodeKind converts a column value to a NodeKind.
func ParseNodeKind(value string) (NodeKind, bool) {
	switch NodeKind(value) {
	case KindFolder, KindNoteRef:
		return NodeKind(value), true
	}
	return "", false
}

// DeleteMode selects what happens to a folder's contents when the
// folder is deleted.
type DeleteMode string

const (
	// DeleteDissolve tombstones the folder only; its direct children
	// are reparented to root, appended after the existing root nodes.
	DeleteDissolve DeleteMode = "dissolve"

	// DeleteAll tombstones the whole subtree and additionally
	// tombstones every note atom that loses its last active
	// reference.
	DeleteAll DeleteMode = "delete_all"
)

// Node is one row of the workspace_nodes table. Timestamps are Unix
// epoch milliseconds.
type Node struct {
	ID   uuid.UUID
	Kind NodeKind

	// ParentID is uuid.Nil for root-level nodes.
	ParentID uuid.UUID

	// AtomID is the referenced note atom. Set iff Kind is
	// KindNoteRef.
	AtomID uuid.UUID

	DisplayName string

	// SortOrder is the node's position among its visible siblings.
	// Maintained dense (0..n-1) by Move; creates append past the end.
	SortOrder int64

	Deleted   bool
	CreatedAt int64
	UpdatedAt int64
}

// Root reports whether the node sits at the top level.
func (n *Node) Root() bool { return n.ParentID == uuid.Nil }
