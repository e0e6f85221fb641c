// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lazynote-foundation/lazynote/lib/atom"
)

// DefaultNoteRefName is used when a note_ref is created without a
// display name.
const DefaultNoteRefName = "Untitled note"

// ServiceConfig holds the dependencies for a workspace Service.
type ServiceConfig struct {
	// Store is the workspace persistence layer. Required.
	Store *Store

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Service validates tree operations before handing them to the Store:
// display name normalization, parent existence and kind checks, atom
// kind checks for note_refs, and cycle detection for moves.
type Service struct {
	store  *Store
	logger *slog.Logger
}

// NewService validates the configuration and returns a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("workspace service: Store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: cfg.Store, logger: logger}, nil
}

// CreateFolder creates a folder under parent (uuid.Nil for root). The
// display name is trimmed and must not be blank.
func (s *Service) CreateFolder(ctx context.Context, parent uuid.UUID, displayName string) (*Node, error) {
	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return nil, err
	}
	if parent != uuid.Nil {
		if err := s.ensureParentIsFolder(ctx, parent); err != nil {
			return nil, err
		}
	}
	return s.store.CreateFolder(ctx, parent, name)
}

// CreateNoteRef creates a note_ref under parent pointing at the given
// atom, which must exist and be an active note. An empty displayName
// selects [DefaultNoteRefName]; a non-empty one is trimmed and must
// not be blank.
func (s *Service) CreateNoteRef(ctx context.Context, parent, atomID uuid.UUID, displayName string) (*Node, error) {
	if parent != uuid.Nil {
		if err := s.ensureParentIsFolder(ctx, parent); err != nil {
			return nil, err
		}
	}
	if err := s.ensureAtomIsNote(ctx, atomID); err != nil {
		return nil, err
	}

	name := DefaultNoteRefName
	if displayName != "" {
		var err error
		name, err = normalizeDisplayName(displayName)
		if err != nil {
			return nil, err
		}
	}
	return s.store.CreateNoteRef(ctx, parent, atomID, name)
}

// GetNode returns the visible node with the given ID, or
// ErrNodeNotFound.
func (s *Service) GetNode(ctx context.Context, id uuid.UUID) (*Node, error) {
	node, err := s.store.GetNode(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return node, nil
}

// ListChildren returns the visible children of parent (uuid.Nil for
// the root level) in display order.
func (s *Service) ListChildren(ctx context.Context, parent uuid.UUID) ([]*Node, error) {
	if parent != uuid.Nil {
		if err := s.ensureParentIsFolder(ctx, parent); err != nil {
			return nil, err
		}
	}
	return s.store.ListChildren(ctx, parent, false)
}

// Rename changes a node's display name. The name is trimmed and must
// not be blank.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return err
	}
	return s.store.Rename(ctx, id, name)
}

// Move reparents a node (newParent uuid.Nil for root) and positions
// it at targetOrder among the destination's visible siblings (nil
// appends). Rejects moves where the node would become its own
// ancestor, including the node-as-its-own-parent case.
func (s *Service) Move(ctx context.Context, id, newParent uuid.UUID, targetOrder *int) error {
	node, err := s.store.GetNode(ctx, id, false)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	if newParent != uuid.Nil {
		if newParent == id {
			return fmt.Errorf("%w: node %s under itself", ErrCycleDetected, id)
		}
		if err := s.ensureParentIsFolder(ctx, newParent); err != nil {
			return err
		}
		cycle, err := s.wouldCreateCycle(ctx, id, newParent)
		if err != nil {
			return err
		}
		if cycle {
			return fmt.Errorf("%w: node %s under parent %s", ErrCycleDetected, id, newParent)
		}
	}

	return s.store.Move(ctx, id, newParent, targetOrder)
}

// DeleteFolder removes a folder according to mode: DeleteDissolve
// keeps the contents and lifts them to root, DeleteAll tombstones the
// subtree and garbage-collects note atoms that lose their last
// reference.
func (s *Service) DeleteFolder(ctx context.Context, id uuid.UUID, mode DeleteMode) error {
	node, err := s.store.GetNode(ctx, id, false)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if node.Kind != KindFolder {
		return fmt.Errorf("%w: %s", ErrNodeMustBeFolder, id)
	}

	switch mode {
	case DeleteDissolve:
		return s.store.DeleteFolderDissolve(ctx, id)
	case DeleteAll:
		return s.store.DeleteFolderDeleteAll(ctx, id)
	default:
		return fmt.Errorf("workspace service: unknown delete mode %q", mode)
	}
}

func (s *Service) ensureParentIsFolder(ctx context.Context, parent uuid.UUID) error {
	node, err := s.store.GetNode(ctx, parent, false)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: %s", ErrParentNotFound, parent)
	}
	if node.Kind != KindFolder {
		return fmt.Errorf("%w: %s", ErrParentMustBeFolder, parent)
	}
	return nil
}

func (s *Service) ensureAtomIsNote(ctx context.Context, atomID uuid.UUID) error {
	kind, ok, err := s.store.AtomKind(ctx, atomID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAtomNotFound, atomID)
	}
	if kind != atom.KindNote {
		return fmt.Errorf("%w: %s is a %s", ErrAtomNotNote, atomID, kind)
	}
	return nil
}

// wouldCreateCycle walks the parent chain upward from candidateParent
// looking for the node being moved. The visited set guards against a
// corrupted tree that already contains a cycle; a broken parent link
// surfaces as ErrParentNotFound.
func (s *Service) wouldCreateCycle(ctx context.Context, id, candidateParent uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	cursor := candidateParent
	for cursor != uuid.Nil {
		if cursor == id {
			return true, nil
		}
		if visited[cursor] {
			return true, nil
		}
		visited[cursor] = true

		node, err := s.store.GetNode(ctx, cursor, false)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, fmt.Errorf("%w: %s", ErrParentNotFound, cursor)
		}
		cursor = node.ParentID
	}
	return false, nil
}

func normalizeDisplayName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrInvalidDisplayName
	}
	return trimmed, nil
}
