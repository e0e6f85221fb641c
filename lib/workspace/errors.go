// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import "errors"

// Sentinel errors for the workspace tree. Operations wrap these with
// the offending ID; callers match with errors.Is.
var (
	// ErrNodeNotFound means the target node does not exist, is
	// tombstoned, or is a note_ref whose atom is gone.
	ErrNodeNotFound = errors.New("workspace: node not found")

	// ErrNodeMustBeFolder means a folder operation targeted a
	// note_ref.
	ErrNodeMustBeFolder = errors.New("workspace: node is not a folder")

	// ErrParentNotFound means the requested parent does not exist or
	// is not visible.
	ErrParentNotFound = errors.New("workspace: parent not found")

	// ErrParentMustBeFolder means the requested parent is a note_ref.
	ErrParentMustBeFolder = errors.New("workspace: parent is not a folder")

	// ErrAtomNotFound means a note_ref targeted a missing or
	// tombstoned atom.
	ErrAtomNotFound = errors.New("workspace: atom not found")

	// ErrAtomNotNote means a note_ref targeted a task or event atom.
	ErrAtomNotNote = errors.New("workspace: atom is not a note")

	// ErrInvalidDisplayName means the display name was blank after
	// trimming.
	ErrInvalidDisplayName = errors.New("workspace: display name must not be blank")

	// ErrCycleDetected means a move would make a node its own
	// ancestor.
	ErrCycleDetected = errors.New("workspace: move would create a cycle")
)
