// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package atom defines the atom content model and its SQLite store.
//
// An atom is the unit of user content: a note, a task, or a calendar
// event. Atoms are soft-deleted (tombstoned) rather than removed, so
// references from the workspace tree and from sync peers stay
// resolvable. The workspace tree in lib/workspace references note
// atoms by UUID and treats a tombstoned atom as invisible.
package atom

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes the three atom content types. The values match
// the atoms.type column.
type Kind string

const (
	KindNote  Kind = "note"
	KindTask  Kind = "task"
	KindEvent Kind = "event"
)

// ParseKind converts a column value to a Kind. ok is false for
// anything the schema would reject.
func ParseKind(value string) (Kind, bool) {
	switch Kind(value) {
	case KindNote, KindTask, KindEvent:
		return Kind(value), true
	}
	return "", false
}

// TaskStatus is the workflow state of a task atom. Empty means the
// atom is not a task or the status was never set.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

// ParseTaskStatus converts a column value to a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, bool) {
	switch TaskStatus(value) {
	case TaskTodo, TaskInProgress, TaskDone, TaskCancelled:
		return TaskStatus(value), true
	}
	return "", false
}

// Validation errors returned by [Atom.Validate].
var (
	ErrNilID         = errors.New("atom: id must not be nil")
	ErrEventWindow   = errors.New("atom: event end precedes start")
	ErrUnknownKind   = errors.New("atom: unknown kind")
	ErrUnknownStatus = errors.New("atom: unknown task status")
	ErrStatusNonTask = errors.New("atom: task status on non-task atom")
)

// Atom is one row of the atoms table. Timestamps are Unix epoch
// milliseconds. Optional text fields use "" for NULL.
type Atom struct {
	ID      uuid.UUID
	Kind    Kind
	Content string

	// TaskStatus is set only for task atoms.
	TaskStatus TaskStatus

	// EventStart and EventEnd bound an event atom's time window in
	// epoch milliseconds. Either may be nil for open-ended events.
	EventStart *int64
	EventEnd   *int64

	// HLCTimestamp is the hybrid logical clock stamp assigned by the
	// sync layer, empty for atoms that never synced.
	HLCTimestamp string

	// DeviceID identifies the device that last wrote the atom.
	DeviceID string

	// PreviewText and PreviewImage are projections derived from note
	// content by lib/note. Empty for non-note atoms.
	PreviewText  string
	PreviewImage string

	Deleted   bool
	CreatedAt int64
	UpdatedAt int64
}

// New returns an atom of the given kind with a fresh random ID.
// Timestamps are assigned by the store on Create.
func New(kind Kind, content string) *Atom {
	return &Atom{
		ID:      uuid.New(),
		Kind:    kind,
		Content: content,
	}
}

// NewTask returns a task atom with the given initial status.
func NewTask(content string, status TaskStatus) *Atom {
	a := New(KindTask, content)
	a.TaskStatus = status
	return a
}

// NewEvent returns an event atom scheduled for the given window.
// Either bound may be nil.
func NewEvent(content string, start, end *int64) *Atom {
	a := New(KindEvent, content)
	a.EventStart = start
	a.EventEnd = end
	return a
}

// Validate checks the invariants the store refuses to persist without.
func (a *Atom) Validate() error {
	if a.ID == uuid.Nil {
		return ErrNilID
	}
	if _, ok := ParseKind(string(a.Kind)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}
	if a.TaskStatus != "" {
		if a.Kind != KindTask {
			return fmt.Errorf("%w: kind %s", ErrStatusNonTask, a.Kind)
		}
		if _, ok := ParseTaskStatus(string(a.TaskStatus)); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStatus, a.TaskStatus)
		}
	}
	if a.EventStart != nil && a.EventEnd != nil && *a.EventEnd < *a.EventStart {
		return fmt.Errorf("%w: start=%d end=%d", ErrEventWindow, *a.EventStart, *a.EventEnd)
	}
	return nil
}

// Active reports whether the atom is visible to readers.
func (a *Atom) Active() bool { return !a.Deleted }
