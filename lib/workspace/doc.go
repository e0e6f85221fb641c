// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace implements the workspace tree: the user-arranged
// hierarchy of folders and note references that sits above the flat
// atom table.
//
// A node is either a folder or a note_ref. Folders provide structure;
// note_refs point at note atoms by UUID. Multiple note_refs may point
// at the same atom, so a note can appear in several folders at once.
// Nodes are tombstoned rather than removed, and a note_ref whose atom
// is tombstoned (or not a note) becomes invisible without being
// touched: restoring the atom restores the reference.
//
// The package splits into two layers:
//
//   - [Store] is the persistence layer. It owns the SQL, the dense
//     0..n-1 sibling ordering, and the two cascading deletes (dissolve
//     and delete-all). Multi-statement operations run inside immediate
//     transactions so a failure midway leaves the tree untouched.
//   - [Service] is the validation layer. It normalizes display names,
//     checks that parents exist and are folders, verifies that a
//     note_ref targets an active note atom, and rejects moves that
//     would create a cycle. All user-facing operations go through the
//     Service.
//
// Failures are reported through the sentinel errors in errors.go and
// checked with errors.Is.
package workspace
