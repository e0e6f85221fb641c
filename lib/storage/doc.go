// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage owns the lazynote database: it opens the connection
// pool, applies schema migrations, and hands the pool to the stores
// built on top of it (atom, note, workspace, search).
//
// # Migrations
//
// The schema is versioned through PRAGMA user_version. Each migration
// is a SQL script bound to a strictly increasing version number; Open
// applies every migration above the database's current version inside
// a single immediate transaction, so a half-applied upgrade never
// becomes visible. A database whose user_version is higher than this
// binary knows is rejected with [ErrSchemaTooNew] rather than touched.
//
// # Layout
//
// One file holds everything: atoms (the content rows), tags and the
// atom_tags join table, the atoms_fts full-text index kept in sync by
// triggers, and workspace_nodes (the folder/note-reference tree).
package storage
