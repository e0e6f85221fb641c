// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Lazynote is the CLI for a local-first note store. It provides
// subcommands for notes (note), tasks (task), events (event), the
// workspace folder tree (tree), and full-text search (search). All
// state lives in a single SQLite database.
package main
