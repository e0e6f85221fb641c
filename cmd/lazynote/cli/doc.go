// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the lazynote CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/lazynote/main.go
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Flag parsing is declarative where it can be: [FlagsFromParams] binds a
// pflag set to the tagged fields of a params struct, and [JSONOutput]
// embeds a --json flag with a companion EmitJSON method so commands can
// offer machine-readable output uniformly.
package cli
