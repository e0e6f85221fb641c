// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations at the given level. Format "json" forces
// slog.JSONHandler. Format "text" (or anything else) picks by
// destination: a terminal on stderr gets TextHandler for
// human-readable output, while a pipe or redirect (scripts, CI) gets
// JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(level, format).With(
//	    "command", "tree/move",
//	)
func NewCommandLogger(level slog.Level, format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch {
	case format == "json":
		handler = slog.NewJSONHandler(os.Stderr, options)
	case term.IsTerminal(int(os.Stderr.Fd())):
		handler = slog.NewTextHandler(os.Stderr, options)
	default:
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
