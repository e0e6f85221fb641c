// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package note implements the "lazynote note" subcommand group:
// creating, editing, listing, tagging, and deleting notes.
package note

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/note"
)

// Command returns the "note" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "note",
		Summary: "Create and manage notes",
		Description: `Create and manage notes.

Notes are markdown documents. A short text preview and the first image
reference are derived from the content automatically and shown in
listings.`,
		Subcommands: []*cli.Command{
			addCommand(),
			showCommand(),
			editCommand(),
			listCommand(),
			removeCommand(),
			tagCommand(),
			tagsCommand(),
		},
	}
}

// noteResult is the JSON shape for a single note.
type noteResult struct {
	ID        string   `json:"id"`
	Content   string   `json:"content,omitempty"`
	Preview   string   `json:"preview"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updated_at"`
}

func toResult(record *note.Record, includeContent bool) noteResult {
	result := noteResult{
		ID:        record.AtomID.String(),
		Preview:   record.PreviewText,
		Image:     record.PreviewImage,
		Tags:      record.Tags,
		UpdatedAt: formatTime(record.UpdatedAt),
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	if includeContent {
		result.Content = record.Content
	}
	return result
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid note ID %q: %w", arg, err)
	}
	return id, nil
}

func formatTime(epochMS int64) string {
	return time.UnixMilli(epochMS).UTC().Format(time.RFC3339)
}
