// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package tree implements the "lazynote tree" subcommand group for
// organizing notes into a folder hierarchy.
package tree

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/workspace"
)

// Command returns the "tree" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "tree",
		Summary: "Organize the workspace tree",
		Description: `Organize notes into a folder hierarchy.

The tree holds two kinds of nodes: folders and note references. A note
may be referenced from several folders at once; deleting one reference
leaves the note intact. Node and parent arguments are node UUIDs; omit
--parent (or pass "root") for the workspace root.`,
		Subcommands: []*cli.Command{
			mkdirCommand(),
			linkCommand(),
			lsCommand(),
			renameCommand(),
			moveCommand(),
			removeCommand(),
		},
	}
}

// nodeResult is the JSON shape for a single tree node.
type nodeResult struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Parent    string `json:"parent,omitempty"`
	Atom      string `json:"atom,omitempty"`
	SortOrder int64  `json:"sort_order"`
	UpdatedAt string `json:"updated_at"`
}

func toResult(node *workspace.Node) nodeResult {
	result := nodeResult{
		ID:        node.ID.String(),
		Kind:      string(node.Kind),
		Name:      node.DisplayName,
		SortOrder: node.SortOrder,
		UpdatedAt: time.UnixMilli(node.UpdatedAt).UTC().Format(time.RFC3339),
	}
	if node.ParentID != uuid.Nil {
		result.Parent = node.ParentID.String()
	}
	if node.AtomID != uuid.Nil {
		result.Atom = node.AtomID.String()
	}
	return result
}

// parseNodeID parses a node UUID argument. "root" and "" mean the
// workspace root.
func parseNodeID(arg string) (uuid.UUID, error) {
	if arg == "" || arg == "root" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid node ID %q: %w", arg, err)
	}
	return id, nil
}
