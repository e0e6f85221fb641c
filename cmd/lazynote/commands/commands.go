// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete lazynote CLI command tree.
package commands

import (
	"fmt"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	eventcmd "github.com/lazynote-foundation/lazynote/cmd/lazynote/event"
	notecmd "github.com/lazynote-foundation/lazynote/cmd/lazynote/note"
	searchcmd "github.com/lazynote-foundation/lazynote/cmd/lazynote/search"
	taskcmd "github.com/lazynote-foundation/lazynote/cmd/lazynote/task"
	treecmd "github.com/lazynote-foundation/lazynote/cmd/lazynote/tree"
	"github.com/lazynote-foundation/lazynote/lib/version"
)

// Root builds and returns the complete lazynote CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "lazynote",
		Description: `Lazynote: local-first note keeping.

Notes, tasks, and events live in a single SQLite file, organized
through a folder tree and searchable with full-text queries.`,
		Subcommands: []*cli.Command{
			notecmd.Command(),
			taskcmd.Command(),
			eventcmd.Command(),
			treecmd.Command(),
			searchcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("lazynote %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Add a note",
				Command:     "lazynote note add \"Call the dentist\"",
			},
			{
				Description: "Organize notes into a folder",
				Command:     "lazynote tree mkdir Projects",
			},
			{
				Description: "Search everything",
				Command:     "lazynote search quarterly report",
			},
			{
				Description: "List open tasks",
				Command:     "lazynote task list",
			},
		},
	}
}
