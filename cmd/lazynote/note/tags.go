// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
)

// --- tag ---

type setTagsParams struct {
	cli.ConfigFlag
}

func tagCommand() *cli.Command {
	var params setTagsParams

	return &cli.Command{
		Name:    "tag",
		Summary: "Replace a note's tags",
		Description: `Replace a note's tag set. Tags are trimmed, lowercased, and
deduplicated. With no tags, clears the note's tags.`,
		Usage: "lazynote note tag <id> [tag...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Tag a note",
				Command:     "lazynote note tag 8a6f... work urgent",
			},
			{
				Description: "Clear a note's tags",
				Command:     "lazynote note tag 8a6f...",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note tag", &params)
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("expected a note ID")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Notes.SetTags(ctx, id, args[1:])
		},
	}
}

// --- tags ---

type listTagsParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func tagsCommand() *cli.Command {
	var params listTagsParams

	return &cli.Command{
		Name:    "tags",
		Summary: "List all known tags",
		Usage:   "lazynote note tags [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note tags", &params)
		},
		Run: func(args []string) error {
			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			tags, err := app.Notes.ListTags(ctx)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(tags); done {
				return err
			}
			for _, tag := range tags {
				fmt.Println(tag)
			}
			return nil
		},
	}
}
