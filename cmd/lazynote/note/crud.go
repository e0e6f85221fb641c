// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/note"
)

// --- add ---

type addParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Tags []string `json:"tags" flag:"tag,t" desc:"tags to set (repeatable)"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Create a new note",
		Description: `Create a new note from the argument, or from stdin when the
argument is "-". Prints the new note's ID.`,
		Usage: "lazynote note add <content | -> [flags]",
		Examples: []cli.Example{
			{
				Description: "Add a quick note",
				Command:     "lazynote note add \"Call the dentist\"",
			},
			{
				Description: "Add a tagged note from a file",
				Command:     "cat meeting.md | lazynote note add - --tag work --tag meetings",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note add", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one content argument (use - for stdin)")
			}
			content := args[0]
			if content == "-" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				content = string(data)
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			record, err := app.Notes.Create(ctx, content)
			if err != nil {
				return err
			}
			if len(params.Tags) > 0 {
				if err := app.Notes.SetTags(ctx, record.AtomID, params.Tags); err != nil {
					return err
				}
				record, err = app.Notes.Get(ctx, record.AtomID)
				if err != nil {
					return err
				}
			}

			if done, err := params.EmitJSON(toResult(record, false)); done {
				return err
			}
			fmt.Println(record.AtomID)
			return nil
		},
	}
}

// --- show ---

type showParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print a note's content",
		Usage:   "lazynote note show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note show", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one note ID")
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

			record, err := app.Notes.Get(ctx, id)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(toResult(record, true)); done {
				return err
			}
			fmt.Print(record.Content)
			if !strings.HasSuffix(record.Content, "\n") {
				fmt.Println()
			}
			return nil
		},
	}
}

// --- edit ---

type editParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func editCommand() *cli.Command {
	var params editParams

	return &cli.Command{
		Name:    "edit",
		Summary: "Replace a note's content",
		Description: `Replace a note's content with the argument, or with stdin when
the argument is "-". The preview is rederived from the new content.`,
		Usage: "lazynote note edit <id> <content | -> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note edit", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected a note ID and content (use - for stdin)")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			content := args[1]
			if content == "-" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				content = string(data)
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			record, err := app.Notes.Update(ctx, id, content)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(toResult(record, false)); done {
				return err
			}
			return nil
		},
	}
}

// --- list ---

type listParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Tag    string `json:"tag"    flag:"tag,t"  desc:"only notes carrying this tag"`
	Limit  int    `json:"limit"  flag:"limit"  desc:"maximum notes to list"`
	Offset int    `json:"offset" flag:"offset" desc:"notes to skip (pagination)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List notes, most recently updated first",
		Usage:   "lazynote note list [flags]",
		Examples: []cli.Example{
			{
				Description: "List work notes",
				Command:     "lazynote note list --tag work",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note list", &params)
		},
		Run: func(args []string) error {
			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			records, err := app.Notes.List(ctx, note.ListQuery{
				Tag:    params.Tag,
				Limit:  params.Limit,
				Offset: params.Offset,
			})
			if err != nil {
				return err
			}

			results := make([]noteResult, len(records))
			for i, record := range records {
				results[i] = toResult(record, false)
			}
			if done, err := params.EmitJSON(results); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, result := range results {
				tags := strings.Join(result.Tags, ",")
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", result.ID, result.UpdatedAt, tags, result.Preview)
			}
			return tw.Flush()
		},
	}
}

// --- rm ---

type removeParams struct {
	cli.ConfigFlag
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "rm",
		Summary: "Delete a note",
		Description: `Soft-delete a note. The note disappears from listings, search,
and the workspace tree, but the row is kept for sync convergence.`,
		Usage: "lazynote note rm <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("note rm", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one note ID")
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

			return app.Atoms.SoftDelete(ctx, id)
		},
	}
}
