// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/workspace"
)

// --- mkdir ---

type mkdirParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Parent string `json:"parent" flag:"parent,p" desc:"parent folder node ID (default: root)"`
}

func mkdirCommand() *cli.Command {
	var params mkdirParams

	return &cli.Command{
		Name:    "mkdir",
		Summary: "Create a folder",
		Usage:   "lazynote tree mkdir <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a top-level folder",
				Command:     "lazynote tree mkdir Projects",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree mkdir", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one folder name")
			}
			parent, err := parseNodeID(params.Parent)
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			node, err := app.Tree.CreateFolder(ctx, parent, args[0])
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(toResult(node)); done {
				return err
			}
			fmt.Println(node.ID)
			return nil
		},
	}
}

// --- link ---

type linkParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Parent string `json:"parent" flag:"parent,p" desc:"parent folder node ID (default: root)"`
	Name   string `json:"name"   flag:"name,n"   desc:"display name (default: Untitled note)"`
}

func linkCommand() *cli.Command {
	var params linkParams

	return &cli.Command{
		Name:    "link",
		Summary: "Reference a note from the tree",
		Description: `Create a note reference in a folder. The same note can be linked
from several folders; each link is an independent node.`,
		Usage: "lazynote tree link <note-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Link a note into a folder",
				Command:     "lazynote tree link 8a6f... --parent 2b1c... --name \"Kickoff notes\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree link", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one note ID")
			}
			atomID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid note ID %q: %w", args[0], err)
			}
			parent, err := parseNodeID(params.Parent)
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			node, err := app.Tree.CreateNoteRef(ctx, parent, atomID, params.Name)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(toResult(node)); done {
				return err
			}
			fmt.Println(node.ID)
			return nil
		},
	}
}

// --- ls ---

type lsParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func lsCommand() *cli.Command {
	var params lsParams

	return &cli.Command{
		Name:    "ls",
		Summary: "List a folder's children in tree order",
		Usage:   "lazynote tree ls [folder-id] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree ls", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one folder ID")
			}
			parent := uuid.Nil
			if len(args) == 1 {
				var err error
				parent, err = parseNodeID(args[0])
				if err != nil {
					return err
				}
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			nodes, err := app.Tree.ListChildren(ctx, parent)
			if err != nil {
				return err
			}

			results := make([]nodeResult, len(nodes))
			for i, node := range nodes {
				results[i] = toResult(node)
			}
			if done, err := params.EmitJSON(results); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, result := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", result.ID, result.Kind, result.Name)
			}
			return tw.Flush()
		},
	}
}

// --- rename ---

type renameParams struct {
	cli.ConfigFlag
}

func renameCommand() *cli.Command {
	var params renameParams

	return &cli.Command{
		Name:    "rename",
		Summary: "Rename a node",
		Usage:   "lazynote tree rename <node-id> <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree rename", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected a node ID and a new name")
			}
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Tree.Rename(ctx, id, args[1])
		},
	}
}

// --- move ---

type moveParams struct {
	cli.ConfigFlag
	To       string `json:"to"       flag:"to"       desc:"destination folder node ID (default: root)"`
	Position int    `json:"position" flag:"position" desc:"position among siblings (-1 appends)" default:"-1"`
}

func moveCommand() *cli.Command {
	var params moveParams

	return &cli.Command{
		Name:    "move",
		Summary: "Move a node to another folder",
		Description: `Move a node under a new parent. With --position, the node is
inserted at that index among the destination's children; out-of-range
positions clamp to the ends. Without it, the node is appended.

Moving a folder under its own descendant is rejected.`,
		Usage: "lazynote tree move <node-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Move a note reference to the top of a folder",
				Command:     "lazynote tree move 8a6f... --to 2b1c... --position 0",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree move", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one node ID")
			}
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			parent, err := parseNodeID(params.To)
			if err != nil {
				return err
			}
			var targetOrder *int
			if params.Position >= 0 {
				targetOrder = &params.Position
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Tree.Move(ctx, id, parent, targetOrder)
		},
	}
}

// --- rm ---

type removeParams struct {
	cli.ConfigFlag
	Mode string `json:"mode" flag:"mode,m" desc:"folder delete mode: dissolve or all" default:"dissolve"`
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "rm",
		Summary: "Delete a folder",
		Description: `Delete a folder.

Mode "dissolve" removes the folder and reparents its children to the
root, keeping their nesting below that point. Mode "all" removes the
folder and its whole subtree; notes whose last tree reference lies in
the subtree are deleted with it, while notes still referenced
elsewhere survive.`,
		Usage: "lazynote tree rm <folder-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Delete a folder and everything in it",
				Command:     "lazynote tree rm 2b1c... --mode all",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tree rm", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one folder ID")
			}
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}

			var mode workspace.DeleteMode
			switch params.Mode {
			case "dissolve":
				mode = workspace.DeleteDissolve
			case "all":
				mode = workspace.DeleteAll
			default:
				return fmt.Errorf("invalid mode %q (dissolve or all)", params.Mode)
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Tree.DeleteFolder(ctx, id, mode)
		},
	}
}
