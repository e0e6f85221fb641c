// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package task implements the "lazynote task" subcommand group.
package task

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/atom"
)

// Command returns the "task" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "Create and manage tasks",
		Description: `Create and manage tasks.

A task is an atom with a workflow status: todo, in_progress, done, or
cancelled.`,
		Subcommands: []*cli.Command{
			addCommand(),
			statusCommand(),
			doneCommand(),
			listCommand(),
		},
	}
}

// taskResult is the JSON shape for a single task.
type taskResult struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

func toResult(a *atom.Atom) taskResult {
	return taskResult{
		ID:        a.ID.String(),
		Content:   a.Content,
		Status:    string(a.TaskStatus),
		UpdatedAt: time.UnixMilli(a.UpdatedAt).UTC().Format(time.RFC3339),
	}
}

// --- add ---

type addParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Status string `json:"status" flag:"status,s" desc:"initial status" default:"todo"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Create a new task",
		Usage:   "lazynote task add <content> [flags]",
		Examples: []cli.Example{
			{
				Description: "Add a task",
				Command:     "lazynote task add \"Renew passport\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task add", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one content argument")
			}
			status, ok := atom.ParseTaskStatus(params.Status)
			if !ok {
				return fmt.Errorf("invalid status %q (todo, in_progress, done, cancelled)", params.Status)
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			a := atom.NewTask(args[0], status)
			if err := app.Atoms.Create(ctx, a); err != nil {
				return err
			}

			if done, err := params.EmitJSON(toResult(a)); done {
				return err
			}
			fmt.Println(a.ID)
			return nil
		},
	}
}

// --- status ---

type statusParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Change a task's status",
		Usage:   "lazynote task status <id> <todo|in_progress|done|cancelled> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task status", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected a task ID and a status")
			}
			return setStatus(&params, args[0], args[1])
		},
	}
}

func doneCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "done",
		Summary: "Mark a task done",
		Usage:   "lazynote task done <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task done", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task ID")
			}
			return setStatus(&params, args[0], string(atom.TaskDone))
		},
	}
}

func setStatus(params *statusParams, idArg, statusArg string) error {
	id, err := uuid.Parse(idArg)
	if err != nil {
		return fmt.Errorf("invalid task ID %q: %w", idArg, err)
	}
	status, ok := atom.ParseTaskStatus(statusArg)
	if !ok {
		return fmt.Errorf("invalid status %q (todo, in_progress, done, cancelled)", statusArg)
	}

	ctx := context.Background()
	app, err := cli.OpenApp(ctx, params.ConfigPath)
	if err != nil {
		return err
	}
	defer app.Close()

	a, err := app.Atoms.Get(ctx, id, false)
	if err != nil {
		return err
	}
	if a.Kind != atom.KindTask {
		return fmt.Errorf("atom %s is a %s, not a task", id, a.Kind)
	}
	a.TaskStatus = status
	if err := app.Atoms.Update(ctx, a); err != nil {
		return err
	}

	if done, err := params.EmitJSON(toResult(a)); done {
		return err
	}
	return nil
}

// --- list ---

type listParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	All    bool `json:"all"    flag:"all,a"  desc:"include done and cancelled tasks"`
	Limit  int  `json:"limit"  flag:"limit"  desc:"maximum tasks to list"`
	Offset int  `json:"offset" flag:"offset" desc:"tasks to skip (pagination)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tasks, most recently updated first",
		Usage:   "lazynote task list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("task list", &params)
		},
		Run: func(args []string) error {
			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			atoms, err := app.Atoms.List(ctx, atom.ListQuery{
				Kind:   atom.KindTask,
				Limit:  params.Limit,
				Offset: params.Offset,
			})
			if err != nil {
				return err
			}

			results := make([]taskResult, 0, len(atoms))
			for _, a := range atoms {
				if !params.All && (a.TaskStatus == atom.TaskDone || a.TaskStatus == atom.TaskCancelled) {
					continue
				}
				results = append(results, toResult(a))
			}

			if done, err := params.EmitJSON(results); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, result := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", result.ID, result.Status, result.Content)
			}
			return tw.Flush()
		},
	}
}
