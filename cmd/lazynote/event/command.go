// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package event implements the "lazynote event" subcommand group.
package event

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/atom"
)

// Command returns the "event" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "event",
		Summary: "Create and list events",
		Description: `Create and list events.

An event is an atom with an optional time window. Times are given in
RFC 3339 form (2026-03-01T14:00:00Z) or as a local date and time
(2026-03-01 14:00).`,
		Subcommands: []*cli.Command{
			addCommand(),
			listCommand(),
		},
	}
}

// eventResult is the JSON shape for a single event.
type eventResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

func toResult(a *atom.Atom) eventResult {
	result := eventResult{
		ID:      a.ID.String(),
		Content: a.Content,
	}
	if a.EventStart != nil {
		result.Start = formatTime(*a.EventStart)
	}
	if a.EventEnd != nil {
		result.End = formatTime(*a.EventEnd)
	}
	return result
}

func formatTime(epochMS int64) string {
	return time.UnixMilli(epochMS).UTC().Format(time.RFC3339)
}

// parseTime accepts RFC 3339 or a local "2006-01-02 15:04" stamp and
// returns epoch milliseconds.
func parseTime(value string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("invalid time %q (want RFC 3339 or \"2006-01-02 15:04\")", value)
}

// --- add ---

type addParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Start string `json:"start" flag:"start" desc:"event start time"`
	End   string `json:"end"   flag:"end"   desc:"event end time"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Create a new event",
		Usage:   "lazynote event add <content> [flags]",
		Examples: []cli.Example{
			{
				Description: "Schedule a meeting",
				Command:     "lazynote event add \"Design review\" --start \"2026-03-01 14:00\" --end \"2026-03-01 15:00\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("event add", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one content argument")
			}

			var start, end *int64
			if params.Start != "" {
				ms, err := parseTime(params.Start)
				if err != nil {
					return err
				}
				start = &ms
			}
			if params.End != "" {
				ms, err := parseTime(params.End)
				if err != nil {
					return err
				}
				end = &ms
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			a := atom.NewEvent(args[0], start, end)
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

// --- list ---

type listParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Limit  int `json:"limit"  flag:"limit" desc:"maximum events to list"`
	Offset int `json:"offset" flag:"offset" desc:"events to skip (pagination)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List events, most recently updated first",
		Usage:   "lazynote event list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("event list", &params)
		},
		Run: func(args []string) error {
			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			atoms, err := app.Atoms.List(ctx, atom.ListQuery{
				Kind:   atom.KindEvent,
				Limit:  params.Limit,
				Offset: params.Offset,
			})
			if err != nil {
				return err
			}

			results := make([]eventResult, len(atoms))
			for i, a := range atoms {
				results[i] = toResult(a)
			}

			if done, err := params.EmitJSON(results); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, result := range results {
				window := result.Start
				if result.End != "" {
					window += " .. " + result.End
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", result.ID, window, result.Content)
			}
			return tw.Flush()
		},
	}
}
