// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package search implements the "lazynote search" command.
package search

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/search"
)

type searchParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Kind  string `json:"kind"  flag:"kind,k" desc:"restrict to one kind: note, task, or event"`
	Limit int    `json:"limit" flag:"limit"  desc:"maximum hits"`
	Raw   bool   `json:"raw"   flag:"raw"    desc:"treat the query as a raw FTS5 expression"`
}

type hitResult struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
}

// Command returns the "search" command.
func Command() *cli.Command {
	var params searchParams

	return &cli.Command{
		Name:    "search",
		Summary: "Full-text search across notes, tasks, and events",
		Description: `Search atom content. Results are ranked by relevance, with the
matched region shown as a snippet. Query terms are matched verbatim
and all must appear; pass --raw for FTS5 operators like NOT and OR.

Exits 1 when nothing matches.`,
		Usage: "lazynote search <query>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Find notes mentioning both words",
				Command:     "lazynote search quarterly report",
			},
			{
				Description: "FTS5 expression search",
				Command:     "lazynote search --raw 'apples NOT bananas'",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("search", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected a search query")
			}

			var kind atom.Kind
			if params.Kind != "" {
				parsed, ok := atom.ParseKind(params.Kind)
				if !ok {
					return fmt.Errorf("invalid kind %q (note, task, or event)", params.Kind)
				}
				kind = parsed
			}

			ctx := context.Background()
			app, err := cli.OpenApp(ctx, params.ConfigPath)
			if err != nil {
				return err
			}
			defer app.Close()

			limit := params.Limit
			if limit == 0 {
				limit = app.Config.Search.Limit
			}

			hits, err := app.Search.Search(ctx, search.Query{
				Text:      strings.Join(args, " "),
				Kind:      kind,
				Limit:     limit,
				RawSyntax: params.Raw,
			})
			if err != nil {
				return err
			}

			results := make([]hitResult, len(hits))
			for i, hit := range hits {
				results[i] = hitResult{
					ID:      hit.AtomID.String(),
					Kind:    string(hit.Kind),
					Snippet: hit.Snippet,
				}
			}

			if done, err := params.EmitJSON(results); done {
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return &cli.ExitError{Code: 1}
				}
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, result := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", result.ID, result.Kind, result.Snippet)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(results) == 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
