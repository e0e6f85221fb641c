// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/lazynote-foundation/lazynote/cmd/lazynote/cli"
	"github.com/lazynote-foundation/lazynote/cmd/lazynote/commands"
)

// TestCommandTreeShape walks the full production command tree and
// validates that every command is dispatchable: a name, a summary for
// the parent's help listing, and either a Run function or subcommands.
func TestCommandTreeShape(t *testing.T) {
	root := commands.Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		where := strings.Join(path, " ")
		if command.Name == "" {
			t.Errorf("%s: command with empty name", where)
		}
		if command != root && command.Summary == "" {
			t.Errorf("%s: command missing a summary", where)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: command with neither Run nor subcommands", where)
		}
	})
}

// TestCommandTreeUniqueNames validates that sibling commands have
// distinct names, since dispatch picks the first match.
func TestCommandTreeUniqueNames(t *testing.T) {
	root := commands.Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		seen := map[string]bool{}
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", strings.Join(path, " "), sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
