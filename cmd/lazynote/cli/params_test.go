// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Tag      string        `flag:"tag" desc:"tag filter"`
		Raw      bool          `flag:"raw,r" desc:"raw query syntax"`
		Limit    int           `flag:"limit" desc:"maximum results"`
		Since    int64         `flag:"since" desc:"epoch milliseconds lower bound"`
		Weight   float64       `flag:"weight" desc:"ranking weight"`
		Debounce time.Duration `flag:"debounce" desc:"search debounce"`
		Kinds    []string      `flag:"kinds" desc:"atom kinds"`
		Untagged string        // no flag tag — should be skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--tag", "work",
		"-r",
		"--limit", "25",
		"--since", "1767225600000",
		"--weight", "0.75",
		"--debounce", "150ms",
		"--kinds", "note,task,event",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Tag != "work" {
		t.Errorf("Tag = %q, want %q", p.Tag, "work")
	}
	if !p.Raw {
		t.Error("Raw = false, want true")
	}
	if p.Limit != 25 {
		t.Errorf("Limit = %d, want 25", p.Limit)
	}
	if p.Since != 1767225600000 {
		t.Errorf("Since = %d, want 1767225600000", p.Since)
	}
	if p.Weight != 0.75 {
		t.Errorf("Weight = %f, want 0.75", p.Weight)
	}
	if p.Debounce != 150*time.Millisecond {
		t.Errorf("Debounce = %v, want 150ms", p.Debounce)
	}
	if len(p.Kinds) != 3 || p.Kinds[0] != "note" || p.Kinds[1] != "task" || p.Kinds[2] != "event" {
		t.Errorf("Kinds = %v, want [note task event]", p.Kinds)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty (should be skipped)", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Mode     string        `flag:"mode" desc:"delete mode" default:"dissolve"`
		Limit    int           `flag:"limit" desc:"maximum results" default:"10"`
		Since    int64         `flag:"since" desc:"lower bound" default:"100"`
		Weight   float64       `flag:"weight" desc:"weight" default:"0.5"`
		Debounce time.Duration `flag:"debounce" desc:"debounce" default:"200ms"`
		All      bool          `flag:"all" desc:"include finished" default:"true"`
		Kinds    []string      `flag:"kinds" desc:"kinds" default:"note,task"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	// Parse with no arguments — should get all defaults.
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Mode != "dissolve" {
		t.Errorf("Mode = %q, want %q", p.Mode, "dissolve")
	}
	if p.Limit != 10 {
		t.Errorf("Limit = %d, want 10", p.Limit)
	}
	if p.Since != 100 {
		t.Errorf("Since = %d, want 100", p.Since)
	}
	if p.Weight != 0.5 {
		t.Errorf("Weight = %f, want 0.5", p.Weight)
	}
	if p.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", p.Debounce)
	}
	if !p.All {
		t.Error("All = false, want true")
	}
	if len(p.Kinds) != 2 || p.Kinds[0] != "note" || p.Kinds[1] != "task" {
		t.Errorf("Kinds = %v, want [note task]", p.Kinds)
	}
}

func TestBindFlags_DefaultsOverriddenByCLI(t *testing.T) {
	type params struct {
		Mode  string `flag:"mode" desc:"delete mode" default:"dissolve"`
		Limit int    `flag:"limit" desc:"maximum results" default:"10"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--mode", "all", "--limit", "50"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Mode != "all" {
		t.Errorf("Mode = %q, want %q", p.Mode, "all")
	}
	if p.Limit != 50 {
		t.Errorf("Limit = %d, want 50", p.Limit)
	}
}

// TestParamsBinder implements FlagBinder for testing. Named and embedded
// fields use this to verify that BindFlags calls AddFlags instead of
// reflecting tags. Exported so that reflect can call Interface() on it
// when embedded.
type TestParamsBinder struct {
	Parent string
	Depth  int
}

func (b *TestParamsBinder) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&b.Parent, "parent", "", "parent folder")
	flagSet.IntVar(&b.Depth, "depth", 0, "traversal depth")
}

func TestBindFlags_NamedFlagBinder(t *testing.T) {
	type params struct {
		Binder TestParamsBinder
		Name   string `flag:"name" desc:"display name"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--parent", "root", "--depth", "3", "--name", "Projects"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Binder.Parent != "root" {
		t.Errorf("Binder.Parent = %q, want %q", p.Binder.Parent, "root")
	}
	if p.Binder.Depth != 3 {
		t.Errorf("Binder.Depth = %d, want 3", p.Binder.Depth)
	}
	if p.Name != "Projects" {
		t.Errorf("Name = %q, want %q", p.Name, "Projects")
	}
}

func TestBindFlags_EmbeddedFlagBinder(t *testing.T) {
	type params struct {
		TestParamsBinder
		Name string `flag:"name" desc:"display name"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--parent", "root", "--name", "Projects"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Parent != "root" {
		t.Errorf("Parent = %q, want %q", p.Parent, "root")
	}
	if p.Name != "Projects" {
		t.Errorf("Name = %q, want %q", p.Name, "Projects")
	}
}

func TestBindFlags_EmbeddedStructRecursion(t *testing.T) {
	type paging struct {
		Limit  int `flag:"limit" desc:"maximum results"`
		Offset int `flag:"offset" desc:"results to skip"`
	}
	type params struct {
		paging
		All bool `flag:"all" desc:"include finished"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--limit", "20", "--offset", "5", "--all"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Limit != 20 {
		t.Errorf("Limit = %d, want 20", p.Limit)
	}
	if p.Offset != 5 {
		t.Errorf("Offset = %d, want 5", p.Offset)
	}
	if !p.All {
		t.Error("All = false, want true")
	}
}

func TestBindFlags_Shorthand(t *testing.T) {
	type params struct {
		Tag string `flag:"tag,t" desc:"tag filter"`
		Raw bool   `flag:"raw,r" desc:"raw query syntax"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"-t", "work", "-r"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Tag != "work" {
		t.Errorf("Tag = %q, want %q", p.Tag, "work")
	}
	if !p.Raw {
		t.Error("Raw = false, want true")
	}
}

func TestBindFlags_ErrorNotPointer(t *testing.T) {
	type params struct {
		Tag string `flag:"tag"`
	}
	var p params
	err := BindFlags(p, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil {
		t.Fatal("expected error for non-pointer, got nil")
	}
	if want := "params must be a pointer to a struct"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want substring %q", err.Error(), want)
	}
}

func TestBindFlags_ErrorNotStruct(t *testing.T) {
	s := "not a struct"
	err := BindFlags(&s, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil {
		t.Fatal("expected error for non-struct, got nil")
	}
}

func TestBindFlags_ErrorBadDefault(t *testing.T) {
	type params struct {
		Limit int `flag:"limit" default:"not_a_number"`
	}
	var p params
	err := BindFlags(&p, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil {
		t.Fatal("expected error for bad default, got nil")
	}
}

func TestFlagsFromParams(t *testing.T) {
	type params struct {
		Mode string `flag:"mode" desc:"delete mode" default:"dissolve"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)

	if err := flagSet.Parse([]string{"--mode", "all"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Mode != "all" {
		t.Errorf("Mode = %q, want %q", p.Mode, "all")
	}
}

func TestFlagsFromParams_DefaultUsedWhenNotParsed(t *testing.T) {
	type params struct {
		Mode string `flag:"mode" desc:"delete mode" default:"dissolve"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)

	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Mode != "dissolve" {
		t.Errorf("Mode = %q, want %q", p.Mode, "dissolve")
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil input, got none")
		}
	}()
	FlagsFromParams("test", nil)
}

func TestBindFlags_FieldsWithoutTagSkipped(t *testing.T) {
	type params struct {
		Tagged   string `flag:"tagged" desc:"has tag"`
		NoTag    string
		JSONOnly string `json:"json_only"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	// Only --tagged should be registered.
	if flagSet.Lookup("tagged") == nil {
		t.Error("expected --tagged to be registered")
	}
	if flagSet.Lookup("no-tag") != nil {
		t.Error("expected no --no-tag flag")
	}
	if flagSet.Lookup("json_only") != nil {
		t.Error("expected no --json_only flag")
	}
}

func TestBindFlags_PositionalArgsRemain(t *testing.T) {
	type params struct {
		Kind string `flag:"kind" desc:"atom kind" default:"note"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	if err := flagSet.Parse([]string{"--kind", "task", "quarterly report"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	remaining := flagSet.Args()
	if len(remaining) != 1 || remaining[0] != "quarterly report" {
		t.Errorf("remaining args = %v, want [quarterly report]", remaining)
	}
	if p.Kind != "task" {
		t.Errorf("Kind = %q, want %q", p.Kind, "task")
	}
}
