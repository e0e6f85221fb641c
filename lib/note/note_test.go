// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/clock"
	"github.com/lazynote-foundation/lazynote/lib/storage"
)

var testEpoch = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) (*Store, *atom.Store, *clock.FakeClock) {
	t.Helper()

	db, err := storage.Open(context.Background(), storage.Config{
		Path: filepath.Join(t.TempDir(), "lazynote.db"),
	})
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	fake := clock.Fake(testEpoch)
	atoms, err := atom.NewStore(atom.StoreConfig{Pool: db.Pool(), Clock: fake})
	if err != nil {
		t.Fatalf("atom.NewStore: %v", err)
	}
	store, err := NewStore(StoreConfig{Pool: db.Pool(), Atoms: atoms, Clock: fake})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, atoms, fake
}

func TestCreateDerivesPreview(t *testing.T) {
	store, _, _ := openTestStore(t)

	record, err := store.Create(context.Background(), "# Title\n\n![cover](one.png)\n\nBody text here.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if record.PreviewImage != "one.png" {
		t.Errorf("PreviewImage = %q, want %q", record.PreviewImage, "one.png")
	}
	if !strings.Contains(record.PreviewText, "Title") || !strings.Contains(record.PreviewText, "Body text here.") {
		t.Errorf("PreviewText = %q, want title and body", record.PreviewText)
	}
	if record.UpdatedAt != testEpoch.UnixMilli() {
		t.Errorf("UpdatedAt = %d, want %d", record.UpdatedAt, testEpoch.UnixMilli())
	}
}

func TestUpdateRecomputesPreview(t *testing.T) {
	store, _, fake := openTestStore(t)
	ctx := context.Background()

	record, err := store.Create(ctx, "old text")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fake.Advance(time.Minute)
	updated, err := store.Update(ctx, record.AtomID, "new text ![img](pic.jpg)")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PreviewImage != "pic.jpg" {
		t.Errorf("PreviewImage = %q, want %q", updated.PreviewImage, "pic.jpg")
	}
	if updated.UpdatedAt != testEpoch.Add(time.Minute).UnixMilli() {
		t.Errorf("UpdatedAt = %d, want advanced stamp", updated.UpdatedAt)
	}
}

func TestUpdateRejectsNonNotes(t *testing.T) {
	store, atoms, _ := openTestStore(t)
	ctx := context.Background()

	task := atom.NewTask("a task", atom.TaskTodo)
	if err := atoms.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := store.Update(ctx, task.ID, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update task err = %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, uuid.New(), "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestGetExcludesTombstonedNotes(t *testing.T) {
	store, atoms, _ := openTestStore(t)
	ctx := context.Background()

	record, err := store.Create(ctx, "doomed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := atoms.SoftDelete(ctx, record.AtomID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := store.Get(ctx, record.AtomID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
}

func TestSetTagsNormalizesAndReplaces(t *testing.T) {
	store, _, _ := openTestStore(t)
	ctx := context.Background()

	record, err := store.Create(ctx, "tagged")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetTags(ctx, record.AtomID, []string{" Work ", "URGENT", "work", ""}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	got, err := store.Get(ctx, record.AtomID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"urgent", "work"}) {
		t.Errorf("Tags = %v, want [urgent work]", got.Tags)
	}

	// A second SetTags fully replaces the previous set.
	if err := store.SetTags(ctx, record.AtomID, []string{"archive"}); err != nil {
		t.Fatalf("SetTags replace: %v", err)
	}
	got, err = store.Get(ctx, record.AtomID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"archive"}) {
		t.Errorf("Tags = %v, want [archive]", got.Tags)
	}

	if err := store.SetTags(ctx, uuid.New(), []string{"x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetTags missing err = %v, want ErrNotFound", err)
	}
}

func TestListTags(t *testing.T) {
	store, _, _ := openTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "one")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, "two")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.SetTags(ctx, first.AtomID, []string{"beta"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	if err := store.SetTags(ctx, second.AtomID, []string{"alpha", "beta"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	tags, err := store.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"alpha", "beta"}) {
		t.Errorf("ListTags = %v, want [alpha beta]", tags)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	store, _, fake := openTestStore(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, content := range []string{"first", "second", "third"} {
		record, err := store.Create(ctx, content)
		if err != nil {
			t.Fatalf("Create %s: %v", content, err)
		}
		ids = append(ids, record.AtomID)
		fake.Advance(time.Minute)
	}
	if err := store.SetTags(ctx, ids[0], []string{"keep"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	all, err := store.List(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// SetTags stamped ids[0] last, so it leads the recency order.
	if all[0].AtomID != ids[0] {
		t.Errorf("most recent = %s, want %s", all[0].AtomID, ids[0])
	}

	tagged, err := store.List(ctx, ListQuery{Tag: "KEEP"})
	if err != nil {
		t.Fatalf("List tagged: %v", err)
	}
	if len(tagged) != 1 || tagged[0].AtomID != ids[0] {
		t.Errorf("tag filter returned %d records", len(tagged))
	}

	limited, err := store.List(ctx, ListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestNormalizeListLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-3, DefaultListLimit},
		{7, 7},
		{MaxListLimit, MaxListLimit},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, c := range cases {
		if got := normalizeListLimit(c.in); got != c.want {
			t.Errorf("normalizeListLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
