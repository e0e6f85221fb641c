// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"strings"
	"testing"
)

func TestPreviewExtractsFirstImage(t *testing.T) {
	preview := DerivePreview("x ![a](one.png) y ![b](two.png)")
	if preview.Image != "one.png" {
		t.Errorf("Image = %q, want %q", preview.Image, "one.png")
	}
	if preview.Text != "x y" {
		t.Errorf("Text = %q, want %q (alt text excluded)", preview.Text, "x y")
	}
}

func TestPreviewStripsMarkdownStructure(t *testing.T) {
	source := "# title heading\n\n> quote line\n\nParagraph with [ref](https://example.com/path?q=1) and **bold**."
	preview := DerivePreview(source)

	for _, want := range []string{"title heading", "quote line", "ref", "bold"} {
		if !strings.Contains(preview.Text, want) {
			t.Errorf("Text %q missing %q", preview.Text, want)
		}
	}
	for _, forbidden := range []string{"#", "*", "](", ">"} {
		if strings.Contains(preview.Text, forbidden) {
			t.Errorf("Text %q contains markdown syntax %q", preview.Text, forbidden)
		}
	}
}

func TestPreviewCapsTextLength(t *testing.T) {
	preview := DerivePreview(strings.Repeat("word ", 100))
	if got := len([]rune(preview.Text)); got > previewTextLimit {
		t.Errorf("len(Text) = %d, want <= %d", got, previewTextLimit)
	}
}

func TestPreviewEmptyForEmptyContent(t *testing.T) {
	preview := DerivePreview("")
	if preview.Text != "" || preview.Image != "" {
		t.Errorf("preview = %+v, want empty", preview)
	}
}

func TestPreviewHandlesUnicode(t *testing.T) {
	source := "# 見出し\n\n本文です。" + strings.Repeat("あ", 200)
	preview := DerivePreview(source)
	if !strings.Contains(preview.Text, "見出し") {
		t.Errorf("Text %q missing heading", preview.Text)
	}
	if got := len([]rune(preview.Text)); got > previewTextLimit {
		t.Errorf("len(Text) = %d runes, want <= %d", got, previewTextLimit)
	}
}
