// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// previewTextLimit caps PreviewText at this many runes.
const previewTextLimit = 100

// previewParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	previewParserInstance goldmark.Markdown
	previewParserOnce     sync.Once
)

func getPreviewParser() goldmark.Markdown {
	previewParserOnce.Do(func() {
		previewParserInstance = goldmark.New()
	})
	return previewParserInstance
}

// Preview is the projection of markdown content shown in note lists.
type Preview struct {
	// Text is the plain text of the document with markdown structure
	// stripped, whitespace collapsed, and length capped. Empty when
	// the document contains no prose.
	Text string

	// Image is the destination of the first image in the document,
	// empty when there is none.
	Image string
}

// DerivePreview parses markdown content and extracts the list
// projections: the first image destination and the leading plain
// text.
func DerivePreview(content string) Preview {
	if content == "" {
		return Preview{}
	}

	source := []byte(content)
	document := getPreviewParser().Parser().Parse(text.NewReader(source))

	var (
		image string
		parts []string
	)
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := node.(type) {
		case *ast.Image:
			if image == "" {
				if dest := strings.TrimSpace(string(typed.Destination)); dest != "" {
					image = dest
				}
			}
			// Alt text is not prose.
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if value := strings.TrimSpace(string(typed.Segment.Value(source))); value != "" {
				parts = append(parts, value)
			}
		}
		return ast.WalkContinue, nil
	})

	joined := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if runes := []rune(joined); len(runes) > previewTextLimit {
		joined = string(runes[:previewTextLimit])
	}
	return Preview{Text: joined, Image: image}
}
