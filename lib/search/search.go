// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package search provides full-text search over atom content via the
// atoms_fts FTS5 index.
//
// By default the user's text is split into terms, each term quoted,
// and the terms AND-joined, so type-as-you-search input can never
// trip over FTS5 operator syntax. Raw mode passes the text through as
// an FTS5 expression and reports syntax errors as [ErrInvalidQuery].
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lazynote-foundation/lazynote/lib/atom"
	"github.com/lazynote-foundation/lazynote/lib/sqlitepool"
)

// ErrInvalidQuery means a raw-mode query was rejected by the FTS5
// expression parser.
var ErrInvalidQuery = errors.New("search: invalid full-text query")

// DefaultLimit caps results when Query.Limit is zero.
const DefaultLimit = 20

// Query describes one full-text search.
type Query struct {
	// Text is the user's query. Blank text returns no hits.
	Text string

	// Kind restricts hits to one atom kind. Empty means all kinds.
	Kind atom.Kind

	// Limit caps the number of hits. Zero means DefaultLimit;
	// negative returns no hits.
	Limit int

	// RawSyntax passes Text directly as an FTS5 expression instead
	// of quoting it term by term.
	RawSyntax bool
}

// Hit is one search result.
type Hit struct {
	AtomID uuid.UUID
	Kind   atom.Kind

	// Snippet is the matched region with [ ] marking the match.
	Snippet string
}

// StoreConfig holds the dependencies for a search Store.
type StoreConfig struct {
	// Pool is the database connection pool. Required.
	Pool *sqlitepool.Pool

	// Logger receives operational messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Store runs full-text queries. Safe for concurrent use.
type Store struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger
}

// NewStore validates the configuration and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Pool == nil {
		return nil, fmt.Errorf("search store: Pool is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{pool: cfg.Pool, logger: logger}, nil
}

// Search returns ranked hits for the query. Only active atoms are
// searched. Ordering is bm25 rank, then recency, then atom UUID, so
// equal-rank results are stable.
func (s *Store) Search(ctx context.Context, q Query) ([]Hit, error) {
	matchExpr, ok := buildMatchExpression(q)
	if !ok {
		return nil, nil
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return nil, nil
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}
	defer s.pool.Put(conn)

	var sql strings.Builder
	sql.WriteString(`
		SELECT
			atoms.uuid,
			atoms.type,
			snippet(atoms_fts, 0, '[', ']', ' ... ', 10)
		FROM atoms_fts
		JOIN atoms ON atoms.rowid = atoms_fts.rowid
		WHERE atoms_fts MATCH ?
		  AND atoms.is_deleted = 0`)
	args := []any{matchExpr}

	if q.Kind != "" {
		sql.WriteString(" AND atoms.type = ?")
		args = append(args, string(q.Kind))
	}
	sql.WriteString(" ORDER BY bm25(atoms_fts), atoms.updated_at DESC, atoms.uuid ASC LIMIT ?")
	args = append(args, limit)

	var hits []Hit
	err = sqlitex.Execute(conn, sql.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			hit, err := scanHit(stmt)
			if err != nil {
				return err
			}
			hits = append(hits, hit)
			return nil
		},
	})
	if err != nil {
		if isMatchSyntaxError(err) {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidQuery, matchExpr, err)
		}
		return nil, fmt.Errorf("search store: query %q: %w", matchExpr, err)
	}
	return hits, nil
}

// buildMatchExpression turns the query text into an FTS5 MATCH
// expression. ok is false for blank input.
func buildMatchExpression(q Query) (string, bool) {
	trimmed := strings.TrimSpace(q.Text)
	if trimmed == "" {
		return "", false
	}
	if q.RawSyntax {
		return trimmed, true
	}

	terms := strings.Fields(trimmed)
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " AND "), true
}

// isMatchSyntaxError distinguishes a bad FTS5 expression from real
// storage failures. SQLite reports these as generic errors, so the
// message text is the only signal.
func isMatchSyntaxError(err error) bool {
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "fts5") && strings.Contains(message, "syntax") {
		return true
	}
	return strings.Contains(message, "malformed match expression") ||
		strings.Contains(message, "unterminated string")
}

func scanHit(stmt *sqlite.Stmt) (Hit, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return Hit{}, fmt.Errorf("invalid atoms.uuid %q: %w", stmt.ColumnText(0), err)
	}
	kind, ok := atom.ParseKind(stmt.ColumnText(1))
	if !ok {
		return Hit{}, fmt.Errorf("invalid atoms.type %q", stmt.ColumnText(1))
	}
	return Hit{AtomID: id, Kind: kind, Snippet: stmt.ColumnText(2)}, nil
}
