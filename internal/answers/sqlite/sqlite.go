// Package sqlite implements a SQLite-backed answer store using database/sql.
// A local SQLite file is the default deployment for small studies where the
// response exports live next to the compiler.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// SQLite driver; replace with your preferred driver if desired.
	_ "modernc.org/sqlite" // alternative: github.com/mattn/go-sqlite3

	"surveygen/internal/answers"
)

func init() {
	answers.Register("sqlite", func(ctx context.Context, cfg answers.Config) (answers.Lookup, error) {
		return New(ctx, cfg)
	})
}

// Store is a SQLite-backed answers.Lookup.
type Store struct {
	db    *sql.DB
	query string
}

// New opens a SQLite connection using the provided DSN, for example:
//
//	"file:responses.db?cache=shared&_fk=1"
//	"responses.db"
func New(ctx context.Context, cfg answers.Config) (*Store, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Fail fast on invalid DSNs.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		cfg.ValueColumn, cfg.Table, cfg.KeyColumn,
	)
	return &Store{db: db, query: query}, nil
}

// Get implements answers.Lookup.
func (s *Store) Get(ctx context.Context, questionID string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.query, questionID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite: get %q: %w", questionID, err)
	}
	return value, true, nil
}

// Close implements answers.Lookup.
func (s *Store) Close() error { return s.db.Close() }
