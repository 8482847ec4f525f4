// Package postgres implements a Postgres-backed answer store using pgx v5.
// Used when responses are collected into a shared study database.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"surveygen/internal/answers"
)

func init() {
	answers.Register("postgres", func(ctx context.Context, cfg answers.Config) (answers.Lookup, error) {
		return New(ctx, cfg)
	})
}

// Store is a Postgres-backed answers.Lookup.
type Store struct {
	pool  *pgxpool.Pool
	query string
}

// New opens a pgx pool for the given DSN.
func New(ctx context.Context, cfg answers.Config) (*Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		cfg.ValueColumn, cfg.Table, cfg.KeyColumn,
	)
	return &Store{pool: pool, query: query}, nil
}

// Get implements answers.Lookup.
func (s *Store) Get(ctx context.Context, questionID string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, s.query, questionID).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres: get %q: %w", questionID, err)
	}
	return value, true, nil
}

// Close implements answers.Lookup.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
