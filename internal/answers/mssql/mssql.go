// Package mssql implements a SQL Server-backed answer store using
// go-mssqldb, for studies whose response warehouse runs on MSSQL.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"surveygen/internal/answers"
)

func init() {
	answers.Register("mssql", func(ctx context.Context, cfg answers.Config) (answers.Lookup, error) {
		return New(ctx, cfg)
	})
}

// Store is an MSSQL-backed answers.Lookup.
type Store struct {
	db    *sql.DB
	query string
}

// New opens a SQL Server connection for the given DSN.
func New(ctx context.Context, cfg answers.Config) (*Store, error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = @p1",
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
		return "", false, fmt.Errorf("mssql: get %q: %w", questionID, err)
	}
	return value, true, nil
}

// Close implements answers.Lookup.
func (s *Store) Close() error { return s.db.Close() }
