// Package answers resolves a question id to the value a respondent chose in
// a prior session. The dropdown generator uses it to pre-select the item a
// returning respondent used last time.
//
// Concrete stores live in subpackages (sqlite, postgres, mssql) and register
// themselves with the factory here; importing answers/all (typically as a
// blank import in the wiring layer) makes every built-in kind available.
// The rest of the compiler depends only on the Lookup interface.
package answers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Lookup reads prior answers. ok is false when the respondent has no stored
// answer for the question.
type Lookup interface {
	Get(ctx context.Context, questionID string) (value string, ok bool, err error)
	Close() error
}

// Config selects and configures an answer store.
type Config struct {
	// Kind selects the backend: "sqlite", "postgres" or "mssql". Empty means
	// no store is configured and pre-selection is disabled.
	Kind string `json:"kind"`

	// DSN is the backend connection string.
	DSN string `json:"dsn"`

	// Table is the answers table name. Defaults to "answers".
	Table string `json:"table"`

	// KeyColumn holds the question id. Defaults to "question_id".
	KeyColumn string `json:"key_column"`

	// ValueColumn holds the stored answer. Defaults to "value".
	ValueColumn string `json:"value_column"`
}

// withDefaults fills the optional column/table names.
func (c Config) withDefaults() Config {
	if c.Table == "" {
		c.Table = "answers"
	}
	if c.KeyColumn == "" {
		c.KeyColumn = "question_id"
	}
	if c.ValueColumn == "" {
		c.ValueColumn = "value"
	}
	return c
}

// Factory opens a concrete store from its configuration.
type Factory func(ctx context.Context, cfg Config) (Lookup, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under the given kind. Backends call it
// from init; registering the same kind twice panics (it means two packages
// claim the same name, which is a programming error).
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("answers: backend %q registered twice", kind))
	}
	factories[kind] = f
}

// Open constructs the store selected by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Lookup, error) {
	kind := strings.TrimSpace(cfg.Kind)
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("answers: unknown backend %q (available: %s)", kind, strings.Join(kinds(), ", "))
	}
	return f(ctx, cfg.withDefaults())
}

// kinds lists the registered backend names, sorted.
func kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
