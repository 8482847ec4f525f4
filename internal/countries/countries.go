// Package countries loads the static country/region reference table consumed
// by country-selector questions. The table is read once and kept in memory;
// consumers only ever read it.
package countries

import (
	"encoding/json"
	"fmt"
	"io"

	"surveygen/internal/question"
)

// Table is an ordered, read-only country reference table.
type Table struct {
	entries []question.Country
}

// All returns the table records in source order. The returned slice is shared
// and must not be modified.
func (t *Table) All() []question.Country { return t.entries }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.entries) }

// Load decodes a country table from its JSON form: an array of objects with
// name, region and a translations mapping keyed by language code.
func Load(r io.Reader) (*Table, error) {
	var entries []question.Country
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("countries: decode: %w", err)
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("countries: entry %d has no name", i)
		}
	}
	return &Table{entries: entries}, nil
}

// New wraps an in-memory record list, mainly for tests.
func New(entries []question.Country) *Table {
	return &Table{entries: entries}
}
