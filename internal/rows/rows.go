// Package rows defines the typed intermediate representation of the survey
// layout table and the operations that shape it before question generation:
// normalization of raw tabular records, session filtering, and the taste-block
// randomization step.
//
// Design goals:
//   - One Row per table row, fully typed; downstream code never touches the
//     raw header-keyed records again.
//   - Rows are treated as immutable once produced. Operations that reorder or
//     amend rows (see RandomizeBlocks) return fresh slices and clone any row
//     they change instead of mutating shared storage.
//   - Failures are explicit and typed so callers can distinguish layout bugs
//     (SchemaError, DuplicateIDError) from ordinary data issues.
package rows

import (
	"fmt"
	"strings"
)

// Row is one normalized row of the survey layout table.
//
// Title and Choices are keyed by language code. Choices holds the raw
// semicolon-delimited cell content; splitting and cross-language validation
// happen later, in the extract package.
type Row struct {
	Session     string            // "1", ">1", "all" or "last"
	Page        int               // 1-based page number from the layout
	ID          string            // unique within a filtered session
	Type        string            // question type tag, dispatched in question
	Required    bool
	EndSurveyIf string            // optional end-of-survey condition
	VisibleIf   string            // optional visibility expression
	Title       map[string]string // language -> title cell
	Choices     map[string]string // language -> raw choices cell
}

// Clone returns a deep copy of the row. The maps are copied so the clone can
// be amended without touching the original.
func (r Row) Clone() Row {
	out := r
	out.Title = make(map[string]string, len(r.Title))
	for k, v := range r.Title {
		out.Title[k] = v
	}
	out.Choices = make(map[string]string, len(r.Choices))
	for k, v := range r.Choices {
		out.Choices[k] = v
	}
	return out
}

// SchemaError reports a raw table that is missing a required column. The
// layout schema is closed; compiling an incomplete table would silently
// produce wrong documents, so this is fatal.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("rows: required column %q is missing from the layout table", e.Column)
}

// DuplicateIDError reports question ids that appear more than once within a
// filtered session. Ids key answers, triggers and visibility expressions, so
// duplicates are fatal.
type DuplicateIDError struct {
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("rows: duplicated question ids in filtered session: %s", strings.Join(e.IDs, ", "))
}
