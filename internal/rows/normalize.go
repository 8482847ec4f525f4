package rows

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names of the survey layout table. Per-language columns are derived
// by appending the language code to the title/choices prefixes.
const (
	ColSession     = "session"
	ColPage        = "page"
	ColID          = "id"
	ColType        = "type"
	ColRequired    = "required"
	ColEndSurveyIf = "endSurveyIfResponse"
	ColVisibleIf   = "onlyVisibleIf"

	TitlePrefix   = "title_"
	ChoicesPrefix = "choices_"
)

// TitleColumn returns the title column name for a language.
func TitleColumn(lang string) string { return TitlePrefix + lang }

// ChoicesColumn returns the choices column name for a language.
func ChoicesColumn(lang string) string { return ChoicesPrefix + lang }

// syntheticIDBase is the first value used when filling rows that carry no
// explicit id. Generated ids count upward from here in row order.
const syntheticIDBase = 1000

// Normalize converts raw header-keyed records into typed Rows.
//
// Contract:
//   - Records with an empty page or type cell are dropped; they are layout
//     scaffolding (spacer rows, comments) and never reach the compiler.
//   - session, type and per-language titles/choices are carried as strings;
//     page is parsed as an integer; required is parsed as a boolean.
//   - Rows without an id receive a synthetic id ("1000", "1001", ... in row
//     order). Candidates that collide with an explicit id anywhere in the
//     table are skipped, so generated ids are collision-free by construction.
//   - Only the fixed attribute set survives; unknown columns are ignored.
//
// A *SchemaError is returned when a required column is absent from the
// header. An invalid page cell on a surviving row is also fatal: the layout
// is hand-maintained and a garbled page number means the sheet is broken.
func Normalize(columns []string, records []map[string]string, languages []string) ([]Row, error) {
	if err := checkColumns(columns, languages); err != nil {
		return nil, err
	}

	// Explicit ids are collected up front so synthetic candidates can be
	// checked against the whole table, not just the rows seen so far.
	explicit := make(map[string]struct{})
	for _, rec := range records {
		if id := strings.TrimSpace(rec[ColID]); id != "" {
			explicit[id] = struct{}{}
		}
	}

	out := make([]Row, 0, len(records))
	next := syntheticIDBase
	for i, rec := range records {
		pageCell := strings.TrimSpace(rec[ColPage])
		typeCell := strings.TrimSpace(rec[ColType])
		if pageCell == "" || typeCell == "" {
			continue
		}

		page, err := strconv.Atoi(pageCell)
		if err != nil {
			return nil, fmt.Errorf("rows: record %d: invalid page %q: %w", i+1, pageCell, err)
		}

		id := strings.TrimSpace(rec[ColID])
		if id == "" {
			for {
				candidate := strconv.Itoa(next)
				next++
				if _, taken := explicit[candidate]; !taken {
					id = candidate
					break
				}
			}
		}

		r := Row{
			Session:     strings.TrimSpace(rec[ColSession]),
			Page:        page,
			ID:          id,
			Type:        typeCell,
			Required:    parseBool(rec[ColRequired]),
			EndSurveyIf: strings.TrimSpace(rec[ColEndSurveyIf]),
			VisibleIf:   strings.TrimSpace(rec[ColVisibleIf]),
			Title:       make(map[string]string, len(languages)),
			Choices:     make(map[string]string, len(languages)),
		}
		for _, lang := range languages {
			r.Title[lang] = strings.TrimSpace(rec[TitleColumn(lang)])
			r.Choices[lang] = strings.TrimSpace(rec[ChoicesColumn(lang)])
		}
		out = append(out, r)
	}
	return out, nil
}

// checkColumns verifies the fixed column set plus the per-language title and
// choices columns. ColID, ColEndSurveyIf and ColVisibleIf are optional.
func checkColumns(columns []string, languages []string) error {
	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[strings.TrimSpace(c)] = struct{}{}
	}

	required := []string{ColSession, ColPage, ColType, ColRequired}
	for _, lang := range languages {
		required = append(required, TitleColumn(lang), ChoicesColumn(lang))
	}
	for _, c := range required {
		if _, ok := have[c]; !ok {
			return &SchemaError{Column: c}
		}
	}
	return nil
}

// parseBool interprets the required flag. The layout uses a loose vocabulary
// (1/0, true/false, yes/no, x for "checked"); empty cells mean false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "y", "x":
		return true
	default:
		return false
	}
}
