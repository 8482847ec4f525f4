package rows

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Selector identifies the survey session being compiled: the first contact
// (1), a numbered follow-up (>1), or the final session ("last").
type Selector struct {
	Number int  // 1-based session number; ignored when Last is set
	Last   bool // final session
}

// ParseSelector parses a session selector from its textual form: a positive
// integer or the literal "last".
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "last") {
		return Selector{Last: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Selector{}, fmt.Errorf("rows: invalid session selector %q (want a positive integer or \"last\")", s)
	}
	return Selector{Number: n}, nil
}

// String returns the selector in the same textual form ParseSelector accepts.
func (s Selector) String() string {
	if s.Last {
		return "last"
	}
	return strconv.Itoa(s.Number)
}

// Tags returns the set of session tags visible under this selector:
//
//	1      -> {"1", "all"}
//	n > 1  -> {">1", "all"}
//	last   -> {">1", "all", "last"}
func (s Selector) Tags() map[string]struct{} {
	if s.Last {
		return map[string]struct{}{">1": {}, "all": {}, "last": {}}
	}
	if s.Number > 1 {
		return map[string]struct{}{">1": {}, "all": {}}
	}
	return map[string]struct{}{"1": {}, "all": {}}
}

// FilterSession selects the rows visible under the given selector, preserving
// input order, and enforces the unique-id invariant on the result.
//
// Multi-row questions keep their rows adjacent in the layout, so consecutive
// rows sharing an id form one question. An id is duplicated when it shows up
// again after its run has ended; every offending id is listed in the returned
// *DuplicateIDError.
func FilterSession(in []Row, sel Selector) ([]Row, error) {
	tags := sel.Tags()

	out := make([]Row, 0, len(in))
	for _, r := range in {
		if _, ok := tags[r.Session]; ok {
			out = append(out, r)
		}
	}

	dupes := map[string]struct{}{}
	seen := map[string]struct{}{}
	last := ""
	for _, r := range out {
		if r.ID == last {
			continue // continuation of a multi-row question
		}
		if _, ok := seen[r.ID]; ok {
			dupes[r.ID] = struct{}{}
		}
		seen[r.ID] = struct{}{}
		last = r.ID
	}
	if len(dupes) > 0 {
		ids := make([]string, 0, len(dupes))
		for id := range dupes {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return nil, &DuplicateIDError{IDs: ids}
	}
	return out, nil
}
