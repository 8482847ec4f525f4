package rows

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    Selector
		wantErr bool
	}{
		{in: "1", want: Selector{Number: 1}},
		{in: " 3 ", want: Selector{Number: 3}},
		{in: "last", want: Selector{Last: true}},
		{in: "LAST", want: Selector{Last: true}},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "first", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseSelector(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSelector(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSelector(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSelector(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

/*
TestFilterSession_Tags covers which session tags each selector admits:

	1    -> rows tagged "1" or "all"
	2    -> rows tagged ">1" or "all"
	last -> rows tagged ">1", "all" or "last"
*/
func TestFilterSession_Tags(t *testing.T) {
	table := []Row{
		{Session: "all", ID: "a"},
		{Session: "1", ID: "b"},
		{Session: ">1", ID: "c"},
		{Session: "last", ID: "d"},
	}

	tests := []struct {
		name    string
		sel     Selector
		wantIDs []string
	}{
		{name: "first_session", sel: Selector{Number: 1}, wantIDs: []string{"a", "b"}},
		{name: "follow_up", sel: Selector{Number: 2}, wantIDs: []string{"a", "c"}},
		{name: "last", sel: Selector{Last: true}, wantIDs: []string{"a", "c", "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FilterSession(table, tc.sel)
			if err != nil {
				t.Fatalf("FilterSession: %v", err)
			}
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			if !reflect.DeepEqual(ids, tc.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tc.wantIDs)
			}
		})
	}
}

/*
TestFilterSession_DuplicateIDs verifies the unique-id invariant: adjacent rows
sharing an id are one multi-row question and legal; the same id reappearing
after its run ended is a duplicate and fatal.
*/
func TestFilterSession_DuplicateIDs(t *testing.T) {
	t.Run("adjacent_run_ok", func(t *testing.T) {
		table := []Row{
			{Session: "all", ID: "q1"},
			{Session: "all", ID: "q1"},
			{Session: "all", ID: "q2"},
		}
		if _, err := FilterSession(table, Selector{Number: 1}); err != nil {
			t.Fatalf("FilterSession: %v", err)
		}
	})

	t.Run("reappearance_fatal", func(t *testing.T) {
		table := []Row{
			{Session: "all", ID: "q1"},
			{Session: "all", ID: "q2"},
			{Session: "all", ID: "q1"},
			{Session: "all", ID: "q3"},
			{Session: "all", ID: "q2"},
		}
		_, err := FilterSession(table, Selector{Number: 1})
		var dupErr *DuplicateIDError
		if !errors.As(err, &dupErr) {
			t.Fatalf("err = %v, want *DuplicateIDError", err)
		}
		if want := []string{"q1", "q2"}; !reflect.DeepEqual(dupErr.IDs, want) {
			t.Errorf("duplicate ids = %v, want %v", dupErr.IDs, want)
		}
	})

	t.Run("duplicate_outside_session_ignored", func(t *testing.T) {
		// The same id in rows of different sessions never meets in one
		// filtered view, so it is not a duplicate.
		table := []Row{
			{Session: "1", ID: "q1"},
			{Session: ">1", ID: "q1"},
		}
		if _, err := FilterSession(table, Selector{Number: 1}); err != nil {
			t.Fatalf("FilterSession: %v", err)
		}
	})
}
