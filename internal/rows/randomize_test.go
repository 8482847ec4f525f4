package rows

import (
	"reflect"
	"strings"
	"testing"
)

// tasteTable builds a layout fragment with four 3-row taste blocks on pages
// 10..13 plus a note row and surrounding fixed rows.
func tasteTable() []Row {
	mk := func(id string, page int) Row {
		return Row{
			Session: "all", Page: page, ID: id, Type: "slider",
			Title:   map[string]string{"en": "title " + id},
			Choices: map[string]string{"en": "low; high"},
		}
	}
	rows := []Row{
		{Session: "all", Page: 1, ID: "intro", Type: "header", Title: map[string]string{"en": "hi"}},
		{Session: "all", Page: 1, ID: "how_to_taste", Type: "info", Title: map[string]string{"en": "Taste carefully."}},
	}
	for i, taste := range []string{"sweet", "sour", "salty", "bitter"} {
		page := 10 + i
		rows = append(rows,
			mk(taste+"_img", page),
			mk(taste+"_intensity", page),
			mk("taste_qual_"+taste, page),
		)
	}
	rows = append(rows, Row{Session: "all", Page: 20, ID: "outro", Type: "header", Title: map[string]string{"en": "bye"}})
	return rows
}

var tasteCfg = ShuffleConfig{
	Blocks: []string{"sweet", "sour", "salty", "bitter"},
	NoteID: "how_to_taste",
}

/*
TestRandomizeBlocks_Invariants checks the structural guarantees of a shuffle:

  - Non-block rows keep their positions and pages.
  - Every block stays together: its 3 rows are adjacent, in internal order,
    and share one page.
  - Block pages form the consecutive run 10..13 in presentation order.
  - The tasting note is appended to the second row of the first-shown block,
    and only there.
*/
func TestRandomizeBlocks_Invariants(t *testing.T) {
	in := tasteTable()
	out, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, SeededSource("respondent-1"))
	if err != nil {
		t.Fatalf("RandomizeBlocks: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("row count changed: got %d, want %d", len(out), len(in))
	}

	// Fixed rows untouched.
	for _, i := range []int{0, 1, len(in) - 1} {
		if !reflect.DeepEqual(out[i], in[i]) {
			t.Errorf("non-block row %d changed: %+v", i, out[i])
		}
	}

	// Blocks occupy slots 2..13 in groups of three.
	notes := 0
	for g := 0; g < 4; g++ {
		rowsOf := out[2+3*g : 2+3*g+3]

		var taste string
		for _, kw := range tasteCfg.Blocks {
			if strings.Contains(rowsOf[0].ID, kw) {
				taste = kw
				break
			}
		}
		if taste == "" {
			t.Fatalf("group %d starts with non-block row %q", g, rowsOf[0].ID)
		}

		wantIDs := []string{taste + "_img", taste + "_intensity", "taste_qual_" + taste}
		for k, r := range rowsOf {
			if r.ID != wantIDs[k] {
				t.Errorf("group %d row %d: id = %q, want %q", g, k, r.ID, wantIDs[k])
			}
			if r.Page != 10+g {
				t.Errorf("group %d row %d: page = %d, want %d", g, k, r.Page, 10+g)
			}
			if strings.Contains(r.Title["en"], "Taste carefully.") {
				notes++
				if g != 0 || k != 1 {
					t.Errorf("note appended at group %d row %d, want group 0 row 1", g, k)
				}
				if want := "title " + r.ID + "\n\nTaste carefully."; r.Title["en"] != want {
					t.Errorf("note title = %q, want %q", r.Title["en"], want)
				}
			}
		}
	}
	if notes != 1 {
		t.Errorf("note appended %d times, want 1", notes)
	}

	// Input untouched.
	if !reflect.DeepEqual(in, tasteTable()) {
		t.Error("input slice was mutated")
	}
}

func TestRandomizeBlocks_Deterministic(t *testing.T) {
	in := tasteTable()
	a, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, SeededSource("key"))
	if err != nil {
		t.Fatalf("RandomizeBlocks: %v", err)
	}
	b, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, SeededSource("key"))
	if err != nil {
		t.Fatalf("RandomizeBlocks: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different orders")
	}
}

func TestRandomizeBlocks_NoBlocksPresent(t *testing.T) {
	in := []Row{
		{Session: "all", Page: 1, ID: "intro", Type: "header"},
		{Session: "all", Page: 2, ID: "age", Type: "number"},
	}
	out, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, nil)
	if err != nil {
		t.Fatalf("RandomizeBlocks: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Error("table without block rows should pass through unchanged")
	}
}

func TestRandomizeBlocks_PartialBlock(t *testing.T) {
	in := tasteTable()[:len(tasteTable())-2] // drop the last block row and outro
	if _, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, nil); err == nil {
		t.Fatal("expected error for partial block, got nil")
	}
}

func TestRandomizeBlocks_MissingNote(t *testing.T) {
	var in []Row
	for _, r := range tasteTable() {
		if r.ID != "how_to_taste" {
			in = append(in, r)
		}
	}
	if _, err := RandomizeBlocks(in, []string{"en"}, tasteCfg, nil); err == nil {
		t.Fatal("expected error for missing note row, got nil")
	}
}

func TestSeededSource_DistinctKeys(t *testing.T) {
	// Not a strict guarantee for any single pair, but these must not share a
	// sequence prefix of any meaningful length.
	a, b := SeededSource("alpha"), SeededSource("beta")
	same := true
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Error("distinct keys yielded identical sequences")
	}
}
