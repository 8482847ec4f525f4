package countries

import (
	"strings"
	"testing"
)

const sampleTable = `[
  {"name": "Austria", "region": "Europe", "translations": {"de": "Österreich", "it": "Austria"}},
  {"name": "Zimbabwe", "region": "Africa", "translations": {"de": "Simbabwe"}}
]`

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	all := table.All()
	if all[0].Name != "Austria" || all[0].Region != "Europe" {
		t.Errorf("first entry = %+v", all[0])
	}
	if all[0].Translations["de"] != "Österreich" {
		t.Errorf("translation = %q", all[0].Translations["de"])
	}
	// Table order is preserved; the selector sorts later, per language.
	if all[1].Name != "Zimbabwe" {
		t.Errorf("second entry = %+v", all[1])
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not_json", input: "countries.csv contents"},
		{name: "not_an_array", input: `{"name": "Austria"}`},
		{name: "missing_name", input: `[{"region": "Europe"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tc.input)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
