package extract

import (
	"reflect"
	"testing"

	"surveygen/internal/question"
	"surveygen/internal/rows"
)

var langs = []string{"en", "de", "nl"}

func choiceRow(id string, choices map[string]string) rows.Row {
	return rows.Row{
		Session: "all", Page: 1, ID: id, Type: "radio", Required: true,
		Title:   map[string]string{"en": "t-en", "de": "t-de", "nl": "t-nl"},
		Choices: choices,
	}
}

/*
TestExtract_Consistent: when every language has the same choice count, both
modes produce the full zipped choice list and no findings.
*/
func TestExtract_Consistent(t *testing.T) {
	group := []rows.Row{choiceRow("fruit", map[string]string{
		"en": "apple; pear",
		"de": "Apfel; Birne",
		"nl": "appel; peer",
	})}

	for _, mode := range []Mode{ModeCompile, ModeValidate} {
		var findings []Mismatch
		got := Extract(group, langs, "en", mode, func(m Mismatch) { findings = append(findings, m) })

		if len(findings) != 0 {
			t.Errorf("mode %v: unexpected findings: %v", mode, findings)
		}
		want := []question.Choice{
			{Value: "apple", Text: map[string]string{"en": "apple", "de": "Apfel", "nl": "appel"}},
			{Value: "pear", Text: map[string]string{"en": "pear", "de": "Birne", "nl": "peer"}},
		}
		if !reflect.DeepEqual(got.Choices, want) {
			t.Errorf("mode %v: choices = %+v, want %+v", mode, got.Choices, want)
		}
		if got.ID != "fruit" || got.Type != question.TypeRadio || !got.Required {
			t.Errorf("mode %v: attributes not carried: %+v", mode, got)
		}
	}
}

/*
TestExtract_MismatchCompile: under ModeCompile a language with the wrong
choice count is reported and repaired with the reference list, so the
document can still be produced.
*/
func TestExtract_MismatchCompile(t *testing.T) {
	group := []rows.Row{choiceRow("fruit", map[string]string{
		"en": "apple; pear",
		"de": "Apfel",
		"nl": "appel; peer",
	})}

	var findings []Mismatch
	got := Extract(group, langs, "en", ModeCompile, func(m Mismatch) { findings = append(findings, m) })

	wantFindings := []Mismatch{{
		ID:        "fruit",
		Language:  "de",
		Reference: []string{"apple", "pear"},
		Got:       []string{"Apfel"},
	}}
	if !reflect.DeepEqual(findings, wantFindings) {
		t.Errorf("findings = %+v, want %+v", findings, wantFindings)
	}

	want := []question.Choice{
		{Value: "apple", Text: map[string]string{"en": "apple", "de": "apple", "nl": "appel"}},
		{Value: "pear", Text: map[string]string{"en": "pear", "de": "pear", "nl": "peer"}},
	}
	if !reflect.DeepEqual(got.Choices, want) {
		t.Errorf("choices = %+v, want %+v", got.Choices, want)
	}
}

/*
TestExtract_MismatchValidate: under ModeValidate the finding is reported and
the question's choices are dropped entirely; nothing is repaired.
*/
func TestExtract_MismatchValidate(t *testing.T) {
	group := []rows.Row{choiceRow("fruit", map[string]string{
		"en": "apple; pear",
		"de": "Apfel",
		"nl": "appel; peer",
	})}

	var findings []Mismatch
	got := Extract(group, langs, "en", ModeValidate, func(m Mismatch) { findings = append(findings, m) })

	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if got.Choices != nil {
		t.Errorf("choices = %+v, want none", got.Choices)
	}
}

func TestExtract_NoChoiceTypes(t *testing.T) {
	group := []rows.Row{{
		Session: "all", Page: 1, ID: "welcome", Type: "header",
		Title:   map[string]string{"en": "Hello", "de": "Hallo", "nl": "Hoi"},
		Choices: map[string]string{"en": "stray; cells", "de": "", "nl": ""},
	}}

	var findings []Mismatch
	got := Extract(group, langs, "en", ModeValidate, func(m Mismatch) { findings = append(findings, m) })

	if len(findings) != 0 {
		t.Errorf("choiceless type produced findings: %v", findings)
	}
	if got.Choices != nil {
		t.Errorf("choiceless type carried choices: %+v", got.Choices)
	}
}

func TestSplitChoices(t *testing.T) {
	got := splitChoices(" apple ;pear;  plum")
	want := []string{"apple", "pear", "plum"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitChoices = %v, want %v", got, want)
	}
}
