package compiler

import (
	"reflect"
	"testing"

	"surveygen/internal/rows"
)

func msgRow(id, en, de string) rows.Row {
	return rows.Row{
		Session: "all", Page: 1, ID: id, Type: "info",
		Title: map[string]string{"en": en, "de": de},
	}
}

/*
TestMessages covers the message-map export:

  - Only msg_ rows are picked up; question rows are ignored.
  - Block copy keeps its paragraph markup and HTML escaping; button/title/
    chart copy is unwrapped to inline markup with ampersands restored.
  - msg_title and msg_no_completed_checks are matched exactly, so an
    unrelated msg_title_page2 stays a block message.
*/
func TestMessages(t *testing.T) {
	table := []rows.Row{
		q("all", 1, "welcome", "header", "Welcome", ""),
		msgRow("msg_intro", "Please **read** this.", "Bitte **lesen**."),
		msgRow("msg_study", "Taste & Health study", "Studie Geschmack & Gesundheit"),
		msgRow("msg_button_next", "Next", "Weiter"),
		msgRow("msg_title", "Taste & Health", "Geschmack & Gesundheit"),
		msgRow("msg_title_page2", "Part two", "Teil zwei"),
		msgRow("msg_chart_label", "Checks", "Checks"),
		msgRow("msg_no_completed_checks", "No checks yet", "Noch keine Checks"),
	}

	comp := testCompiler(nil)
	got, err := comp.Messages(table, "en")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}

	want := map[string]string{
		"msg_intro":               "<p>Please <strong>read</strong> this.</p>",
		"msg_study":               "<p>Taste &amp; Health study</p>",
		"msg_button_next":         "Next",
		"msg_title":               "Taste & Health",
		"msg_title_page2":         "<p>Part two</p>",
		"msg_chart_label":         "Checks",
		"msg_no_completed_checks": "No checks yet",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("messages:\n got: %v\nwant: %v", got, want)
	}

	de, err := comp.Messages(table, "de")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if de["msg_title"] != "Geschmack & Gesundheit" {
		t.Errorf("de title = %q", de["msg_title"])
	}
}

// Sessions repeat shared copy; the last row of a repeated id overrides the
// earlier ones, like a later layout edit.
func TestMessages_LastOccurrenceWins(t *testing.T) {
	table := []rows.Row{
		msgRow("msg_button_next", "Next", "Weiter"),
		msgRow("msg_button_next", "Continue", "Fortfahren"),
	}

	comp := testCompiler(nil)
	got, err := comp.Messages(table, "en")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if got["msg_button_next"] != "Continue" {
		t.Errorf("msg_button_next = %q, want last occurrence", got["msg_button_next"])
	}
}

func TestUnwrapParagraph(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single_paragraph", in: "<p>Next</p>", want: "Next"},
		{name: "inline_markup_kept", in: "<p>Go <em>now</em></p>", want: "Go <em>now</em>"},
		{name: "multi_paragraph_untouched", in: "<p>a</p>\n<p>b</p>", want: "<p>a</p>\n<p>b</p>"},
		{name: "no_wrapper", in: "<h1>x</h1>", want: "<h1>x</h1>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := unwrapParagraph(tc.in); got != tc.want {
				t.Errorf("unwrapParagraph(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
