// Package question turns extracted question data into renderer-ready nodes.
//
// The question type vocabulary is closed: every type the layout may use has
// exactly one generator, and an unknown type aborts compilation with an
// UnknownTypeError. All external dependencies of the generators (markdown
// rendering, the country reference table, the prior-answer store) are passed
// in as narrow interfaces; nothing in this package reaches for globals or
// does I/O of its own beyond the injected collaborators.
package question

import (
	"context"
	"encoding/json"
	"fmt"
)

// Type tags a question row in the layout table.
type Type string

const (
	TypeRadio                 Type = "radio"
	TypeRadioWithOther        Type = "radio_with_other_option"
	TypeCheckbox              Type = "checkbox"
	TypeCheckboxWithOther     Type = "checkbox_with_other_option"
	TypeCheckboxWithNone      Type = "checkbox_with_none_option"
	TypeCheckboxWithOtherNone Type = "checkbox_with_other_and_none_options"
	TypeSlider                Type = "slider"
	TypeComment               Type = "comment"
	TypeText                  Type = "text"
	TypeNumber                Type = "number"
	TypeEmail                 Type = "email"
	TypeStudyID               Type = "study_id"
	TypeDropdown              Type = "dropdown"
	TypeYearSelector          Type = "year_selector"
	TypeCountrySelector       Type = "country_selector"
	TypeHeader                Type = "header"
	TypeInfo                  Type = "info"
	TypeImage                 Type = "image"
	TypeDate                  Type = "date"
)

// NoChoices reports whether the type carries no choice list at all. For these
// kinds the choices cell is ignored during extraction.
func (t Type) NoChoices() bool {
	switch t {
	case TypeHeader, TypeInfo, TypeComment, TypeCountrySelector, TypeDate, TypeImage, TypeEmail:
		return true
	}
	return false
}

// UnknownTypeError reports a layout row whose type is not part of the closed
// vocabulary. The schema must stay closed, so this is fatal.
type UnknownTypeError struct {
	ID   string
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("question: %s: unknown question type %q", e.ID, e.Type)
}

// GeneratorError reports extracted data that violates a generator's
// structural precondition (e.g. a slider without its two endpoint labels).
type GeneratorError struct {
	ID     string
	Reason string
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("question: %s: %s", e.ID, e.Reason)
}

// Choice is one selectable option. Text maps language to display text; a
// country choice additionally carries a region-based visibility expression.
type Choice struct {
	Value     string            `json:"value"`
	Text      map[string]string `json:"text,omitempty"`
	VisibleIf string            `json:"visibleIf,omitempty"`
}

// MarshalJSON emits a bare value for choices without text or visibility
// (year-selector entries), and the full object otherwise.
func (c Choice) MarshalJSON() ([]byte, error) {
	if len(c.Text) == 0 && c.VisibleIf == "" {
		return json.Marshal(c.Value)
	}
	type choice Choice // strip the method to avoid recursion
	return json.Marshal(choice(c))
}

// Input is the validated per-question tuple produced by the extract package:
// everything a generator needs, independent of the tabular source.
type Input struct {
	Type      Type
	ID        string
	Title     map[string]string
	Choices   []Choice
	Required  bool
	VisibleIf string
}

// Renderer converts markdown to HTML. Used for info blocks and freestanding
// message strings.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Country is one record of the read-only country reference table.
type Country struct {
	Name         string            `json:"name"`
	Region       string            `json:"region"`
	Translations map[string]string `json:"translations"`
}

// CountryTable exposes the country reference data in table order.
type CountryTable interface {
	All() []Country
}

// AnswerLookup resolves a question id to the value the respondent chose in a
// prior session. ok is false when no prior answer exists.
type AnswerLookup interface {
	Get(ctx context.Context, questionID string) (value string, ok bool, err error)
}

// Deps bundles the injected collaborators and shared labels for generation.
type Deps struct {
	Markdown  Renderer
	Countries CountryTable
	Answers   AnswerLookup // optional; enables dropdown pre-selection

	Language  string // target language (country ordering, date locale)
	Reference string // reference language (image filenames)

	OtherText map[string]string // shared label for open-text fallback options
	NoneText  map[string]string // shared label for "none of the above"

	AssetPrefix string // image path prefix; "assets/" when empty
}
