// Package extract derives the validated per-question tuple (type, titles,
// choices, requirement, visibility) from the rows sharing one question id,
// and checks that every translation is structurally consistent with the
// reference language.
//
// Consistency findings are reported, never raised: translation work is
// iterative, and a hard failure on one mismatched cell would block all other
// processing. What happens after a finding depends on the mode:
//
//   - ModeCompile repairs the defective language by substituting the
//     reference-language choice list, so a document can still be produced.
//   - ModeValidate only reports and discards the question's choices. A
//     validation pass must not paper over the data it is linting, so no
//     repair happens here. (Whether compile-time repair itself is the right
//     product behavior is tracked as an open point; the two modes keep the
//     historical split.)
package extract

import (
	"fmt"
	"strings"

	"surveygen/internal/question"
	"surveygen/internal/rows"
)

// Mode selects what happens when a translation mismatch is found.
type Mode int

const (
	// ModeCompile repairs mismatched languages from the reference language.
	ModeCompile Mode = iota
	// ModeValidate reports mismatches and drops the affected choice lists.
	ModeValidate
)

// Mismatch describes one translation-consistency finding: a language whose
// choice count differs from the reference language for a question. Both full
// choice lists are carried so the finding is actionable on its own.
type Mismatch struct {
	ID        string
	Language  string
	Reference []string // reference-language choices
	Got       []string // the mismatched language's choices
}

func (m Mismatch) String() string {
	return fmt.Sprintf("question %s: choice count mismatch for %s: reference %v vs %v",
		m.ID, m.Language, m.Reference, m.Got)
}

// Reporter receives consistency findings. A nil Reporter discards them.
type Reporter func(Mismatch)

// Extract reduces the rows of one question (the layout keeps them adjacent;
// attributes are read from the first row) to a generator input.
//
// languages lists every supported language; reference is the language whose
// choice list defines the expected structure. The returned Input is complete
// for ModeCompile; under ModeValidate a question with any mismatched
// language has an empty choice list.
func Extract(group []rows.Row, languages []string, reference string, mode Mode, report Reporter) question.Input {
	first := group[0]

	in := question.Input{
		Type:      question.Type(first.Type),
		ID:        first.ID,
		Title:     first.Title,
		Required:  first.Required,
		VisibleIf: first.VisibleIf,
	}
	if in.Type.NoChoices() {
		return in
	}

	split := make(map[string][]string, len(languages))
	for _, lang := range languages {
		split[lang] = splitChoices(first.Choices[lang])
	}

	ref := split[reference]
	dropped := false
	for _, lang := range languages {
		if lang == reference {
			continue
		}
		if len(split[lang]) == len(ref) {
			continue
		}
		if report != nil {
			report(Mismatch{ID: first.ID, Language: lang, Reference: ref, Got: split[lang]})
		}
		switch mode {
		case ModeCompile:
			split[lang] = ref
		case ModeValidate:
			dropped = true
		}
	}
	if dropped {
		return in
	}

	choices := make([]question.Choice, len(ref))
	for i, value := range ref {
		text := make(map[string]string, len(languages))
		for _, lang := range languages {
			text[lang] = split[lang][i]
		}
		choices[i] = question.Choice{Value: value, Text: text}
	}
	in.Choices = choices
	return in
}

// splitChoices splits a raw semicolon-delimited choices cell and trims the
// surrounding whitespace of each piece.
func splitChoices(raw string) []string {
	parts := strings.Split(raw, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
