// Package document defines the compiled survey document: ordered pages of
// renderer-ready question nodes, survey-completion triggers, and the fixed
// display configuration the rendering layer expects.
package document

import (
	"strings"

	"surveygen/internal/question"
)

// Page is one survey page. Name is the page number's string form; Elements
// keeps the first-appearance order of question ids within the page.
type Page struct {
	Name     string          `json:"name"`
	Elements []question.Node `json:"elements"`
}

// Trigger ends the survey early when its expression evaluates true against
// the respondent's answers.
type Trigger struct {
	Type       string `json:"type"`
	Expression string `json:"expression"`
}

// TriggerFor derives a completion trigger from a question's end-condition
// string. A condition beginning with ">=" compares with that operator against
// the trailing value; anything else is an equality check. The comparison
// value is always quoted, matching the expression grammar of the renderer.
func TriggerFor(questionID, condition string) Trigger {
	op := "="
	value := strings.TrimSpace(condition)
	if rest, found := strings.CutPrefix(value, ">="); found {
		op = ">="
		value = strings.TrimSpace(rest)
	}
	return Trigger{
		Type:       "complete",
		Expression: "{" + questionID + "} " + op + " '" + value + "'",
	}
}

// Document is the compiled survey for one (session, language) pair. It is
// immutable after assembly; the rendering layer consumes its JSON form.
//
// Everything below Pages/Triggers is display configuration: constants of the
// compiler, not computed from the layout.
type Document struct {
	Triggers []Trigger `json:"triggers"`
	Pages    []Page    `json:"pages"`

	QuestionTitlePattern        string `json:"questionTitlePattern"`
	RequiredText                string `json:"requiredText"`
	ShowQuestionNumbers         string `json:"showQuestionNumbers"`
	ShowProgressBar             string `json:"showProgressBar"`
	FirstPageIsStarted          bool   `json:"firstPageIsStarted"`
	StartSurveyText             string `json:"startSurveyText"`
	FocusFirstQuestionAutomatic bool   `json:"focusFirstQuestionAutomatic"`
	ShowCompletedPage           bool   `json:"showCompletedPage"`
	StoreOthersAsComment        bool   `json:"storeOthersAsComment"`
	MaxTextLength               int    `json:"maxTextLength"`
	MaxOthersLength             int    `json:"maxOthersLength"`
}

// New assembles a Document around the given pages and triggers, filling in
// the fixed display configuration.
func New(pages []Page, triggers []Trigger) *Document {
	if pages == nil {
		pages = []Page{}
	}
	if triggers == nil {
		triggers = []Trigger{}
	}
	return &Document{
		Triggers:                    triggers,
		Pages:                       pages,
		QuestionTitlePattern:        "numRequireTitle",
		RequiredText:                "*",
		ShowQuestionNumbers:         "none",
		ShowProgressBar:             "top",
		FirstPageIsStarted:          false,
		StartSurveyText:             "Start Survey",
		FocusFirstQuestionAutomatic: false,
		ShowCompletedPage:           false,
		StoreOthersAsComment:        true,
		MaxTextLength:               10000,
		MaxOthersLength:             10000,
	}
}
