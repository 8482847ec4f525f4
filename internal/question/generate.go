package question

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Renderer-side type tags. The layout vocabulary (Type) is richer than the
// renderer's: several layout types collapse onto the same renderer element.
const (
	nodeRadioGroup = "radiogroup"
	nodeCheckbox   = "checkbox"
	nodeDropdown   = "dropdown"
	nodeSlider     = "nouislider"
	nodeComment    = "comment"
	nodeText       = "text"
	nodeHTML       = "html"
	nodeImage      = "image"
	nodeDate       = "bootstrapdatepicker"
)

const (
	// descriptionMarker splits a slider title cell into title and description.
	descriptionMarker = "######"

	// noneFromLastChoiceID is the one question whose "none of the above" text
	// comes from (and is removed out of) its own last choice entry instead of
	// the shared none label. The layout encodes a question-specific phrasing
	// there; see the tasting questionnaire, 6-month recall item.
	noneFromLastChoiceID = "taste_qual_6m"

	// excludedCountry is left out of country selectors; the reference table
	// lists it separately but it is part of Serbia for study purposes.
	excludedCountry = "Republic of Kosovo"

	emailPlaceholder = "me@domain.com"

	// preselectNote explains a pre-filled dropdown to returning respondents.
	preselectNote = "We have pre-selected the item you used last time, if any."

	defaultAssetPrefix = "assets/"
)

// Generate dispatches the extracted question to its type's generator and
// returns the renderer-ready node.
//
// It returns *UnknownTypeError for a type outside the closed vocabulary and
// *GeneratorError when the extracted data violates the type's structural
// preconditions.
func Generate(ctx context.Context, in Input, deps Deps) (Node, error) {
	switch in.Type {
	case TypeRadio:
		return genSelect(in, nodeRadioGroup), nil
	case TypeRadioWithOther:
		n := genSelect(in, nodeRadioGroup)
		n.HasOther = true
		n.OtherText = deps.OtherText
		return n, nil
	case TypeCheckbox:
		return genSelect(in, nodeCheckbox), nil
	case TypeCheckboxWithOther:
		n := genSelect(in, nodeCheckbox)
		n.HasOther = true
		n.OtherText = deps.OtherText
		return n, nil
	case TypeCheckboxWithNone:
		return genCheckboxWithNone(in, deps)
	case TypeCheckboxWithOtherNone:
		n := genSelect(in, nodeCheckbox)
		n.HasOther = true
		n.OtherText = deps.OtherText
		n.HasNone = true
		n.NoneText = deps.NoneText
		return n, nil
	case TypeSlider:
		return genSlider(in)
	case TypeComment:
		return &Comment{
			Type:       nodeComment,
			Name:       in.ID,
			Title:      in.Title,
			VisibleIf:  in.VisibleIf,
			IsRequired: in.Required,
		}, nil
	case TypeText, TypeStudyID:
		return genTextInput(in, "text"), nil
	case TypeNumber:
		return genTextInput(in, "number"), nil
	case TypeEmail:
		n := genTextInput(in, "email")
		n.PlaceHolder = fixedPlaceholder(in.Title, emailPlaceholder)
		return n, nil
	case TypeDropdown:
		return genDropdown(ctx, in, deps)
	case TypeYearSelector:
		return genYearSelector(in)
	case TypeCountrySelector:
		return genCountrySelector(in, deps)
	case TypeHeader:
		return genHeader(in), nil
	case TypeInfo:
		return genInfo(in, deps)
	case TypeImage:
		return genImage(in, deps)
	case TypeDate:
		return &DatePicker{
			Type:                  nodeDate,
			Name:                  in.ID,
			Title:                 in.Title,
			DateFormat:            "yyyy-mm-dd",
			VisibleIf:             in.VisibleIf,
			IsRequired:            in.Required,
			StartDate:             "-6m",
			EndDate:               "today",
			TodayHighlight:        true,
			ClearBtn:              true,
			AutoClose:             true,
			DaysOfWeekHighlighted: "0,6",
			WeekStart:             0,
			DisableTouchKeyboard:  true,
			Language:              deps.Language,
		}, nil
	default:
		return nil, &UnknownTypeError{ID: in.ID, Type: in.Type}
	}
}

func genSelect(in Input, nodeType string) *Select {
	return &Select{
		Type:       nodeType,
		Name:       in.ID,
		Title:      in.Title,
		Choices:    in.Choices,
		VisibleIf:  in.VisibleIf,
		IsRequired: in.Required,
	}
}

// genCheckboxWithNone builds a checkbox with a mutually exclusive "none"
// option. The none label is the shared label, except for the documented
// special case where it is taken from the question's own last choice.
func genCheckboxWithNone(in Input, deps Deps) (*Select, error) {
	noneText := deps.NoneText
	if in.ID == noneFromLastChoiceID {
		if len(in.Choices) == 0 {
			return nil, &GeneratorError{ID: in.ID, Reason: "none option sourced from last choice, but choice list is empty"}
		}
		noneText = in.Choices[len(in.Choices)-1].Text
		in.Choices = in.Choices[:len(in.Choices)-1]
	}
	n := genSelect(in, nodeCheckbox)
	n.HasNone = true
	n.NoneText = noneText
	return n, nil
}

func genSlider(in Input) (*Slider, error) {
	if len(in.Choices) != 2 {
		return nil, &GeneratorError{
			ID:     in.ID,
			Reason: fmt.Sprintf("slider needs exactly 2 endpoint choices, got %d", len(in.Choices)),
		}
	}

	title := make(map[string]string, len(in.Title))
	desc := make(map[string]string, len(in.Title))
	for lang, t := range in.Title {
		if head, tail, found := strings.Cut(t, descriptionMarker); found {
			title[lang] = strings.TrimSpace(head)
			desc[lang] = strings.TrimSpace(tail)
		} else {
			title[lang] = t
			desc[lang] = ""
		}
	}

	return &Slider{
		Type:        nodeSlider,
		Name:        in.ID,
		Title:       title,
		Description: desc,
		RangeMin:    0,
		RangeMax:    100,
		PipsMode:    "values",
		PipsValues:  []int{0, 100},
		PipsDensity: 101,
		PipsText: []Pip{
			{Value: 0, Text: in.Choices[0].Text},
			{Value: 100, Text: in.Choices[1].Text},
		},
		Tooltips:   false,
		VisibleIf:  in.VisibleIf,
		IsRequired: in.Required,
	}, nil
}

func genTextInput(in Input, inputType string) *TextInput {
	n := &TextInput{
		Type:       nodeText,
		Name:       in.ID,
		Title:      in.Title,
		InputType:  inputType,
		VisibleIf:  in.VisibleIf,
		IsRequired: in.Required,
	}
	// The first choice entry, when present, carries the placeholder text.
	if len(in.Choices) > 0 {
		n.PlaceHolder = in.Choices[0].Text
	}
	return n
}

// fixedPlaceholder fills every configured language with the same literal.
func fixedPlaceholder(title map[string]string, literal string) map[string]string {
	out := make(map[string]string, len(title))
	for lang := range title {
		out[lang] = literal
	}
	return out
}

func genDropdown(ctx context.Context, in Input, deps Deps) (*Select, error) {
	n := genSelect(in, nodeDropdown)
	if deps.Answers == nil {
		return n, nil
	}
	value, ok, err := deps.Answers.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("question: %s: prior answer lookup: %w", in.ID, err)
	}
	if ok {
		n.DefaultValue = value
		n.Description = preselectNote
	}
	return n, nil
}

// genYearSelector expands a two-value year range into a descending dropdown.
// Bounds are inclusive; [2000, 2005] yields 2005, 2004, ..., 2000.
func genYearSelector(in Input) (*Select, error) {
	if len(in.Choices) != 2 {
		return nil, &GeneratorError{
			ID:     in.ID,
			Reason: fmt.Sprintf("year selector needs exactly 2 bound choices, got %d", len(in.Choices)),
		}
	}
	lower, err := strconv.Atoi(in.Choices[0].Value)
	if err != nil {
		return nil, &GeneratorError{ID: in.ID, Reason: fmt.Sprintf("invalid lower year bound %q", in.Choices[0].Value)}
	}
	upper, err := strconv.Atoi(in.Choices[1].Value)
	if err != nil {
		return nil, &GeneratorError{ID: in.ID, Reason: fmt.Sprintf("invalid upper year bound %q", in.Choices[1].Value)}
	}
	if lower > upper {
		return nil, &GeneratorError{ID: in.ID, Reason: fmt.Sprintf("year bounds out of order: %d > %d", lower, upper)}
	}

	choices := make([]Choice, 0, upper-lower+1)
	for y := upper; y >= lower; y-- {
		choices = append(choices, Choice{Value: strconv.Itoa(y)})
	}
	in.Choices = choices
	return genSelect(in, nodeDropdown), nil
}

// genCountrySelector builds a dropdown from the country reference table.
// Each choice is visible only when the respondent's region answer matches,
// and choices are ordered by their translated display name using the target
// language's collation rules.
func genCountrySelector(in Input, deps Deps) (*Select, error) {
	if deps.Countries == nil {
		return nil, &GeneratorError{ID: in.ID, Reason: "no country table configured"}
	}

	type entry struct {
		name, translation, region string
	}
	var entries []entry
	for _, c := range deps.Countries.All() {
		if c.Name == excludedCountry {
			continue
		}
		translation := c.Translations[deps.Language]
		if deps.Language == deps.Reference || translation == "" {
			translation = c.Name
		}
		entries = append(entries, entry{name: c.Name, translation: translation, region: c.Region})
	}

	cmp := collatorFor(deps.Language)
	sort.SliceStable(entries, func(i, j int) bool {
		return cmp(entries[i].translation, entries[j].translation) < 0
	})

	choices := make([]Choice, len(entries))
	for i, e := range entries {
		choices[i] = Choice{
			Value:     e.name,
			Text:      map[string]string{deps.Language: e.translation},
			VisibleIf: "{region} = '" + e.region + "'",
		}
	}
	in.Choices = choices
	return genSelect(in, nodeDropdown), nil
}

func genHeader(in Input) *HTMLBlock {
	html := make(map[string]string, len(in.Title))
	for lang, t := range in.Title {
		html[lang] = "<h1>" + t + "</h1>"
	}
	return &HTMLBlock{Type: nodeHTML, Name: in.ID, HTML: html, VisibleIf: in.VisibleIf}
}

func genInfo(in Input, deps Deps) (*HTMLBlock, error) {
	if deps.Markdown == nil {
		return nil, &GeneratorError{ID: in.ID, Reason: "no markdown renderer configured"}
	}
	html := make(map[string]string, len(in.Title))
	for lang, t := range in.Title {
		rendered, err := deps.Markdown.Render(t)
		if err != nil {
			return nil, fmt.Errorf("question: %s: render info body (%s): %w", in.ID, lang, err)
		}
		html[lang] = rendered
	}
	return &HTMLBlock{Type: nodeHTML, Name: in.ID, HTML: html, VisibleIf: in.VisibleIf}, nil
}

// genImage interprets the reference-language title as a filename under the
// compiler's asset prefix.
func genImage(in Input, deps Deps) (*Image, error) {
	filename := strings.TrimSpace(in.Title[deps.Reference])
	if filename == "" {
		return nil, &GeneratorError{ID: in.ID, Reason: "image question has no filename in its title cell"}
	}
	prefix := deps.AssetPrefix
	if prefix == "" {
		prefix = defaultAssetPrefix
	}
	return &Image{Type: nodeImage, Name: in.ID, ImageLink: prefix + filename, VisibleIf: in.VisibleIf}, nil
}
