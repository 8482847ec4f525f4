// Package compiler wires the compilation pipeline together: load the layout
// table, normalize it, filter it to a session, randomize the taste blocks,
// and assemble pages and triggers into a renderer-ready document.
//
// One compile run is a pure function of (layout snapshot, session selector,
// language, optional prior answers, random source) and owns no state across
// runs; the Compiler struct only carries configuration and the injected
// collaborators.
package compiler

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"surveygen/internal/config"
	"surveygen/internal/document"
	"surveygen/internal/extract"
	"surveygen/internal/metrics"
	"surveygen/internal/question"
	"surveygen/internal/rows"
	"surveygen/internal/source"
	sourcecsv "surveygen/internal/source/csv"
)

// Deps bundles the injected collaborators of a Compiler.
type Deps struct {
	Markdown  question.Renderer
	Countries question.CountryTable
	Answers   question.AnswerLookup // optional; enables dropdown pre-selection
	Report    extract.Reporter      // optional; receives consistency findings
}

// Compiler compiles survey documents from a layout table.
type Compiler struct {
	cfg  config.Config
	deps Deps
}

// New returns a Compiler for the given configuration and collaborators.
func New(cfg config.Config, deps Deps) *Compiler {
	return &Compiler{cfg: cfg, deps: deps}
}

// LoadRows opens the layout source, parses it as CSV and normalizes it into
// typed rows. The result is the immutable input snapshot for any number of
// Compile/Validate/Messages calls.
func (c *Compiler) LoadRows(ctx context.Context, src source.Source) ([]rows.Row, error) {
	start := time.Now()
	table, err := c.loadRows(ctx, src)
	metrics.RecordStep(c.cfg.Job, "load", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	metrics.RecordQuestions(c.cfg.Job, "rows", int64(len(table)))
	return table, nil
}

func (c *Compiler) loadRows(ctx context.Context, src source.Source) ([]rows.Row, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("compiler: open layout: %w", err)
	}
	defer rc.Close()

	reader := sourcecsv.NewReader(sourcecsv.Options{
		Comma:     c.cfg.Source.CSV.CommaRune(),
		TrimSpace: c.cfg.Source.CSV.TrimSpace,
		HeaderMap: c.cfg.Source.CSV.HeaderMap,
	})
	columns, records, err := reader.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("compiler: read layout: %w", err)
	}
	return rows.Normalize(columns, records, c.cfg.Languages)
}

// Options tunes one Compile call.
type Options struct {
	// Language is the target language for locale-dependent generation
	// (country ordering, date picker locale). Required.
	Language string

	// Rand is the random source for the taste-block permutation. Nil draws
	// from the shared global source; pass rows.SeededSource(key) for a
	// per-respondent stable order.
	Rand *rand.Rand
}

// Compile builds the document for one (session, language) pair.
func (c *Compiler) Compile(ctx context.Context, table []rows.Row, sel rows.Selector, opts Options) (*document.Document, error) {
	if opts.Language == "" {
		return nil, fmt.Errorf("compiler: options: language is required")
	}

	filtered, err := rows.FilterSession(table, sel)
	if err != nil {
		return nil, err
	}

	randomized, err := rows.RandomizeBlocks(filtered, c.cfg.Languages, rows.ShuffleConfig{
		Blocks: c.cfg.Randomize.Blocks,
		NoteID: c.cfg.Randomize.NoteID,
	}, opts.Rand)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := c.assemble(ctx, randomized, opts.Language)
	metrics.RecordStep(c.cfg.Job, "assemble", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	metrics.RecordDocuments(c.cfg.Job, sel.String(), opts.Language)
	return doc, nil
}

// assemble walks the filtered rows in order, producing one question node per
// id group and collecting them into pages, then derives the completion
// triggers.
func (c *Compiler) assemble(ctx context.Context, filtered []rows.Row, language string) (*document.Document, error) {
	deps := question.Deps{
		Markdown:    c.deps.Markdown,
		Countries:   c.deps.Countries,
		Answers:     c.deps.Answers,
		Language:    language,
		Reference:   c.cfg.ReferenceLanguage,
		OtherText:   labelTitles(filtered, c.cfg.Labels.OtherID),
		NoneText:    labelTitles(filtered, c.cfg.Labels.NoneID),
		AssetPrefix: c.cfg.AssetPrefix,
	}

	var (
		pages     []document.Page
		questions int64
	)
	pageIdx := map[int]int{} // page number -> index into pages

	for _, group := range groupByID(filtered) {
		in := extract.Extract(group, c.cfg.Languages, c.cfg.ReferenceLanguage, extract.ModeCompile, c.repairReporter())
		node, err := question.Generate(ctx, in, deps)
		if err != nil {
			return nil, err
		}

		page := group[0].Page
		i, ok := pageIdx[page]
		if !ok {
			i = len(pages)
			pageIdx[page] = i
			pages = append(pages, document.Page{Name: strconv.Itoa(page)})
		}
		pages[i].Elements = append(pages[i].Elements, node)
		questions++
	}

	var triggers []document.Trigger
	for _, group := range groupByID(filtered) {
		// Any row of a multi-row question may carry the condition.
		for _, r := range group {
			if r.EndSurveyIf != "" {
				triggers = append(triggers, document.TriggerFor(group[0].ID, r.EndSurveyIf))
				break
			}
		}
	}

	metrics.RecordQuestions(c.cfg.Job, "questions", questions)
	metrics.RecordQuestions(c.cfg.Job, "pages", int64(len(pages)))
	metrics.RecordQuestions(c.cfg.Job, "triggers", int64(len(triggers)))
	return document.New(pages, triggers), nil
}

// Validate runs the validation-only pass for one session: every question is
// extracted and consistency-checked, the type vocabulary is enforced, and
// the findings are returned. No document is produced and nothing is
// repaired.
func (c *Compiler) Validate(table []rows.Row, sel rows.Selector) ([]extract.Mismatch, error) {
	filtered, err := rows.FilterSession(table, sel)
	if err != nil {
		return nil, err
	}

	var findings []extract.Mismatch
	collect := func(m extract.Mismatch) {
		findings = append(findings, m)
		metrics.RecordMismatch(c.cfg.Job, m.Language, false)
		if c.deps.Report != nil {
			c.deps.Report(m)
		}
	}

	for _, group := range groupByID(filtered) {
		in := extract.Extract(group, c.cfg.Languages, c.cfg.ReferenceLanguage, extract.ModeValidate, collect)
		if !knownType(in.Type) {
			return findings, &question.UnknownTypeError{ID: in.ID, Type: in.Type}
		}
	}
	return findings, nil
}

// repairReporter forwards compile-mode findings to the configured reporter
// and counts them as repaired.
func (c *Compiler) repairReporter() extract.Reporter {
	return func(m extract.Mismatch) {
		metrics.RecordMismatch(c.cfg.Job, m.Language, true)
		if c.deps.Report != nil {
			c.deps.Report(m)
		}
	}
}

// groupByID splits rows into per-question groups, preserving order. Rows of
// one question are adjacent (FilterSession guarantees it), so a group is a
// maximal run of rows sharing an id.
func groupByID(in []rows.Row) [][]rows.Row {
	var groups [][]rows.Row
	for i := 0; i < len(in); {
		j := i + 1
		for j < len(in) && in[j].ID == in[i].ID {
			j++
		}
		groups = append(groups, in[i:j])
		i = j
	}
	return groups
}

// labelTitles returns the per-language title map of the row with the given
// id, or nil when the row is absent from the filtered set.
func labelTitles(in []rows.Row, id string) map[string]string {
	for _, r := range in {
		if r.ID == id {
			return r.Title
		}
	}
	return nil
}

// knownType reports whether t is part of the closed question vocabulary.
func knownType(t question.Type) bool {
	switch t {
	case question.TypeRadio, question.TypeRadioWithOther,
		question.TypeCheckbox, question.TypeCheckboxWithOther,
		question.TypeCheckboxWithNone, question.TypeCheckboxWithOtherNone,
		question.TypeSlider, question.TypeComment, question.TypeText,
		question.TypeNumber, question.TypeEmail, question.TypeStudyID,
		question.TypeDropdown, question.TypeYearSelector,
		question.TypeCountrySelector, question.TypeHeader, question.TypeInfo,
		question.TypeImage, question.TypeDate:
		return true
	}
	return false
}
