package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"surveygen/internal/answers"
	"surveygen/internal/compiler"
	"surveygen/internal/config"
	"surveygen/internal/countries"
	"surveygen/internal/extract"
	"surveygen/internal/markdown"
	"surveygen/internal/question"
	"surveygen/internal/rows"
	"surveygen/internal/source/file"
)

// compileWorkers caps concurrent (session, language) document builds.
const compileWorkers = 4

// buildCompiler assembles the Compiler with its collaborators from config.
// The returned cleanup closes the answers store when one was opened.
func buildCompiler(ctx context.Context, cfg config.Config) (*compiler.Compiler, func(), error) {
	table, err := loadCountries(cfg.CountriesPath)
	if err != nil {
		return nil, nil, err
	}

	deps := compiler.Deps{
		Markdown:  markdown.New(),
		Countries: table,
		Report: func(m extract.Mismatch) {
			log.Printf("translation: %s", m)
		},
	}

	cleanup := func() {}
	if cfg.Answers.Kind != "" {
		store, err := answers.Open(ctx, cfg.Answers)
		if err != nil {
			return nil, nil, fmt.Errorf("open answers store: %w", err)
		}
		deps.Answers = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("answers: close: %v", err)
			}
		}
	}

	return compiler.New(cfg, deps), cleanup, nil
}

func loadCountries(path string) (question.CountryTable, error) {
	if path == "" {
		return countries.New(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open countries: %w", err)
	}
	defer f.Close()
	return countries.Load(f)
}

// runCompile builds one document per (session, language) pair plus the
// per-language message maps, and writes everything to the output directory.
func runCompile(ctx context.Context, cfg config.Config, targets []string, seed string) error {
	comp, cleanup, err := buildCompiler(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := comp.LoadRows(ctx, file.NewLocal(cfg.Source.File.Path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeMessages(comp, cfg, table, targets); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(compileWorkers)

	for _, session := range cfg.Sessions {
		sel, err := rows.ParseSelector(session)
		if err != nil {
			return err
		}
		for _, lang := range targets {
			g.Go(func() error {
				opts := compiler.Options{Language: lang}
				if seed != "" {
					// All languages of a session share one shuffle order.
					opts.Rand = rows.SeededSource(seed + "/" + sel.String())
				}
				doc, err := comp.Compile(ctx, table, sel, opts)
				if err != nil {
					return fmt.Errorf("session %s lang %s: %w", sel, lang, err)
				}
				name := fmt.Sprintf("%s_survey_%s_%s.json", cfg.Job, sel, lang)
				return writeJSON(filepath.Join(cfg.Output.Dir, name), doc)
			})
		}
	}
	return g.Wait()
}

// runMessages writes only the per-language message maps.
func runMessages(ctx context.Context, cfg config.Config, targets []string) error {
	comp, cleanup, err := buildCompiler(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := comp.LoadRows(ctx, file.NewLocal(cfg.Source.File.Path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return writeMessages(comp, cfg, table, targets)
}

func writeMessages(comp *compiler.Compiler, cfg config.Config, table []rows.Row, targets []string) error {
	for _, lang := range targets {
		msgs, err := comp.Messages(table, lang)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s_messages_%s.json", cfg.Job, lang)
		if err := writeJSON(filepath.Join(cfg.Output.Dir, name), msgs); err != nil {
			return err
		}
	}
	return nil
}

// runValidate runs the consistency-only pass over every configured session.
// Findings are logged as they are produced; a non-nil error is returned when
// any were found so callers exit non-zero.
func runValidate(ctx context.Context, cfg config.Config) error {
	comp, cleanup, err := buildCompiler(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := comp.LoadRows(ctx, file.NewLocal(cfg.Source.File.Path))
	if err != nil {
		return err
	}

	total := 0
	for _, session := range cfg.Sessions {
		sel, err := rows.ParseSelector(session)
		if err != nil {
			return err
		}
		findings, err := comp.Validate(table, sel)
		total += len(findings)
		if err != nil {
			return fmt.Errorf("session %s: %w", sel, err)
		}
	}
	if total > 0 {
		return fmt.Errorf("validation: %d translation mismatches", total)
	}
	log.Printf("validation: all translations consistent")
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
