// Package config provides configuration models and helpers for survey
// compile jobs.
//
// This file adds a lightweight linter/validator for Config values. It
// performs static checks over a decoded Config and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"

	"surveygen/internal/rows"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "source.kind",
// "sessions[1]"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation / linting of a Config.
//
// It does not mutate the config. Instead it returns a slice of Issue values;
// callers decide whether to treat warnings as fatal or not.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and output file naming",
		})
	}

	issues = append(issues, validateSource(c.Source)...)
	issues = append(issues, validateLanguages(c)...)
	issues = append(issues, validateSessions(c.Sessions)...)
	issues = append(issues, validateRandomize(c.Randomize)...)
	issues = append(issues, validateAnswers(c)...)

	if strings.TrimSpace(c.Output.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.dir",
			Message:  "output.dir must not be empty",
		})
	}
	return issues
}

// validateSource validates the layout source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	// Known source kinds. Unknown kinds are warnings (forward compatibility).
	known := map[string]struct{}{
		"file": {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	}

	if len(s.CSV.Comma) > 1 {
		// Multi-byte UTF-8 delimiters decode to one rune; reject multi-rune.
		runes := []rune(s.CSV.Comma)
		if len(runes) > 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.csv.comma",
				Message:  fmt.Sprintf("delimiter %q must be a single character", s.CSV.Comma),
			})
		}
	}
	return issues
}

// validateLanguages checks the language list and the reference language.
func validateLanguages(c Config) []Issue {
	var issues []Issue

	if len(c.Languages) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "languages",
			Message:  "at least one language is required",
		})
		return issues
	}

	seen := map[string]struct{}{}
	for i, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("languages[%d]", i),
				Message:  "language code must not be empty",
			})
			continue
		}
		if _, dup := seen[lang]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("languages[%d]", i),
				Message:  fmt.Sprintf("language %q listed twice", lang),
			})
		}
		seen[lang] = struct{}{}
	}

	if _, ok := seen[c.ReferenceLanguage]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "reference_language",
			Message:  fmt.Sprintf("reference language %q is not in the languages list", c.ReferenceLanguage),
		})
	}
	return issues
}

// validateSessions checks every session selector parses.
func validateSessions(sessions []string) []Issue {
	var issues []Issue
	if len(sessions) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "sessions",
			Message:  "no sessions configured; nothing will be compiled unless -session is passed",
		})
		return issues
	}
	for i, s := range sessions {
		if _, err := rows.ParseSelector(s); err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("sessions[%d]", i),
				Message:  err.Error(),
			})
		}
	}
	return issues
}

// validateRandomize checks block keywords are unique and non-empty.
func validateRandomize(r Randomize) []Issue {
	var issues []Issue
	seen := map[string]struct{}{}
	for i, b := range r.Blocks {
		if strings.TrimSpace(b) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("randomize.blocks[%d]", i),
				Message:  "block keyword must not be empty",
			})
			continue
		}
		if _, dup := seen[b]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("randomize.blocks[%d]", i),
				Message:  fmt.Sprintf("block keyword %q listed twice", b),
			})
		}
		seen[b] = struct{}{}
	}
	return issues
}

// validateAnswers checks the prior-answer store selection. Opening the store
// is left to runtime; only static mistakes are caught here.
func validateAnswers(c Config) []Issue {
	var issues []Issue
	kind := strings.TrimSpace(c.Answers.Kind)
	if kind == "" {
		return nil // pre-selection disabled
	}

	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
		"mssql":    {},
	}
	if _, ok := known[kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "answers.kind",
			Message:  fmt.Sprintf("unknown answers backend %q; ensure a matching implementation is linked in", kind),
		})
	}
	if strings.TrimSpace(c.Answers.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "answers.dsn",
			Message:  fmt.Sprintf("answers backend %q requires a DSN", kind),
		})
	}
	return issues
}
