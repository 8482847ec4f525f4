// Package config defines the canonical, JSON-serializable configuration
// model for the survey compiler. It is intentionally small, explicit, and
// dependency-free so that compile jobs can be loaded from disk (or other
// sources) and passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in job files
//     under configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library.
//
// Example (trimmed):
//
//	{
//	  "job":       "tastestudy",
//	  "source":    { "kind": "file", "file": { "path": "data/layout.csv" } },
//	  "languages": ["en", "de", "nl", "it"],
//	  "reference_language": "en",
//	  "countries_path": "data/countries.json",
//	  "sessions":  ["1", "2", "last"],
//	  "answers":   { "kind": "sqlite", "dsn": "responses.db" },
//	  "output":    { "dir": "out" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"io"

	"surveygen/internal/answers"
)

// Config describes one survey compile job.
type Config struct {
	// Job names the compile run; it labels metrics and output files.
	Job string `json:"job"`

	// Source describes where the layout table comes from.
	Source Source `json:"source"`

	// Languages lists every supported language code, reference language
	// included. Per-language layout columns (title_<lang>, choices_<lang>)
	// must exist for each entry.
	Languages []string `json:"languages"`

	// ReferenceLanguage is the language whose choice lists define the
	// expected structure for every translation. Defaults to the first entry
	// of Languages.
	ReferenceLanguage string `json:"reference_language"`

	// CountriesPath points at the country reference table (JSON).
	CountriesPath string `json:"countries_path"`

	// Sessions lists the session selectors to compile documents for:
	// positive integers or "last".
	Sessions []string `json:"sessions"`

	// AssetPrefix prefixes image filenames; "assets/" when empty.
	AssetPrefix string `json:"asset_prefix"`

	// Labels names the layout rows that carry shared option labels.
	Labels Labels `json:"labels"`

	// Randomize configures the randomized question blocks.
	Randomize Randomize `json:"randomize"`

	// Answers configures the prior-answer store; an empty kind disables
	// dropdown pre-selection.
	Answers answers.Config `json:"answers"`

	// Output configures where compiled documents are written.
	Output Output `json:"output"`
}

// Source identifies the layout data source. Additional kinds can be added
// over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`

	// CSV configures how the raw bytes are parsed into layout records.
	CSV CSVOptions `json:"csv"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the layout file.
	Path string `json:"path"`
}

// CSVOptions configures the CSV layout reader.
type CSVOptions struct {
	// Comma is the field delimiter; the first rune is used. Empty means ','.
	Comma string `json:"comma"`

	// TrimSpace trims leading/trailing spaces from every cell.
	TrimSpace bool `json:"trim_space"`

	// HeaderMap maps source header names to the canonical column names the
	// normalizer expects.
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Labels names the layout rows whose titles provide the shared labels for
// generated options.
type Labels struct {
	// NoneID is the row carrying the "none of the above" label per language.
	// Defaults to "msg_none".
	NoneID string `json:"none_id"`

	// OtherID is the row carrying the open-text fallback label per language.
	// Defaults to "msg_other".
	OtherID string `json:"other_id"`
}

// Randomize configures the randomized question blocks of a session.
type Randomize struct {
	// Blocks lists the block keywords. Defaults to the four basic tastes:
	// sweet, sour, salty, bitter.
	Blocks []string `json:"blocks"`

	// NoteID is the row whose title is appended to the first shown block.
	// Defaults to "how_to_taste".
	NoteID string `json:"note_id"`
}

// Output configures where results are written.
type Output struct {
	// Dir is the output directory for compiled documents and message maps.
	Dir string `json:"dir"`
}

// Load decodes a Config from JSON and applies defaults.
func Load(r io.Reader) (Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

// ApplyDefaults fills the optional fields that have conventional values.
func (c *Config) ApplyDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = "file"
	}
	if c.ReferenceLanguage == "" && len(c.Languages) > 0 {
		c.ReferenceLanguage = c.Languages[0]
	}
	if c.AssetPrefix == "" {
		c.AssetPrefix = "assets/"
	}
	if c.Labels.NoneID == "" {
		c.Labels.NoneID = "msg_none"
	}
	if c.Labels.OtherID == "" {
		c.Labels.OtherID = "msg_other"
	}
	if len(c.Randomize.Blocks) == 0 {
		c.Randomize.Blocks = []string{"sweet", "sour", "salty", "bitter"}
	}
	if c.Randomize.NoteID == "" {
		c.Randomize.NoteID = "how_to_taste"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "out"
	}
}

// CommaRune returns the configured CSV delimiter as a rune, or ',' when
// unset.
func (o CSVOptions) CommaRune() rune {
	for _, r := range o.Comma {
		return r
	}
	return ','
}
