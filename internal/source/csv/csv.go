// Package csv reads the survey layout table from CSV exports. It tolerates
// the quirks of spreadsheet exports seen in real layout files: UTF-8 BOMs,
// lazy quoting, and rows shorter or longer than the header.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Options configures the layout reader. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing ASCII spaces from each cell value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical column names (e.g. a
	// localized header to the column set the normalizer expects). Mapping is
	// applied after BOM stripping and trimming.
	HeaderMap map[string]string
}

// Reader parses CSV layout input according to Options. It is safe to reuse
// across inputs, but Reader itself is not concurrency-safe.
type Reader struct{ opt Options }

// NewReader constructs a Reader with the provided Options.
func NewReader(opt Options) *Reader { return &Reader{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// stripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func stripHeaderBOM(headers []string) []string {
	if len(headers) > 0 && strings.HasPrefix(headers[0], utf8BOM) {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	return headers
}

// ReadAll reads the whole layout table: the first row is the header, every
// following row becomes one header-keyed record. Layout sheets are small
// (hundreds of rows), so there is no need for a streaming path here.
//
// Rows shorter than the header leave the missing cells empty; surplus cells
// are ignored.
func (r *Reader) ReadAll(in io.Reader) (columns []string, records []map[string]string, err error) {
	cr := csv.NewReader(in)
	cr.Comma = ','
	if r.opt.Comma != 0 {
		cr.Comma = r.opt.Comma
	}
	cr.FieldsPerRecord = -1 // allow variable width; handled per row below
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv: empty input: no header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	header = stripHeaderBOM(header)
	columns = make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if mapped, ok := r.opt.HeaderMap[name]; ok && mapped != "" {
			name = mapped
		}
		columns[i] = name
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			if r.opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			row[col] = v
		}
		records = append(records, row)
	}
	return columns, records, nil
}
