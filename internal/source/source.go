// Package source abstracts where the survey layout table comes from. The
// compiler core only sees an io.ReadCloser; concrete sources live in
// subpackages.
package source

import (
	"context"
	"io"
)

// Source opens the raw layout data for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
