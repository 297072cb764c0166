// Package file implements a local filesystem-backed data source. Both pipeline
// inputs (matches, tournaments) are read through it; a missing input surfaces
// here as a wrapped os.ErrNotExist before anything is written downstream.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source bound to one path.
type Local struct{ path string }

// NewLocal returns a Local data source for the given path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured filesystem path. Used for log and error text.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading.
//
// If ctx is already canceled, Open returns the context error without touching
// the filesystem. Filesystem errors are wrapped with the path while remaining
// visible to errors.Is (e.g. errors.Is(err, os.ErrNotExist) for a missing
// input file).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
