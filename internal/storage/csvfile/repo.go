// Package csvfile implements a CSV file-backed storage.Repository. It is the
// default sink of the cleaning pipeline: one repository writes one output
// file, the header row is emitted at open time, and every CopyFrom appends
// data rows in the fixed column order.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// dateLayout is how date cells are rendered in the output files.
const dateLayout = "2006-01-02"

// Config holds CSV sink configuration.
type Config struct {
	// Path is the destination file, created or truncated at open so reruns
	// fully overwrite previous output.
	Path string

	// Columns is the ordered list of output columns, written as the header
	// row at open time.
	Columns []string
}

// Repository is a CSV file-backed implementation of storage.Repository.
type Repository struct {
	f   *os.File
	w   *csv.Writer
	cfg Config
}

// NewRepository creates (or truncates) the destination file, writes the
// header row, and returns a Repository plus a Close function for cleanup.
// Missing parent directories are created.
func NewRepository(_ context.Context, cfg Config) (*Repository, func(), error) {
	if cfg.Path == "" {
		return nil, nil, fmt.Errorf("csvfile: path must not be empty")
	}
	if len(cfg.Columns) == 0 {
		return nil, nil, fmt.Errorf("csvfile: columns must not be empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("csvfile: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("csvfile: create %s: %w", cfg.Path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(cfg.Columns); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csvfile: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csvfile: write header: %w", err)
	}

	repo := &Repository{f: f, w: w, cfg: cfg}
	closeFn := func() { repo.close() }
	return repo, closeFn, nil
}

// CopyFrom appends the given rows to the file and flushes. Values must be
// aligned to the column order fixed at open time; len(row) must equal
// len(columns) for every row.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(columns) != len(r.cfg.Columns) {
		return 0, fmt.Errorf("csvfile: CopyFrom: got %d columns, file has %d", len(columns), len(r.cfg.Columns))
	}

	var written int64
	record := make([]string, len(columns))
	for _, row := range rows {
		if len(row) != len(columns) {
			return written, fmt.Errorf("csvfile: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := r.w.Write(record); err != nil {
			return written, fmt.Errorf("csvfile: write row: %w", err)
		}
		written++
	}

	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return written, fmt.Errorf("csvfile: flush: %w", err)
	}
	return written, nil
}

// Exec is a no-op: the header row written at open time is the whole schema of
// a CSV file.
func (r *Repository) Exec(context.Context, string) error { return nil }

func (r *Repository) close() {
	r.w.Flush()
	_ = r.f.Close()
}

// formatValue renders a cell for CSV output. nil becomes the empty cell,
// integral numbers render without a decimal point, and dates use dateLayout.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return t.Format(dateLayout)
	default:
		return fmt.Sprint(t)
	}
}
