// Package builtin contains the transformers applied to parsed match rows.
//
// Coerce is the primary transformer. It turns the raw string cells of the
// configured columns into typed values:
//
//   - date columns    -> time.Time (single layout)
//   - flag columns    -> int64 0/1 via truthy/falsy token sets
//   - number columns  -> int64 when integral, float64 otherwise
//
// Failures never drop a row. A cell that cannot be parsed becomes nil and
// stays in the output as a missing value, which keeps row counts stable
// across the cleaning run and leaves bad cells auditable downstream.
package builtin

import (
	"strconv"
	"strings"
	"time"

	"wcetl/pkg/records"
)

// defaultLayout matches the date format of the source data (ISO calendar date).
const defaultLayout = "2006-01-02"

var (
	truthy = map[string]struct{}{"1": {}, "t": {}, "true": {}, "y": {}, "yes": {}}
	falsy  = map[string]struct{}{"0": {}, "f": {}, "false": {}, "n": {}, "no": {}}
)

// Coerce converts configured columns from raw strings into typed values.
// Cells that fail to parse become nil and the row is kept; columns missing
// from a record are skipped. Already-typed values pass through unchanged, so
// applying Coerce twice is harmless.
type Coerce struct {
	Dates   []string // parsed with Layout into time.Time
	Flags   []string // boolean-like tokens mapped to int64 0/1
	Numbers []string // int64 when integral, float64 otherwise
	Layout  string   // date layout; defaults to defaultLayout
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	layout := c.Layout
	if layout == "" {
		layout = defaultLayout
	}
	for _, r := range in {
		for _, col := range c.Dates {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			if d, err := time.Parse(layout, s); err == nil {
				r[col] = d
			} else {
				r[col] = nil
			}
		}
		for _, col := range c.Flags {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			r[col] = coerceFlag(v)
		}
		for _, col := range c.Numbers {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			r[col] = coerceNumber(v)
		}
	}
	return in
}

// coerceFlag maps a boolean-like value to int64 0/1. Unrecognized tokens
// become nil rather than defaulting to 0, so bad data stays visibly missing.
func coerceFlag(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	case int64:
		if t == 0 || t == 1 {
			return t
		}
		return nil
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if _, ok := truthy[s]; ok {
			return int64(1)
		}
		if _, ok := falsy[s]; ok {
			return int64(0)
		}
		return nil
	default:
		return nil
	}
}

// coerceNumber parses a numeric value, preferring int64 for integral input.
func coerceNumber(v any) any {
	switch t := v.(type) {
	case int64, float64:
		return t
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}
