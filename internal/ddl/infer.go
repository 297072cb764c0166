// Package ddl defines a small, backend-agnostic model for SQL DDL plus a
// helper that infers logical column kinds from an already-coerced table.
//
// The model stays generic: it does not assume any specific SQL dialect.
// Backend-specific packages (e.g., internal/storage/postgres/ddl) map the
// logical kinds produced here onto their dialect's types and render the
// CREATE TABLE statements themselves.
package ddl

import (
	"time"

	"wcetl/pkg/records"
)

// Logical column kinds produced by InferKinds. Backends translate these via
// their MapType.
const (
	KindText      = "text"
	KindBigint    = "bigint"
	KindFloat     = "float"
	KindBool      = "bool"
	KindDate      = "date"
	KindTimestamp = "timestamp"
)

// InferKinds scans every row of t and derives a logical kind per column from
// the coerced Go values it finds.
//
// Rules:
//   - int64 -> bigint, float64 -> float, bool -> bool, string -> text.
//   - time.Time at midnight -> date, otherwise timestamp.
//   - nil cells carry no type information and are skipped.
//   - A column holding both bigint and float values widens to float.
//   - Any other kind conflict, and columns that never hold a non-nil value,
//     fall back to text.
func InferKinds(t *records.Table) map[string]string {
	kinds := make(map[string]string, len(t.Columns))
	for _, r := range t.Rows {
		for _, col := range t.Columns {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			k := kindOf(v)
			prev, seen := kinds[col]
			switch {
			case !seen:
				kinds[col] = k
			case prev == k:
			case (prev == KindBigint && k == KindFloat) || (prev == KindFloat && k == KindBigint):
				kinds[col] = KindFloat
			default:
				kinds[col] = KindText
			}
		}
	}
	for _, col := range t.Columns {
		if _, ok := kinds[col]; !ok {
			kinds[col] = KindText
		}
	}
	return kinds
}

func kindOf(v any) string {
	switch t := v.(type) {
	case int64:
		return KindBigint
	case float64:
		return KindFloat
	case bool:
		return KindBool
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return KindDate
		}
		return KindTimestamp
	default:
		return KindText
	}
}
