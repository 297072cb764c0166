// Package records defines the row and table shapes shared by the parser,
// transformers, and storage backends.
package records

// Record is one parsed row keyed by normalized column name. Parsers produce
// string values with nil for missing cells; coercion may replace them with
// int64, float64, or time.Time.
type Record map[string]any

// Str returns the value for key as a string. The second result is false when
// the value is absent, nil, or not a string.
func (r Record) Str(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
