package builtin

import (
	"strings"

	"wcetl/pkg/records"
)

// Normalize trims surrounding whitespace from every string cell, folds
// non-breaking spaces into plain spaces, and turns cells that end up empty
// into nil.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			if s, ok := v.(string); ok {
				s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
				if s == "" {
					r[k] = nil
					continue
				}
				r[k] = s
			}
		}
	}
	return in
}
