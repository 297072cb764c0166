package worldcup

import (
	"fmt"

	"wcetl/pkg/records"
)

// FilterMatches retains the match rows whose tournament_id belongs to set,
// preserving source order. Rows with a missing or empty id never match.
func FilterMatches(matches *records.Table, set *TournamentSet) (*records.Table, error) {
	if !matches.HasColumn("tournament_id") {
		return nil, fmt.Errorf("matches: missing column %q", "tournament_id")
	}
	out := &records.Table{Columns: append([]string(nil), matches.Columns...)}
	for _, r := range matches.Rows {
		id, ok := r.Str("tournament_id")
		if !ok || !set.Contains(id) {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// AttachYear appends a year column to every row, copying the year of the
// row's tournament from set. A row whose tournament is not in the set gets a
// nil year rather than an error.
func AttachYear(matches *records.Table, set *TournamentSet) {
	matches.AddColumn("year")
	for _, r := range matches.Rows {
		id, ok := r.Str("tournament_id")
		if !ok {
			r["year"] = nil
			continue
		}
		y, _ := set.Year(id)
		r["year"] = y
	}
}
