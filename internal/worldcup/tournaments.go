// Package worldcup implements the domain steps of the cleaning pipeline:
// selecting the men's World Cup tournaments, filtering matches down to them,
// attaching each tournament's year, and splitting the result into the train
// and test eras.
package worldcup

import (
	"fmt"
	"strings"

	"wcetl/pkg/records"
)

// Marker is the substring that identifies a men's World Cup tournament.
// Matching is case-sensitive so that "FIFA Women's World Cup" rows never
// qualify.
const Marker = "FIFA Men's World Cup"

// Era bounds for the split. The training era covers every edition from the
// first World Cup through 2018; the test partition is the 2022 edition alone.
const (
	TrainStartYear = 1930
	TrainEndYear   = 2018
	TestYear       = 2022
)

// TournamentSet is the ordered set of qualifying tournaments together with
// the year each one was held. Order follows first appearance in the source
// table, and the first row wins when an id repeats.
type TournamentSet struct {
	ids   []string
	years map[string]any
}

func (s *TournamentSet) Len() int { return len(s.ids) }

// IDs returns the qualifying tournament ids in source order.
func (s *TournamentSet) IDs() []string { return append([]string(nil), s.ids...) }

func (s *TournamentSet) Contains(id string) bool { _, ok := s.years[id]; return ok }

// Year returns the year recorded for id, nil when the tournament row carried
// no usable year. The second result reports membership.
func (s *TournamentSet) Year(id string) (any, bool) {
	y, ok := s.years[id]
	return y, ok
}

// QualifyingTournaments scans the tournament table once and collects every
// tournament whose name contains marker. An empty result is not an error;
// missing tournament_id or tournament_name columns are.
func QualifyingTournaments(tournaments *records.Table, marker string) (*TournamentSet, error) {
	for _, col := range []string{"tournament_id", "tournament_name"} {
		if !tournaments.HasColumn(col) {
			return nil, fmt.Errorf("tournaments: missing column %q", col)
		}
	}
	set := &TournamentSet{years: make(map[string]any)}
	for _, r := range tournaments.Rows {
		name, ok := r.Str("tournament_name")
		if !ok || !strings.Contains(name, marker) {
			continue
		}
		id, ok := r.Str("tournament_id")
		if !ok {
			continue
		}
		if _, seen := set.years[id]; seen {
			continue
		}
		set.ids = append(set.ids, id)
		set.years[id] = r["year"]
	}
	return set, nil
}
