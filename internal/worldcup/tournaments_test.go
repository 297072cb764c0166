package worldcup

import (
	"reflect"
	"strings"
	"testing"

	"wcetl/pkg/records"
)

func table(cols []string, rows ...records.Record) *records.Table {
	return &records.Table{Columns: cols, Rows: rows}
}

func tournamentRow(id, name string, year any) records.Record {
	return records.Record{"tournament_id": id, "tournament_name": name, "year": year}
}

func TestQualifyingTournaments(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name", "year"},
		tournamentRow("WC-2018", "FIFA Men's World Cup 2018", int64(2018)),
		tournamentRow("WWC-2019", "FIFA Women's World Cup 2019", int64(2019)),
		tournamentRow("WC-2022", "FIFA Men's World Cup 2022", int64(2022)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []string{"WC-2018", "WC-2022"}) {
		t.Fatalf("ids = %v", got)
	}
	if set.Contains("WWC-2019") {
		t.Fatalf("women's tournament qualified")
	}
	if y, ok := set.Year("WC-2018"); !ok || y != int64(2018) {
		t.Fatalf("year(WC-2018) = %#v, %v", y, ok)
	}
}

/*
TestQualifyingMarkerIsCaseSensitive pins the contract that marker matching is
a plain case-sensitive substring test. A lowercased name must not qualify,
and the men's marker must not accidentally match the women's rows through
case folding.
*/
func TestQualifyingMarkerIsCaseSensitive(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name", "year"},
		tournamentRow("WC-1930", "fifa men's world cup 1930", int64(1930)),
		tournamentRow("WC-1934", "FIFA MEN'S WORLD CUP 1934", int64(1934)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("qualified %v, want none", set.IDs())
	}
}

func TestQualifyingDuplicateIDFirstRowWins(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name", "year"},
		tournamentRow("WC-2018", "FIFA Men's World Cup 2018", int64(2018)),
		tournamentRow("WC-2018", "FIFA Men's World Cup 2018 (repeat)", int64(1900)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1", set.Len())
	}
	if y, _ := set.Year("WC-2018"); y != int64(2018) {
		t.Fatalf("year = %#v, want first row's 2018", y)
	}
}

func TestQualifyingSkipsUnusableRows(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name", "year"},
		records.Record{"tournament_id": "WC-2010", "tournament_name": nil, "year": int64(2010)},
		records.Record{"tournament_id": nil, "tournament_name": "FIFA Men's World Cup 2014", "year": int64(2014)},
		tournamentRow("WC-2018", "FIFA Men's World Cup 2018", int64(2018)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []string{"WC-2018"}) {
		t.Fatalf("ids = %v, want only WC-2018", got)
	}
}

func TestQualifyingMissingColumns(t *testing.T) {
	cases := []struct {
		name string
		cols []string
		want string
	}{
		{"no_id", []string{"tournament_name", "year"}, "tournament_id"},
		{"no_name", []string{"tournament_id", "year"}, "tournament_name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := QualifyingTournaments(table(tc.cols), Marker)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestQualifyingEmptyResultIsNotAnError(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name", "year"},
		tournamentRow("CA-2021", "Copa América 2021", int64(2021)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("len = %d, want 0", set.Len())
	}
}

func TestQualifyingMissingYearColumn(t *testing.T) {
	in := table([]string{"tournament_id", "tournament_name"},
		records.Record{"tournament_id": "WC-2018", "tournament_name": "FIFA Men's World Cup 2018"},
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	// year is carried as nil; the split drops such rows later.
	if y, ok := set.Year("WC-2018"); !ok || y != nil {
		t.Fatalf("year = %#v, %v, want nil, true", y, ok)
	}
}
