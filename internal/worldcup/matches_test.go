package worldcup

import (
	"reflect"
	"strings"
	"testing"

	"wcetl/pkg/records"
)

func menOnlySet(t *testing.T) *TournamentSet {
	t.Helper()
	in := table([]string{"tournament_id", "tournament_name", "year"},
		tournamentRow("WC-2018", "FIFA Men's World Cup 2018", int64(2018)),
		tournamentRow("WC-2022", "FIFA Men's World Cup 2022", int64(2022)),
	)
	set, err := QualifyingTournaments(in, Marker)
	if err != nil {
		t.Fatalf("QualifyingTournaments: %v", err)
	}
	return set
}

func TestFilterMatchesKeepsOrder(t *testing.T) {
	set := menOnlySet(t)
	in := table([]string{"match_id", "tournament_id"},
		records.Record{"match_id": "M1", "tournament_id": "WC-2018"},
		records.Record{"match_id": "M2", "tournament_id": "WWC-2019"},
		records.Record{"match_id": "M3", "tournament_id": "WC-2022"},
		records.Record{"match_id": "M4", "tournament_id": "WC-2018"},
		records.Record{"match_id": "M5", "tournament_id": nil},
	)
	out, err := FilterMatches(in, set)
	if err != nil {
		t.Fatalf("FilterMatches: %v", err)
	}
	var ids []string
	for _, r := range out.Rows {
		id, _ := r.Str("match_id")
		ids = append(ids, id)
	}
	if !reflect.DeepEqual(ids, []string{"M1", "M3", "M4"}) {
		t.Fatalf("kept %v", ids)
	}
	if !reflect.DeepEqual(out.Columns, in.Columns) {
		t.Fatalf("columns = %v", out.Columns)
	}
}

func TestFilterMatchesMissingColumn(t *testing.T) {
	_, err := FilterMatches(table([]string{"match_id"}), menOnlySet(t))
	if err == nil || !strings.Contains(err.Error(), "tournament_id") {
		t.Fatalf("err = %v", err)
	}
}

/*
TestAttachYear verifies the left-join semantics: a match of a qualifying
tournament copies that tournament's year, a match of an unknown tournament
gets a nil year, and the year column is appended to the table schema exactly
once.
*/
func TestAttachYear(t *testing.T) {
	set := menOnlySet(t)
	in := table([]string{"match_id", "tournament_id"},
		records.Record{"match_id": "M1", "tournament_id": "WC-2018"},
		records.Record{"match_id": "M2", "tournament_id": "XX-0000"},
		records.Record{"match_id": "M3", "tournament_id": nil},
	)
	AttachYear(in, set)
	if !reflect.DeepEqual(in.Columns, []string{"match_id", "tournament_id", "year"}) {
		t.Fatalf("columns = %v", in.Columns)
	}
	if in.Rows[0]["year"] != int64(2018) {
		t.Fatalf("joined year = %#v", in.Rows[0]["year"])
	}
	if in.Rows[1]["year"] != nil || in.Rows[2]["year"] != nil {
		t.Fatalf("miss years = %#v, %#v, want nils", in.Rows[1]["year"], in.Rows[2]["year"])
	}

	AttachYear(in, set)
	if n := len(in.Columns); n != 3 {
		t.Fatalf("year column duplicated: %v", in.Columns)
	}
}
