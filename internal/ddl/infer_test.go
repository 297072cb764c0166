package ddl

import (
	"testing"
	"time"

	"wcetl/pkg/records"
)

func TestInferKinds(t *testing.T) {
	day := time.Date(2018, 6, 14, 0, 0, 0, 0, time.UTC)
	in := &records.Table{
		Columns: []string{"match_id", "match_date", "home_team_score", "margin", "replay", "kicked_off", "never_set"},
		Rows: []records.Record{
			{
				"match_id":        "M1",
				"match_date":      day,
				"home_team_score": int64(2),
				"margin":          int64(1),
				"replay":          int64(0),
				"kicked_off":      day.Add(15 * time.Hour),
			},
			{
				"match_id":        "M2",
				"match_date":      nil,
				"home_team_score": int64(0),
				"margin":          float64(0.5),
				"replay":          nil,
				"kicked_off":      nil,
			},
		},
	}

	kinds := InferKinds(in)
	want := map[string]string{
		"match_id":        KindText,
		"match_date":      KindDate,
		"home_team_score": KindBigint,
		"margin":          KindFloat, // bigint widened by a float row
		"replay":          KindBigint,
		"kicked_off":      KindTimestamp,
		"never_set":       KindText,
	}
	for col, k := range want {
		if kinds[col] != k {
			t.Errorf("kind(%s) = %q, want %q", col, kinds[col], k)
		}
	}
}

func TestInferKindsConflictFallsBackToText(t *testing.T) {
	in := &records.Table{
		Columns: []string{"x"},
		Rows: []records.Record{
			{"x": int64(1)},
			{"x": "one"},
		},
	}
	if kinds := InferKinds(in); kinds["x"] != KindText {
		t.Fatalf("kind(x) = %q, want text", kinds["x"])
	}
}

func TestInferKindsEmptyTable(t *testing.T) {
	in := &records.Table{Columns: []string{"a", "b"}}
	kinds := InferKinds(in)
	if kinds["a"] != KindText || kinds["b"] != KindText {
		t.Fatalf("kinds = %v, want all text", kinds)
	}
}
