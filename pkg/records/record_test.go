package records

import "testing"

func TestStr(t *testing.T) {
	r := Record{"a": "x", "b": nil, "c": int64(1)}

	if s, ok := r.Str("a"); !ok || s != "x" {
		t.Fatalf("Str(a) = %q, %v; want %q, true", s, ok, "x")
	}
	if _, ok := r.Str("b"); ok {
		t.Fatalf("Str(b) ok = true, want false for nil value")
	}
	if _, ok := r.Str("c"); ok {
		t.Fatalf("Str(c) ok = true, want false for non-string value")
	}
	if _, ok := r.Str("missing"); ok {
		t.Fatalf("Str(missing) ok = true, want false")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := Record{"a": "x"}
	c := r.Clone()
	c["a"] = "y"
	if r["a"] != "x" {
		t.Fatalf("mutating clone changed original: %v", r["a"])
	}
}

func TestTableColumns(t *testing.T) {
	tbl := &Table{Columns: []string{"match_id", "tournament_id"}}

	if !tbl.HasColumn("match_id") {
		t.Fatalf("HasColumn(match_id) = false")
	}
	if tbl.HasColumn("year") {
		t.Fatalf("HasColumn(year) = true before AddColumn")
	}

	tbl.AddColumn("year")
	tbl.AddColumn("year") // idempotent
	if got := len(tbl.Columns); got != 3 {
		t.Fatalf("len(Columns) = %d, want 3", got)
	}
	if tbl.Columns[2] != "year" {
		t.Fatalf("Columns[2] = %q, want year", tbl.Columns[2])
	}
}

func TestRowValuesAlignment(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b", "c"}}
	row := Record{"a": "1", "c": int64(3)}

	vals := tbl.RowValues(row)
	if len(vals) != 3 {
		t.Fatalf("len(vals) = %d, want 3", len(vals))
	}
	if vals[0] != "1" || vals[1] != nil || vals[2] != int64(3) {
		t.Fatalf("RowValues = %#v", vals)
	}
}
