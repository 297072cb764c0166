package csv_test

import (
	"strings"
	"testing"

	pcsv "wcetl/internal/parser/csv"
)

func TestParseHeaderAndOrder(t *testing.T) {
	in := "match_id,tournament_id,match_date\nM1,WC-2018,2018-06-14\nM2,WC-2018,2018-06-15\n"

	p := pcsv.NewParser(pcsv.Options{Comma: ',', TrimSpace: true})
	tbl, ragged, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ragged != 0 {
		t.Fatalf("ragged=%d want 0", ragged)
	}
	want := []string{"match_id", "tournament_id", "match_date"}
	for i, c := range want {
		if tbl.Columns[i] != c {
			t.Fatalf("Columns[%d]=%q want %q", i, tbl.Columns[i], c)
		}
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(tbl.Rows))
	}
	// Row order must be preserved from the file.
	if tbl.Rows[0]["match_id"] != "M1" || tbl.Rows[1]["match_id"] != "M2" {
		t.Fatalf("row order not preserved: %v, %v", tbl.Rows[0]["match_id"], tbl.Rows[1]["match_id"])
	}
}

func TestParseNormalizesHeaders(t *testing.T) {
	// BOM on the first cell, mixed case, spaces, and an accented name.
	in := "﻿Match ID,Tournament Náme\nM1,FIFA World Cup\n"

	tbl, _, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Columns[0] != "match_id" {
		t.Fatalf("Columns[0]=%q want match_id", tbl.Columns[0])
	}
	if tbl.Columns[1] != "tournament_name" {
		t.Fatalf("Columns[1]=%q want tournament_name", tbl.Columns[1])
	}
	if tbl.Rows[0]["match_id"] != "M1" {
		t.Fatalf("match_id=%v want M1", tbl.Rows[0]["match_id"])
	}
}

func TestParseEmptyCellsBecomeNil(t *testing.T) {
	in := "match_id,home_team_score\nM1,\nM2,3\n"

	tbl, _, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Rows[0]["home_team_score"] != nil {
		t.Fatalf("empty cell = %v, want nil", tbl.Rows[0]["home_team_score"])
	}
	if tbl.Rows[1]["home_team_score"] != "3" {
		t.Fatalf("cell = %v, want \"3\"", tbl.Rows[1]["home_team_score"])
	}
}

func TestParseQuotedFields(t *testing.T) {
	in := "tournament_id,tournament_name\nWC-2018,\"FIFA Men's World Cup 2018\"\nCOPA-2019,\"Copa, América\"\n"

	tbl, _, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := tbl.Rows[0]["tournament_name"]; got != "FIFA Men's World Cup 2018" {
		t.Fatalf("name=%q", got)
	}
	if got := tbl.Rows[1]["tournament_name"]; got != "Copa, América" {
		t.Fatalf("embedded comma lost: %q", got)
	}
}

func TestParseRaggedRows(t *testing.T) {
	// Second data row is short, third has an extra trailing field.
	in := "a,b,c\n1,2,3\n4,5\n6,7,8,9\n"

	tbl, ragged, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ragged != 2 {
		t.Fatalf("ragged=%d want 2", ragged)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows=%d want 3 (ragged rows are kept)", len(tbl.Rows))
	}
	if tbl.Rows[1]["c"] != nil {
		t.Fatalf("short row pad = %v, want nil", tbl.Rows[1]["c"])
	}
	if tbl.Rows[2]["col_3"] != "9" {
		t.Fatalf("overflow cell = %v, want \"9\"", tbl.Rows[2]["col_3"])
	}
}

func TestParseHeaderOnly(t *testing.T) {
	tbl, _, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Fatalf("rows=%d want 0", len(tbl.Rows))
	}
	if len(tbl.Columns) != 2 {
		t.Fatalf("columns=%d want 2", len(tbl.Columns))
	}
}
