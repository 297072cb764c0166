package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(tb testing.TB, name, content string) string {
	tb.Helper()
	p := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestHashLineStripsCR(t *testing.T) {
	t.Parallel()

	h1, l1 := hashLine([]byte("a,b,c\r"))
	h2, l2 := hashLine([]byte("a,b,c"))
	if h1 != h2 {
		t.Fatalf("CRLF and LF forms of the same line must hash equal")
	}
	if string(l1) != "a,b,c" || string(l2) != "a,b,c" {
		t.Fatalf("stripped lines = %q / %q", l1, l2)
	}
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "base.csv", "match_id,year\nM1,2018\nM2,2022\n")
	idx, err := buildIndex(base)
	if err != nil {
		t.Fatalf("buildIndex: %v", err)
	}

	for _, line := range []string{"match_id,year", "M1,2018", "M2,2022"} {
		h, _ := hashLine([]byte(line))
		if _, ok := idx[h]; !ok {
			t.Fatalf("index missing %q", line)
		}
	}
	h, _ := hashLine([]byte("M3,1930"))
	if _, ok := idx[h]; ok {
		t.Fatal("index contains a line that is not in the base file")
	}
}

func TestSplitRanges(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		size   int64
		parts  int
		minBlk int64
		want   []fileRange
	}{
		{name: "empty file", size: 0, parts: 4, minBlk: 1, want: nil},
		{
			name: "even split", size: 100, parts: 4, minBlk: 1,
			want: []fileRange{{0, 25}, {25, 50}, {50, 75}, {75, 100}},
		},
		{
			name: "minBlk overrides small chunks", size: 100, parts: 10, minBlk: 30,
			want: []fileRange{{0, 30}, {30, 60}, {60, 90}, {90, 100}},
		},
		{
			name: "parts below one treated as one", size: 10, parts: 0, minBlk: 1,
			want: []fileRange{{0, 10}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitRanges(tc.size, tc.parts, tc.minBlk)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ranges = %#v, want %#v", got, tc.want)
			}
		})
	}
}

/*
TestScanRange covers the newline-aligned range walk: the file's first line
belongs to no range (the caller emits it as the header), ranges tile without
duplicating or losing boundary-spanning lines, and a final unterminated line
is still scanned.
*/
func TestScanRange(t *testing.T) {
	t.Parallel()

	idx := map[uint64]struct{}{}
	for _, s := range []string{"a", "b", "c"} {
		h, _ := hashLine([]byte(s))
		idx[h] = struct{}{}
	}

	data := []byte("header\na\nd\nb\ne")
	r := bytes.NewReader(data)
	size := int64(len(data))

	out, err := scanRange(r, size, fileRange{0, size}, idx)
	if err != nil {
		t.Fatalf("scanRange: %v", err)
	}
	if got := string(out); got != "d\ne\n" {
		t.Fatalf("out = %q, want %q", got, "d\ne\n")
	}
}

func TestScanRangeTilesWithoutLoss(t *testing.T) {
	t.Parallel()

	// Nothing indexed: every non-header line must come out exactly once,
	// regardless of where the raw range boundaries land.
	data := []byte("header\nrow-one\nrow-two\nrow-three\n")
	r := bytes.NewReader(data)
	size := int64(len(data))

	for cut := int64(1); cut < size; cut++ {
		var got []byte
		for _, rg := range []fileRange{{0, cut}, {cut, size}} {
			out, err := scanRange(r, size, rg, map[uint64]struct{}{})
			if err != nil {
				t.Fatalf("cut %d: scanRange: %v", cut, err)
			}
			got = append(got, out...)
		}
		if string(got) != "row-one\nrow-two\nrow-three\n" {
			t.Fatalf("cut %d: out = %q", cut, got)
		}
	}
}

func TestDiffFiles(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "base.csv",
		"match_id,year\nM1,2018\nM2,2022\n")
	other := writeFile(t, "other.csv",
		"match_id,year\nM1,2018\nM3,1930\nM2,2022\nM4,2014\n")

	var buf bytes.Buffer
	if err := diffFiles(base, other, 4, 1, &buf); err != nil {
		t.Fatalf("diffFiles: %v", err)
	}

	want := "match_id,year\nM3,1930\nM4,2014\n"
	if buf.String() != want {
		t.Fatalf("diff = %q, want %q", buf.String(), want)
	}
}

func TestDiffFilesIdentical(t *testing.T) {
	t.Parallel()

	content := "match_id,year\nM1,2018\nM2,2022\n"
	base := writeFile(t, "base.csv", content)
	other := writeFile(t, "other.csv", content)

	var buf bytes.Buffer
	if err := diffFiles(base, other, 2, 1, &buf); err != nil {
		t.Fatalf("diffFiles: %v", err)
	}
	if buf.String() != "match_id,year\n" {
		t.Fatalf("identical files should diff to the header only, got %q", buf.String())
	}
}

func TestDiffFilesCRLFOther(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "base.csv", "match_id,year\nM1,2018\n")
	other := writeFile(t, "other.csv", "match_id,year\r\nM1,2018\r\nM9,1930\r\n")

	var buf bytes.Buffer
	if err := diffFiles(base, other, 2, 1, &buf); err != nil {
		t.Fatalf("diffFiles: %v", err)
	}

	// The CRLF copy of M1 matches the LF base line; only M9 is new. The
	// header is re-emitted as read (CR intact), the diffed rows are printed
	// in stripped form.
	if !strings.HasSuffix(buf.String(), "M9,1930\n") {
		t.Fatalf("diff = %q, want it to end with the stripped M9 row", buf.String())
	}
	if strings.Contains(buf.String(), "M1,2018") {
		t.Fatalf("diff = %q: matching CRLF row must not be printed", buf.String())
	}
}

func TestDiffFilesMissingInput(t *testing.T) {
	t.Parallel()

	ok := writeFile(t, "base.csv", "match_id\n")
	var buf bytes.Buffer
	if err := diffFiles(filepath.Join(t.TempDir(), "nope.csv"), ok, 1, 1, &buf); err == nil {
		t.Fatal("missing base: want error")
	}
	if err := diffFiles(ok, filepath.Join(t.TempDir(), "nope.csv"), 1, 1, &buf); err == nil {
		t.Fatal("missing other: want error")
	}
}
