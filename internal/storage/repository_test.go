package storage

import (
	"context"
	"strings"
	"testing"

	"wcetl/pkg/records"
)

// fakeRepo is a minimal in-memory Repository used to exercise the factory
// and bootstrap registries without touching a real backend.
type fakeRepo struct {
	copied [][]any
	execed []string
	closed bool
}

func (f *fakeRepo) CopyFrom(_ context.Context, _ []string, rows [][]any) (int64, error) {
	f.copied = append(f.copied, rows...)
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(_ context.Context, sql string) error {
	f.execed = append(f.execed, sql)
	return nil
}

func (f *fakeRepo) Close() { f.closed = true }

func TestRegisterAndNew(t *testing.T) {
	var got Config
	Register("fake_kind", func(_ context.Context, cfg Config) (Repository, error) {
		got = cfg
		return &fakeRepo{}, nil
	})

	want := Config{
		Kind:    "fake_kind",
		Path:    "out/x.csv",
		Table:   "matches_train",
		Columns: []string{"a", "b"},
	}
	repo, err := New(context.Background(), want)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}
	if got.Path != want.Path || got.Table != want.Table || len(got.Columns) != 2 {
		t.Fatalf("factory saw %+v, want %+v", got, want)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "no_such_backend"})
	if err == nil || !strings.Contains(err.Error(), "no_such_backend") {
		t.Fatalf("err = %v, want unknown-kind error naming the kind", err)
	}
}

func TestEnsureTableDispatch(t *testing.T) {
	var calls int
	RegisterDDL("fake_kind", func(_ context.Context, _ Repository, cfg Config, tbl *records.Table) error {
		calls++
		if cfg.Table != "matches_train" || len(tbl.Columns) != 1 {
			t.Errorf("bootstrapper saw cfg=%+v cols=%v", cfg, tbl.Columns)
		}
		return nil
	})

	tbl := &records.Table{Columns: []string{"match_id"}}
	err := EnsureTable(context.Background(), Config{Kind: "fake_kind", Table: "matches_train"}, &fakeRepo{}, tbl)
	if err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if calls != 1 {
		t.Fatalf("bootstrapper calls = %d, want 1", calls)
	}

	err = EnsureTable(context.Background(), Config{Kind: "unregistered"}, &fakeRepo{}, tbl)
	if err == nil {
		t.Fatalf("EnsureTable for unregistered kind: want error")
	}
}
