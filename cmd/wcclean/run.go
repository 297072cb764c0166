// This file implements the cleaning run: load → qualify → filter → join →
// coerce → split → persist, with row accounting and an end-of-run summary.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"wcetl/internal/checksum"
	"wcetl/internal/config"
	"wcetl/internal/datasource"
	"wcetl/internal/datasource/file"
	"wcetl/internal/metrics"
	csvparser "wcetl/internal/parser/csv"
	"wcetl/internal/storage"
	"wcetl/internal/transformer"
	"wcetl/internal/transformer/builtin"
	"wcetl/internal/worldcup"
	"wcetl/pkg/records"
)

// defaultBatchSize is used when the configured batch size is non-positive.
const defaultBatchSize = 5000

// The match columns coerced during cleaning. Columns absent from the input
// are skipped, so schema drift in the raw export does not abort a run.
var (
	flagColumns = []string{
		"group_stage", "knockout_stage", "replayed", "replay", "extra_time",
		"penalty_shootout", "home_team_win", "away_team_win", "draw",
	}
	scoreColumns = []string{
		"home_team_score", "away_team_score",
		"home_team_score_margin", "away_team_score_margin",
		"home_team_score_penalties", "away_team_score_penalties",
	}
)

// counters holds per-run row accounting for the summary. The run is
// single-threaded, so plain ints suffice.
type counters struct {
	matchesRead     int
	tournamentsRead int
	qualifying      int
	filtered        int
	train           int
	test            int
	dropped         int
	written         int64
}

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	openSourceFn = openSource
)

// openSource opens one local input file for reading.
func openSource(ctx context.Context, path string) (io.ReadCloser, error) {
	var src datasource.Source = file.NewLocal(path)
	return src.Open(ctx)
}

// loadTable opens and parses one CSV input in full.
func loadTable(ctx context.Context, path string) (*records.Table, error) {
	src, err := openSourceFn(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	t, ragged, err := csvparser.NewParser(csvparser.Options{}).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if ragged > 0 {
		log.Printf("parse %s: %d ragged rows padded", path, ragged)
	}
	return t, nil
}

// run executes the cleaning pipeline end to end. Both inputs are read in full
// before any output is opened, so a missing or unreadable file can never
// leave partial results behind. Per-cell problems never abort the run; they
// become nulls during coercion.
func run(ctx context.Context, p config.Pipeline, runID string) error {
	start := time.Now()
	var c counters

	batchSize := pickInt(p.Runtime.BatchSize, defaultBatchSize)

	log.Printf("run id=%s job=%s storage=%s batch=%d", runID, p.Job, p.Storage.Kind, batchSize)

	// Load.
	t0 := time.Now()
	matches, err := loadTable(ctx, p.Inputs.Matches)
	if err != nil {
		metrics.RecordStep(p.Job, "load", err, time.Since(t0))
		return fmt.Errorf("load matches: %w", err)
	}
	tournaments, err := loadTable(ctx, p.Inputs.Tournaments)
	metrics.RecordStep(p.Job, "load", err, time.Since(t0))
	if err != nil {
		return fmt.Errorf("load tournaments: %w", err)
	}
	c.matchesRead = len(matches.Rows)
	c.tournamentsRead = len(tournaments.Rows)
	metrics.RecordRow(p.Job, "matches_read", int64(c.matchesRead))
	metrics.RecordRow(p.Job, "tournaments_read", int64(c.tournamentsRead))
	log.Printf("load: matches=%d tournaments=%d elapsed=%s",
		c.matchesRead, c.tournamentsRead, time.Since(t0).Truncate(time.Millisecond))

	// Qualify. Tournament years pass through the same numeric coercion the
	// match columns get, so the split sees typed years after the join.
	t0 = time.Now()
	builtin.Coerce{Numbers: []string{"year"}, Layout: p.Dates.Layout}.Apply(tournaments.Rows)
	set, err := worldcup.QualifyingTournaments(tournaments, p.Filter.NameContains)
	metrics.RecordStep(p.Job, "qualify", err, time.Since(t0))
	if err != nil {
		return fmt.Errorf("qualify tournaments: %w", err)
	}
	c.qualifying = set.Len()
	log.Printf("qualify: marker=%q tournaments=%d", p.Filter.NameContains, c.qualifying)

	// Filter.
	t0 = time.Now()
	filtered, err := worldcup.FilterMatches(matches, set)
	metrics.RecordStep(p.Job, "filter", err, time.Since(t0))
	if err != nil {
		return fmt.Errorf("filter matches: %w", err)
	}
	c.filtered = len(filtered.Rows)
	metrics.RecordRow(p.Job, "filtered", int64(c.filtered))
	log.Printf("filter: kept=%d of %d", c.filtered, c.matchesRead)

	// Join.
	t0 = time.Now()
	worldcup.AttachYear(filtered, set)
	metrics.RecordStep(p.Job, "join", nil, time.Since(t0))

	// Coerce. Normalize runs first so coercion sees trimmed cells.
	t0 = time.Now()
	chain := transformer.Chain{
		builtin.Normalize{},
		builtin.Coerce{
			Dates:   []string{"match_date"},
			Flags:   flagColumns,
			Numbers: scoreColumns,
			Layout:  p.Dates.Layout,
		},
	}
	filtered.Rows = chain.Apply(filtered.Rows)
	metrics.RecordStep(p.Job, "coerce", nil, time.Since(t0))

	// Split.
	t0 = time.Now()
	train, test, dropped := worldcup.SplitByYear(
		filtered,
		int64(p.Split.TrainFromYear),
		int64(p.Split.TrainToYear),
		int64(p.Split.TestYear),
	)
	metrics.RecordStep(p.Job, "split", nil, time.Since(t0))
	c.train = len(train.Rows)
	c.test = len(test.Rows)
	c.dropped = dropped
	metrics.RecordRow(p.Job, "train", int64(c.train))
	metrics.RecordRow(p.Job, "test", int64(c.test))
	metrics.RecordRow(p.Job, "dropped", int64(c.dropped))
	log.Printf("split: train=%d test=%d dropped=%d", c.train, c.test, c.dropped)

	// Persist.
	t0 = time.Now()
	trainDest, err := persistPartition(ctx, p, "train", p.Storage.Train, train, batchSize, &c)
	if err != nil {
		metrics.RecordStep(p.Job, "persist", err, time.Since(t0))
		return err
	}
	testDest, err := persistPartition(ctx, p, "test", p.Storage.Test, test, batchSize, &c)
	metrics.RecordStep(p.Job, "persist", err, time.Since(t0))
	if err != nil {
		return err
	}
	metrics.RecordRow(p.Job, "written", c.written)

	logSummary(&c)

	log.Printf("Wrote train set to: %s", trainDest)
	log.Printf("Wrote test set to:  %s", testDest)

	if p.Storage.Kind == "csv" {
		for _, path := range []string{trainDest, testDest} {
			digest, err := checksum.File(path)
			if err != nil {
				log.Printf("checksum %s: %v", path, err)
				continue
			}
			log.Printf("checksum %s: xxh3=%s", path, digest)
		}
	}

	log.Printf("run id=%s finished in %s", runID, time.Since(start).Truncate(time.Millisecond))
	return nil
}

// persistPartition writes one partition through the configured storage
// backend and returns the destination (file path or table name) for the
// summary lines.
func persistPartition(
	ctx context.Context,
	p config.Pipeline,
	name string,
	target config.Target,
	t *records.Table,
	batchSize int,
	c *counters,
) (string, error) {
	cfg := storage.Config{
		Kind:    p.Storage.Kind,
		Path:    target.Path,
		DSN:     p.Storage.DB.DSN,
		Table:   target.Table,
		Columns: t.Columns,
	}

	repo, err := newRepositoryFn(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("open %s storage: %w", name, err)
	}
	defer repo.Close()

	if p.Storage.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, cfg, repo, t); err != nil {
			return "", fmt.Errorf("apply DDL for %s: %w", name, err)
		}
	}

	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = t.RowValues(r)
	}

	written, err := storage.LoadBatches(ctx, t.Columns, rows, batchSize, repo.CopyFrom)
	c.written += written
	if err != nil {
		return "", fmt.Errorf("write %s partition: %w", name, err)
	}
	metrics.RecordBatches(p.Job, (int64(len(rows))+int64(batchSize)-1)/int64(batchSize))

	dest := target.Path
	if p.Storage.Kind != "csv" {
		dest = target.Table
	}
	return dest, nil
}

// logSummary prints final aggregated statistics for the run.
//
// The core invariant is conservation across the split:
//
//	filtered == train + test + dropped
//
// and, when every partition write succeeds, written == train + test.
func logSummary(c *counters) {
	log.Printf(
		"summary: matches_read=%d tournaments_read=%d qualifying=%d filtered=%d train=%d test=%d dropped=%d written=%d",
		c.matchesRead, c.tournamentsRead, c.qualifying, c.filtered, c.train, c.test, c.dropped, c.written,
	)

	if accounted := c.train + c.test + c.dropped; accounted != c.filtered {
		log.Printf(
			"WARNING: row accounting mismatch: filtered=%d accounted=%d (delta=%d)",
			c.filtered, accounted, c.filtered-accounted,
		)
	}
}

// pickInt chooses the first positive value 'a', otherwise returns 'b'.
func pickInt(a, b int) int {
	if a > 0 {
		return a
	}
	return b
}
