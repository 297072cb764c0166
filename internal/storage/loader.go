// This file implements a generic, batched loader that walks an in-memory row
// set and invokes a provided bulk-insert function (CopyFn) per batch.
//
// Backends (CSV file, SQLite, Postgres, MSSQL) implement CopyFn using their
// most efficient primitives (e.g., Postgres COPY, csv.Writer).
//
// Logging: on every successful flush, a concise progress line is emitted with
// running totals and instantaneous rows/sec since the previous flush.

package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CopyFn abstracts a backend's bulk write capability. Implementations should
// write the provided rows (aligned to 'columns' order) and return the number
// of rows reported as written. The function should be safe for repeated calls
// and cancel promptly when ctx is done.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches walks rows in order, groups them into batches of size
// 'batchSize', and calls 'copyFn' for each non-empty batch. It returns the
// total number of rows reported by copyFn and the first error encountered.
//
// Cancellation: returns (total, ctx.Err()) when canceled between batches.
// Progress is logged on each successful flush.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total       int64
		batches     int64
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	flush := func(batch [][]any) error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, batch)
		total += n

		if err != nil {
			log.Printf("loader: write failed after=%d total=%d err=%v", n, total, err)

			return err
		}

		// Progress log per successful batch.
		batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		writtenSinceLast := total - lastTotal
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(writtenSinceLast) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f written=%d total_written=%d elapsed=%s since_last=%s",
			batches,
			rps,
			n,
			total,
			now.Sub(start).Truncate(time.Millisecond),
			sinceLast.Truncate(time.Millisecond),
		)
		lastFlushTS = now
		lastTotal = total

		return nil
	}

	for i := 0; i < len(rows); i += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := flush(rows[i:end]); err != nil {
			return total, err
		}
	}
	return total, nil
}
