// This file wires the CSV backend into the storage factory. Registration
// happens in init, so callers obtain the sink through storage.New without
// importing this package directly.

package csvfile

import (
	"context"

	"wcetl/internal/storage"
	"wcetl/pkg/records"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adapts *csvfile.Repository to the storage.Repository interface,
// adding a Close method that calls the cleanup function returned by
// NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// Ensure wrappedRepo satisfies the interface at compile time.
var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("csv", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			Path:    cfg.Path,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	// The header row written at open time is the schema; nothing to create.
	storage.RegisterDDL("csv", func(context.Context, storage.Repository, storage.Config, *records.Table) error {
		return nil
	})
}
