// This adapter wires the MSSQL backend into the storage factory; registration
// happens in init so callers stay backend-agnostic.

package mssql

import (
	"context"
	"fmt"

	"wcetl/internal/storage"
	msddl "wcetl/internal/storage/mssql/ddl"
	"wcetl/pkg/records"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

// wrappedRepo adapts *mssql.Repository to the storage.Repository interface.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Ensure wrappedRepo satisfies storage.Repository at compile time.
var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mssql",
		func(ctx context.Context, repo storage.Repository, cfg storage.Config, t *records.Table) error {
			td, err := msddl.FromTable(t, cfg.Table)
			if err != nil {
				return fmt.Errorf("infer table definition: %w", err)
			}
			return msddl.EnsureTable(ctx, repo, td)
		})
}
