package ddl

import (
	"context"

	"wcetl/internal/ddl"
	"wcetl/internal/storage"
)

// EnsureTable creates the target SQL Server table if it does not exist, via
// the repository's Exec method. The generated script carries its own
// OBJECT_ID guard, so repeated application is safe.
func EnsureTable(ctx context.Context, repo storage.Repository, def ddl.TableDef) error {
	sql, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, sql)
}
