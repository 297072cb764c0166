package storage

import (
	"context"
	"fmt"
	"sync"

	"wcetl/pkg/records"
)

// DDLBootstrapper is a backend-specific function that prepares the
// destination named by cfg for writes, typically by inferring a table
// definition from the coerced table t and issuing CREATE TABLE IF NOT
// EXISTS via repo.Exec. File-backed sinks register a no-op.
//
// Backends (csv, sqlite, postgres, mssql) register their implementation for
// a given storage kind at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, cfg Config, t *records.Table) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for cfg.Kind and invokes it.
// Callers do not need to know which backend they are using; they pass the
// already-open Repository and the table whose schema the destination must
// accommodate.
//
// If no DDL bootstrapper has been registered for the storage kind, an error
// is returned.
func EnsureTable(ctx context.Context, cfg Config, repo Repository, t *records.Table) error {
	ddlMu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage kind %q", cfg.Kind)
	}
	return fn(ctx, repo, cfg, t)
}
