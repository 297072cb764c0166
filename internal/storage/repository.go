// Package storage contains storage-agnostic contracts and utilities: the
// Repository interface every sink implements, a factory keyed by storage
// kind, a DDL bootstrap registry, and a batched loader.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the write-side contract shared by all storage backends.
type Repository interface {
	// CopyFrom bulk-writes rows aligned to the columns order and reports how
	// many rows the backend accepted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	// Exec runs a raw statement, typically DDL. File-backed sinks treat it
	// as a no-op.
	Exec(ctx context.Context, sql string) error
	Close()
}

// Config carries everything a backend factory needs to open a sink. Database
// sinks use DSN and Table; file sinks use Path. Columns fixes the write order
// for every CopyFrom call against this repository.
type Config struct {
	Kind    string
	Path    string
	DSN     string
	Table   string
	Columns []string
}

// Factory opens a Repository for one storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under the given kind. Backends call it
// from their init functions; a later registration for the same kind replaces
// the earlier one.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return fn(ctx, cfg)
}

// Kinds returns the registered backend names in sorted order.
func Kinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
