// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "csv"      (wcetl/internal/storage/csvfile), the default sink
//   - "sqlite"   (wcetl/internal/storage/sqlite)
//   - "postgres" (wcetl/internal/storage/postgres)
//   - "mssql"    (wcetl/internal/storage/mssql)
//
// Typical usage (in cmd/wcclean/main.go or a similar wiring layer):
//
//	import _ "wcetl/internal/storage/all" // enable all built-in backends
//
// Binaries that need only a subset of backends can blank-import the
// individual backend packages instead.
package all

import (
	_ "wcetl/internal/storage/csvfile"
	_ "wcetl/internal/storage/mssql"
	_ "wcetl/internal/storage/postgres"
	_ "wcetl/internal/storage/sqlite"
)
