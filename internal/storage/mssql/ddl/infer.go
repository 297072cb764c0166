// This file derives a SQL Server table definition from an already-coerced
// table, mapping logical kinds via the MSSQL MapType.

package ddl

import (
	"fmt"

	gddl "wcetl/internal/ddl"
	"wcetl/pkg/records"
)

// FromTable derives an MSSQL-oriented TableDef for the given table name.
// Columns come from t.Columns in order, types from ddl.InferKinds mapped via
// MapType, and every column is nullable.
func FromTable(t *records.Table, table string) (gddl.TableDef, error) {
	if table == "" {
		return gddl.TableDef{}, fmt.Errorf("mssql ddl: missing table")
	}
	if len(t.Columns) == 0 {
		return gddl.TableDef{}, fmt.Errorf("mssql ddl: table %s has no columns", table)
	}

	kinds := gddl.InferKinds(t)
	defs := make([]gddl.ColumnDef, 0, len(t.Columns))
	for _, name := range t.Columns {
		defs = append(defs, gddl.ColumnDef{
			Name:     name,
			SQLType:  MapType(kinds[name]),
			Nullable: true,
		})
	}

	return gddl.TableDef{
		FQN:     table,
		Columns: defs,
	}, nil
}
