// This file derives a Postgres table definition from an already-coerced
// table. It is backend-specific because it maps logical kinds using the
// Postgres MapType.

package ddl

import (
	"fmt"

	gddl "wcetl/internal/ddl"
	"wcetl/pkg/records"
)

// FromTable derives a Postgres-oriented TableDef for the given table name.
//
// Rules:
//   - Columns come from t.Columns, in order.
//   - Column types come from ddl.InferKinds over the coerced values, mapped
//     via MapType.
//   - Every column is nullable: the cleaning pipeline propagates nulls
//     instead of rejecting rows.
func FromTable(t *records.Table, table string) (gddl.TableDef, error) {
	if table == "" {
		return gddl.TableDef{}, fmt.Errorf("postgres ddl: missing table")
	}
	if len(t.Columns) == 0 {
		return gddl.TableDef{}, fmt.Errorf("postgres ddl: table %s has no columns", table)
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
