package records

// Table is an in-memory tabular dataset: ordered column names plus rows.
// Column order is preserved from the source file so that writers can emit
// the same layout they read.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether name is among the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the column list unless it is already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// RowValues projects a row onto the table's column order. Missing cells
// yield nil, keeping the slice aligned with Columns.
func (t *Table) RowValues(r Record) []any {
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = r[c]
	}
	return out
}
