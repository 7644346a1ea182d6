package model

// Row is one row of an externally supplied workbook, keyed by column name.
// The Link column is special: its absence from the map is the observable
// no-value marker for "no matching record", distinct from a present but
// empty string.
type Row map[string]string

// FileColumn is the join key column and LinkColumn the annotation target.
const (
	FileColumn = "File"
	LinkColumn = "Link"
)

// Table is an ordered tabular dataset: column order is preserved so the
// annotated workbook round-trips the original layout.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends name to the header if not already present.
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Clone returns a deep copy of the table. Reconciliation mutates rows in
// place; callers that need the original intact clone first.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		nr := make(Row, len(row))
		for k, v := range row {
			nr[k] = v
		}
		c.Rows[i] = nr
	}
	return c
}

// Result is the output of one pipeline invocation.
type Result struct {
	Table   *Table            `json:"-"`
	Records []ExtractedRecord `json:"records"`
}
