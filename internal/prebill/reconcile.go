package prebill

import "github.com/sells-group/prebill-link/internal/model"

// Reconcile left-joins table rows against records on the File column,
// writing each match's reference into the row's Link column. Rows are
// mutated in place; order and all other columns are untouched. When the
// key is not unique the first record in sequence order wins. An unmatched
// row gets the no-value marker: its Link key is removed (clearing any
// stale value from the input workbook). The Link column is always present
// in the header afterwards.
func Reconcile(table *model.Table, records []model.ExtractedRecord) *model.Table {
	table.EnsureColumn(model.LinkColumn)

	for _, row := range table.Rows {
		key, hasKey := row[model.FileColumn]
		if !hasKey {
			delete(row, model.LinkColumn)
			continue
		}
		if ref, ok := findReference(records, key); ok {
			row[model.LinkColumn] = ref
		} else {
			delete(row, model.LinkColumn)
		}
	}
	return table
}

// findReference returns the reference of the first record whose FileID
// matched and equals key exactly. No normalization is applied.
func findReference(records []model.ExtractedRecord, key string) (string, bool) {
	for _, rec := range records {
		if rec.FileID.Valid && rec.FileID.Value == key {
			return rec.Reference, true
		}
	}
	return "", false
}
