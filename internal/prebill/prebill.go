// Package prebill implements the pre-bill extraction and reconciliation
// pipeline: segmenting raw document text into per-record blocks, parsing
// each block into a structured record, and annotating an externally
// supplied table with deep links back into the source document.
package prebill

import "github.com/sells-group/prebill-link/internal/model"

// Run executes the full pipeline: Segment -> Extract -> Reconcile. It is a
// pure function of its inputs and performs no I/O; reading the PDF text
// and the workbook, and writing the result, belong to the caller. Raw text
// with no markers yields zero records and every row carries the no-value
// Link marker.
func Run(rawText, sourceName string, table *model.Table) model.Result {
	blocks := Segment(rawText)
	records := Extract(blocks, sourceName)
	Reconcile(table, records)
	return model.Result{Table: table, Records: records}
}

// Matched counts the rows of table that carry a Link value.
func Matched(table *model.Table) int {
	n := 0
	for _, row := range table.Rows {
		if _, ok := row[model.LinkColumn]; ok {
			n++
		}
	}
	return n
}
