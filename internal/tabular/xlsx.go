// Package tabular reads and writes the workbook side of the pipeline:
// XLSX files mapped to and from column-ordered tables.
package tabular

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prebill-link/internal/model"
)

// ReadTable reads the first sheet of an XLSX file into a Table. The first
// row is the header; each following row becomes a column-name->value map.
// Cells beyond the header width are ignored; missing trailing cells are
// treated as empty.
func ReadTable(path string) (*model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "tabular: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("tabular: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("tabular: %s first sheet is empty", path)
	}

	header := rowToStrings(sheet.Rows[0])
	table := &model.Table{Columns: header}

	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		r := make(model.Row, len(header))
		for i, col := range header {
			if i < len(cells) {
				r[col] = cells[i]
			} else {
				r[col] = ""
			}
		}
		table.Rows = append(table.Rows, r)
	}

	return table, nil
}

// WriteTable writes a table to an XLSX file with a single sheet, header
// first, preserving column order. A row whose map lacks a column (the
// no-value Link marker) gets an empty cell there.
func WriteTable(table *model.Table, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		return eris.Wrap(err, "tabular: add sheet")
	}

	headerRow := sheet.AddRow()
	for _, col := range table.Columns {
		headerRow.AddCell().SetString(col)
	}

	for _, row := range table.Rows {
		out := sheet.AddRow()
		for _, col := range table.Columns {
			out.AddCell().SetString(row[col])
		}
	}

	return eris.Wrap(f.Save(path), "tabular: save file")
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
