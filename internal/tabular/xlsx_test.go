package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prebill-link/internal/model"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadTable_Basic(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"File", "Client", "Amount"},
		{"A1", "Acme", "100"},
		{"B2", "Beta", "200"},
	})

	table, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"File", "Client", "Amount"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, model.Row{"File": "A1", "Client": "Acme", "Amount": "100"}, table.Rows[0])
	assert.Equal(t, model.Row{"File": "B2", "Client": "Beta", "Amount": "200"}, table.Rows[1])
}

func TestReadTable_ShortRows(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"File", "Client"},
		{"A1"},
	})

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, model.Row{"File": "A1", "Client": ""}, table.Rows[0])
}

func TestReadTable_EmptySheet(t *testing.T) {
	path := createTestXLSX(t, nil)

	_, err := ReadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}

func TestWriteTable_RoundTrip(t *testing.T) {
	table := &model.Table{
		Columns: []string{"File", "Client", "Link"},
		Rows: []model.Row{
			{"File": "A1", "Client": "Acme", "Link": "doc.pdf?pdf=doc.pdf&page=1"},
			{"File": "B2", "Client": "Beta"}, // no-value Link
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteTable(table, path))

	got, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, table.Columns, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "doc.pdf?pdf=doc.pdf&page=1", got.Rows[0]["Link"])
	assert.Equal(t, "", got.Rows[1]["Link"])
	// Original cells round-trip untouched.
	assert.Equal(t, "Acme", got.Rows[0]["Client"])
	assert.Equal(t, "B2", got.Rows[1]["File"])
}
