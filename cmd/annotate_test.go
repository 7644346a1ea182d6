package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prebill-link/internal/model"
	"github.com/sells-group/prebill-link/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func writeWorkbook(t *testing.T, path string, rows [][]string) {
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
	require.NoError(t, f.Save(path))
}

func TestAnnotateWorkbook_Success(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	dir := t.TempDir()

	xlsxPath := filepath.Join(dir, "aging.xlsx")
	writeWorkbook(t, xlsxPath, [][]string{
		{"File"},
		{"ABC123"},
	})
	outPath := filepath.Join(dir, "out.xlsx")

	ex := stubExtractor{text: stubPrebillText}
	result, job, err := annotateWorkbook(ctx, ex, st, filepath.Join(dir, "prebills.pdf"), xlsxPath, outPath)
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	assert.Equal(t, model.JobStatusComplete, job.Status)
	assert.Equal(t, "out.xlsx", job.OutputName)
	assert.Equal(t, 2, job.Records)
	assert.Equal(t, 1, job.Matched)

	stored, err := st.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusComplete, stored.Status)
}

func TestAnnotateWorkbook_ExtractionFailureFailsJob(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	dir := t.TempDir()

	xlsxPath := filepath.Join(dir, "aging.xlsx")
	writeWorkbook(t, xlsxPath, [][]string{{"File"}, {"A"}})

	ex := stubExtractor{err: errors.New("pdftotext exploded")}
	_, job, err := annotateWorkbook(ctx, ex, st, filepath.Join(dir, "broken.pdf"), xlsxPath, filepath.Join(dir, "out.xlsx"))
	require.Error(t, err)
	require.NotNil(t, job)

	stored, getErr := st.GetJob(ctx, job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.JobStatusFailed, stored.Status)
	assert.Contains(t, stored.Error, "pdftotext exploded")
}

func TestAnnotateWorkbook_BadWorkbookFailsJob(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	dir := t.TempDir()

	ex := stubExtractor{text: stubPrebillText}
	_, job, err := annotateWorkbook(ctx, ex, st, filepath.Join(dir, "p.pdf"), filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "out.xlsx"))
	require.Error(t, err)

	stored, getErr := st.GetJob(ctx, job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.JobStatusFailed, stored.Status)
}
