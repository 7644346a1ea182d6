package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prebill-link/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_CreateJob(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs(pgxmock.AnyArg(), "prebills.pdf", "aging.xlsx", "running", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	job, err := s.CreateJob(context.Background(), "prebills.pdf", "aging.xlsx")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRunning, job.Status)
	assert.NotEmpty(t, job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetJob_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, pdf_name, xlsx_name, output_name, records, matched, status, error, created_at, updated_at`).
		WithArgs("nonexistent-job").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetJob(context.Background(), "nonexistent-job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get job")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CompleteJob_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE jobs SET output_name`).
		WithArgs("out.xlsx", 3, 2, "complete", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.CompleteJob(context.Background(), "missing", model.JobOutcome{
		OutputName: "out.xlsx",
		Records:    3,
		Matched:    2,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListJobs(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "pdf_name", "xlsx_name", "output_name",
		"records", "matched", "status", "error",
		"created_at", "updated_at",
	}).AddRow("j1", "a.pdf", "a.xlsx", "a-updated.xlsx", 5, 4, model.JobStatusComplete, "", now, now)

	mock.ExpectQuery(`SELECT id, pdf_name, xlsx_name, output_name, records, matched, status, error, created_at, updated_at`).
		WithArgs("complete", 10).
		WillReturnRows(rows)

	jobs, err := s.ListJobs(context.Background(), JobFilter{
		Status: model.JobStatusComplete,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)
	assert.Equal(t, 4, jobs[0].Matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}
