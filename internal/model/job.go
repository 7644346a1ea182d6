package model

import "time"

// JobStatus represents the state of a processing job.
type JobStatus string

const (
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusFailed   JobStatus = "failed"
)

// Job records one annotate invocation: which PDF and workbook went in,
// what came out, and how the reconciliation went.
type Job struct {
	ID         string    `json:"id"`
	PDFName    string    `json:"pdf_name"`
	XLSXName   string    `json:"xlsx_name"`
	OutputName string    `json:"output_name,omitempty"`
	Records    int       `json:"records"`
	Matched    int       `json:"matched"`
	Status     JobStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// JobOutcome holds the completion details written when a job finishes.
type JobOutcome struct {
	OutputName string
	Records    int
	Matched    int
}
