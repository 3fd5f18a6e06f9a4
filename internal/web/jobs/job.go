package jobs

import (
	"time"

	"github.com/buemura/scout/pkg/types"
)

// JobStatus represents the current state of an analysis job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// JobProgress tracks file-level progress within a job.
type JobProgress struct {
	TotalFiles     int    `json:"total_files"`
	CompletedFiles int    `json:"completed_files"`
	CurrentFile    string `json:"current_file,omitempty"`
}

// Job represents an async analysis job. Report is nil until the job
// completes successfully.
type Job struct {
	ID          string               `json:"id"`
	Root        string               `json:"root"`
	Status      JobStatus            `json:"status"`
	Report      *types.ProjectReport `json:"report,omitempty"`
	Error       string               `json:"error,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	StartedAt   time.Time            `json:"started_at,omitempty"`
	CompletedAt time.Time            `json:"completed_at,omitempty"`
	Progress    JobProgress          `json:"progress"`

	cancel func()
}

// snapshot returns a copy safe to read without the manager lock. The
// Report pointer is shared, but reports are immutable once assembled.
func (j *Job) snapshot() *Job {
	c := *j
	c.cancel = nil
	return &c
}

// FindingCount returns the number of findings in the completed report.
func (j *Job) FindingCount() int {
	if j.Report == nil {
		return 0
	}
	return j.Report.Totals.Findings
}
