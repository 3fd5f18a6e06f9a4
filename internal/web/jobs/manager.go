package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/pkg/types"
)

// newJobID generates a job identifier. Extracted as a variable for testing.
var newJobID = defaultNewJobID

func defaultNewJobID() string {
	// Timestamp based ID, good enough for in-memory use.
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Manager manages analysis job lifecycle: create, execute, track,
// cancel, store reports.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewManager creates a new job manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// Create creates a new pending analysis job for the given root.
func (m *Manager) Create(root string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:        newJobID(),
		Root:      root,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	m.jobs[job.ID] = job
	return job
}

// Start launches the analysis job in a background goroutine.
func (m *Manager) Start(jobID string, opts analysis.Options) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	job.cancel = cancel
	m.mu.Unlock()

	opts.Progress = func(done, total int, path string) {
		m.mu.Lock()
		job.Progress = JobProgress{
			TotalFiles:     total,
			CompletedFiles: done,
			CurrentFile:    path,
		}
		m.mu.Unlock()
	}

	go m.execute(ctx, job, opts)
	return nil
}

func (m *Manager) execute(ctx context.Context, job *Job, opts analysis.Options) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = time.Now()
			m.mu.Unlock()
		}
	}()

	scanner, err := analysis.NewScanner(opts)
	if err != nil {
		m.finish(job, nil, err)
		return
	}

	report, err := scanner.Scan(ctx, job.Root)
	m.finish(job, report, err)
}

func (m *Manager) finish(job *Job, report *types.ProjectReport, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job.CompletedAt = time.Now()
	job.Progress.CurrentFile = ""

	switch {
	case err == nil:
		job.Status = StatusCompleted
		job.Report = report
	case errors.Is(err, analysis.ErrCancelled):
		job.Status = StatusCancelled
		job.Error = err.Error()
	default:
		job.Status = StatusFailed
		job.Error = err.Error()
	}
}

// Cancel requests cancellation of a running job. Completed jobs are
// left untouched.
func (m *Manager) Cancel(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	if job.Status != StatusRunning || job.cancel == nil {
		return fmt.Errorf("job %q is not running", jobID)
	}
	job.cancel()
	return nil
}

// Get returns a snapshot of a job by ID. Callers read the result
// without holding the manager lock, so the live job is never exposed.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %q not found", jobID)
	}
	return job.snapshot(), nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.snapshot())
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}
