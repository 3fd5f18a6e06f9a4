package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/internal/output"
	"github.com/buemura/scout/internal/web/jobs"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager *jobs.Manager
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager) *Handlers {
	return &Handlers{Manager: manager}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := analysis.DefaultOptions()
	if req.Concurrency > 0 {
		opts.Concurrency = req.Concurrency
	}
	if req.MaxFileSize > 0 {
		opts.MaxFileSize = req.MaxFileSize
	}
	if len(req.IgnoreRules) > 0 {
		opts.IgnoreRules = req.IgnoreRules
	}

	job := h.Manager.Create(req.Root)
	if err := h.Manager.Start(job.ID, opts); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	// Re-read a snapshot; the job mutates concurrently once started.
	started, err := h.Manager.Get(job.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     started.ID,
		"status": started.Status,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID           string           `json:"id"`
		Root         string           `json:"root"`
		Status       jobs.JobStatus   `json:"status"`
		CreatedAt    time.Time        `json:"created_at"`
		Progress     jobs.JobProgress `json:"progress"`
		FindingCount int              `json:"finding_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:           j.ID,
			Root:         j.Root,
			Status:       j.Status,
			CreatedAt:    j.CreatedAt,
			Progress:     j.Progress,
			FindingCount: j.FindingCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted || job.Report == nil {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	formatter := &output.HTMLFormatter{}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Report); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// CancelScan handles POST /api/v1/scans/{id}/cancel.
func (h *Handlers) CancelScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Cancel(id); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancelling"})
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
