package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vortex/docx-api/internal/jobmanager"
	"github.com/vortex/docx-api/pkg/response"
)

// JobsHandler serves the job-control surface: status, listing,
// cancellation, progress streaming, download, and the abbreviated
// validation report.
type JobsHandler struct {
	jobs *jobmanager.Manager
}

// NewJobsHandler constructs a JobsHandler backed by mgr.
func NewJobsHandler(mgr *jobmanager.Manager) *JobsHandler {
	return &JobsHandler{jobs: mgr}
}

// maxReportViolations bounds how many violations GET /jobs/{id}/report
// returns, per spec.md §6.
const maxReportViolations = 50

// Get handles GET /jobs/{id}.
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := h.jobs.Get(id)
	if !ok {
		response.Error(w, http.StatusNotFound, "no such job "+id)
		return
	}
	response.JSON(w, http.StatusOK, jobView(job))
}

// Delete handles DELETE /jobs/{id}: cancels a pending or running job. It
// does not remove the job's record; that happens only via TTL cleanup.
func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.jobs.Get(id); !ok {
		response.Error(w, http.StatusNotFound, "no such job "+id)
		return
	}
	if err := h.jobs.Cancel(id); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"id": id, "status": "cancelled"})
}

// List handles GET /jobs?limit=….
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	views := h.jobs.List(limit)
	out := make([]map[string]any, len(views))
	for i, v := range views {
		out[i] = jobView(v)
	}
	response.JSON(w, http.StatusOK, map[string]any{"jobs": out})
}

// Stream handles GET /jobs/{id}/stream: server-sent events framed as
// "event: <name>\ndata: <json>\n\n", one of progress/completed/error/
// cancelled per event, terminating the response after the terminal event.
func (h *JobsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.jobs.Get(id); !ok {
		response.Error(w, http.StatusNotFound, "no such job "+id)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := h.jobs.StreamProgress(r.Context(), id, 200*time.Millisecond)
	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, data)
		flusher.Flush()
	}
}

// Download handles GET /jobs/{id}/download: the compiled .docx bytes.
func (h *JobsHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := h.jobs.Get(id)
	if !ok {
		response.Error(w, http.StatusNotFound, "no such job "+id)
		return
	}
	if job.Status != jobmanager.StatusCompleted || job.OutputBytes == nil {
		response.Error(w, http.StatusBadRequest, "job has no completed output")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="`+job.OutputFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(job.OutputBytes)
}

// Report handles GET /jobs/{id}/report: the abbreviated validation report,
// first maxReportViolations violations only.
func (h *JobsHandler) Report(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := h.jobs.Get(id)
	if !ok {
		response.Error(w, http.StatusNotFound, "no such job "+id)
		return
	}
	if job.Result == nil || job.Result.Report == nil {
		response.Error(w, http.StatusBadRequest, "job has no validation report")
		return
	}
	report := *job.Result.Report
	if len(report.Violations) > maxReportViolations {
		report.Violations = report.Violations[:maxReportViolations]
	}
	response.JSON(w, http.StatusOK, report)
}

func jobView(job jobmanager.View) map[string]any {
	out := map[string]any{
		"id":               job.ID,
		"status":           string(job.Status),
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
		"input_file_name":  job.InputFileName,
		"current_progress": job.CurrentProgress,
		"progress_history": job.ProgressHistory,
	}
	if job.Error != "" {
		out["error"] = job.Error
	}
	if job.Status == jobmanager.StatusCompleted {
		out["output_filename"] = job.OutputFilename
	}
	if job.Result != nil {
		out["warnings"] = job.Result.Warnings
	}
	return out
}
