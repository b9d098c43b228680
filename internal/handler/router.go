package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/jobmanager"
	"github.com/vortex/docx-api/internal/middleware"
	"github.com/vortex/docx-api/internal/quota"
)

// NewRouter builds the HTTP mux with all job-control routes and the
// middleware chain (logging, recovery, CORS, body-size cap) described in
// SPEC_FULL.md §10.
func NewRouter(logger *slog.Logger, jobs *jobmanager.Manager, tracker *quota.Tracker, ai aiservice.Service, maxUploadBytes int64) http.Handler {
	mux := http.NewServeMux()

	usageH := NewUsageHandler(tracker)
	specsH := NewSpecsHandler(ai)
	formatH := NewFormatHandler(logger, jobs, tracker, ai, maxUploadBytes)
	jobsH := NewJobsHandler(jobs)

	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	mux.HandleFunc("GET /usage", usageH.Get)

	mux.HandleFunc("GET /specs", specsH.List)
	mux.HandleFunc("GET /specs/schema", specsH.Schema)
	mux.HandleFunc("POST /specs/validate", specsH.Validate)
	mux.HandleFunc("POST /specs/generate", specsH.Generate)

	mux.HandleFunc("POST /format/text", formatH.Text)
	mux.HandleFunc("POST /format/file", formatH.File)

	mux.HandleFunc("GET /jobs", jobsH.List)
	mux.HandleFunc("GET /jobs/{id}", jobsH.Get)
	mux.HandleFunc("DELETE /jobs/{id}", jobsH.Delete)
	mux.HandleFunc("GET /jobs/{id}/stream", jobsH.Stream)
	mux.HandleFunc("GET /jobs/{id}/download", jobsH.Download)
	mux.HandleFunc("GET /jobs/{id}/report", jobsH.Report)

	// Apply middleware chain (outermost first).
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxUploadBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
