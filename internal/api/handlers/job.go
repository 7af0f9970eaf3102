package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fathuur7/translate-backend/internal/job"
)

type JobHandler struct {
	jobs *job.Manager
}

func NewJobHandler(jobs *job.Manager) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// ListJobs returns snapshots of all jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, h.jobs.List(), http.StatusOK)
}

// GetJob returns a single job snapshot by ID
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	j, ok := h.jobs.Get(id)
	if !ok {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, j, http.StatusOK)
}

// DeleteJob removes a job record (administrative cleanup; does not stop a
// running worker)
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	if !h.jobs.Delete(id) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
