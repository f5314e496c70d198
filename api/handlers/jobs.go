package handlers

import (
	"net/http"
	"strings"

	"chartd/core/journal"
	"github.com/go-chi/chi/v5"
)

type JobsHandler struct {
	jobs journal.Store
}

func NewJobsHandler(jobs journal.Store) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.jobs == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := h.jobs.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.jobs == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}
