package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillhq/newsdesk/internal/migrations"
)

// AdminHandler exposes the data repair jobs. Routes using it are gated by
// the capability middleware before these methods run.
type AdminHandler struct {
	*BaseHandler
	runner *migrations.Runner
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(base *BaseHandler, runner *migrations.Runner) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		runner:      runner,
	}
}

type JobListResponse struct {
	Jobs []string `json:"jobs"`
}

type JobReportResponse struct {
	Job     string `json:"job"`
	Scanned int    `json:"scanned"`
	Patched int    `json:"patched"`
}

// ListJobs lists the available repair jobs in run order
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, JobListResponse{Jobs: h.runner.Names()}, http.StatusOK)
}

// RunJob executes a single repair job by name
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	report, err := h.runner.RunJob(r.Context(), name)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, JobReportResponse{
		Job:     name,
		Scanned: report.Scanned,
		Patched: report.Patched,
	}, http.StatusOK)
}
