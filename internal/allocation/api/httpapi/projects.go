package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

type ProjectHandler struct {
	svc *domain.Service
}

func NewProjectHandler(svc *domain.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create handles POST /projects. The acting manager comes from X-User-ID.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID, ok := actorID(w, r)
	if !ok {
		return
	}
	var payload projectParamsPayload
	if err := parseJSONBody(r, &payload); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if payload.Name == "" {
		badRequest(w, "name is required")
		return
	}
	params, err := payload.toDomain()
	if err != nil {
		badRequest(w, "open_date and close_date must be YYYY-MM-DD")
		return
	}

	project, err := h.svc.CreateProject(r.Context(), managerID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("project created", "project_id", project.ID, "manager_id", managerID)
	writeJSON(w, http.StatusCreated, toProjectPayload(project))
}

// List handles GET /projects with filter and sort query parameters.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		badRequest(w, "invalid filter parameters")
		return
	}
	projects, err := h.svc.ListProjects(r.Context(), criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectPayload(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type eligibleProjectPayload struct {
	Project  projectPayload `json:"project"`
	Eligible string         `json:"eligible_flat_type"`
}

// ListEligible handles GET /projects/eligible for the acting applicant.
func (h *ProjectHandler) ListEligible(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := actorID(w, r)
	if !ok {
		return
	}
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		badRequest(w, "invalid filter parameters")
		return
	}
	eligible, err := h.svc.EligibleProjects(r.Context(), applicantID, criteria)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]eligibleProjectPayload, 0, len(eligible))
	for _, e := range eligible {
		out = append(out, eligibleProjectPayload{
			Project:  toProjectPayload(e.Project),
			Eligible: string(e.Eligible),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Edit handles PUT /projects/{id}.
func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	var payload projectParamsPayload
	if err := parseJSONBody(r, &payload); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	params, err := payload.toDomain()
	if err != nil {
		badRequest(w, "open_date and close_date must be YYYY-MM-DD")
		return
	}
	project, err := h.svc.EditProject(r.Context(), projectID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectPayload(project))
}

// ToggleVisibility handles POST /projects/{id}/visibility.
func (h *ProjectHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	visible, err := h.svc.ToggleVisibility(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"visible": visible})
}

// Delete handles DELETE /projects/{id} and cascades cleanup.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if err := h.svc.DeleteProject(r.Context(), projectID); err != nil {
		writeError(w, err)
		return
	}
	slog.Info("project deleted", "project_id", projectID)
	w.WriteHeader(http.StatusNoContent)
}
