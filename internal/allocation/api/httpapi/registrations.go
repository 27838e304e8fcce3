package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

type RegistrationHandler struct {
	svc *domain.Service
}

func NewRegistrationHandler(svc *domain.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

type registerRequest struct {
	ProjectID string `json:"project_id"`
}

// Register handles POST /registrations for the acting officer.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	officerID, ok := actorID(w, r)
	if !ok {
		return
	}
	var req registerRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.ProjectID == "" {
		badRequest(w, "project_id is required")
		return
	}
	request, err := h.svc.RegisterOfficer(r.Context(), officerID, req.ProjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("officer registration submitted",
		"request_id", request.ID, "user_id", officerID, "project_id", req.ProjectID)
	writeJSON(w, http.StatusCreated, toRequestPayload(request))
}

// Decide handles POST /registrations/{id}/decision.
func (h *RegistrationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	var req decisionRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	request, err := h.svc.DecideRegistration(r.Context(), requestID, domain.ApprovedStatus(req.Decision))
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("registration decided", "request_id", requestID, "decision", req.Decision)
	writeJSON(w, http.StatusOK, toRequestPayload(request))
}
