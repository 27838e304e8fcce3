package httpapi

import (
	"net/http"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

type EnquiryHandler struct {
	svc *domain.Service
}

func NewEnquiryHandler(svc *domain.Service) *EnquiryHandler {
	return &EnquiryHandler{svc: svc}
}

type enquiryRequest struct {
	ProjectID string `json:"project_id"`
	Query     string `json:"query"`
}

// Submit handles POST /enquiries for the acting user.
func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	var req enquiryRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.ProjectID == "" {
		badRequest(w, "project_id is required")
		return
	}
	if req.Query == "" {
		badRequest(w, "query is required")
		return
	}
	enquiry, err := h.svc.SubmitEnquiry(r.Context(), userID, req.ProjectID, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestPayload(enquiry))
}

type editEnquiryRequest struct {
	Query string `json:"query"`
}

// Edit handles PUT /enquiries/{id}; only the owner may edit.
func (h *EnquiryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	requestID := r.PathValue("id")
	var req editEnquiryRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Query == "" {
		badRequest(w, "query is required")
		return
	}
	enquiry, err := h.svc.EditEnquiry(r.Context(), userID, requestID, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestPayload(enquiry))
}

// Delete handles DELETE /enquiries/{id}; only the owner may delete.
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	requestID := r.PathValue("id")
	if err := h.svc.DeleteEnquiry(r.Context(), userID, requestID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerEnquiryRequest struct {
	Answer string `json:"answer"`
}

// Answer handles POST /enquiries/{id}/answer.
func (h *EnquiryHandler) Answer(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	var req answerEnquiryRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Answer == "" {
		badRequest(w, "answer is required")
		return
	}
	enquiry, err := h.svc.AnswerEnquiry(r.Context(), requestID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestPayload(enquiry))
}

// ListForProject handles GET /projects/{id}/enquiries.
func (h *EnquiryHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	enquiries, err := h.svc.ProjectEnquiries(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestPayloads(enquiries))
}
