package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

type ApplicationHandler struct {
	svc *domain.Service
}

func NewApplicationHandler(svc *domain.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type submitApplicationRequest struct {
	ProjectID string `json:"project_id"`
	FlatType  string `json:"flat_type"`
}

// Submit handles POST /applications for the acting applicant.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := actorID(w, r)
	if !ok {
		return
	}
	var req submitApplicationRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.ProjectID == "" {
		badRequest(w, "project_id is required")
		return
	}

	request, err := h.svc.SubmitApplication(r.Context(), applicantID, req.ProjectID, domain.FlatType(req.FlatType))
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("application submitted",
		"request_id", request.ID, "user_id", applicantID, "project_id", req.ProjectID)
	writeJSON(w, http.StatusCreated, toRequestPayload(request))
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

// Decide handles POST /applications/{id}/decision.
func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	var req decisionRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	request, err := h.svc.DecideApplication(r.Context(), requestID, domain.ApprovedStatus(req.Decision))
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("application decided", "request_id", requestID, "decision", req.Decision)
	writeJSON(w, http.StatusOK, toRequestPayload(request))
}

type withdrawalRequest struct {
	ProjectID string `json:"project_id"`
}

// RequestWithdrawal handles POST /withdrawals for the acting applicant.
func (h *ApplicationHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := actorID(w, r)
	if !ok {
		return
	}
	var req withdrawalRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.ProjectID == "" {
		badRequest(w, "project_id is required")
		return
	}
	request, err := h.svc.RequestWithdrawal(r.Context(), applicantID, req.ProjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("withdrawal requested",
		"request_id", request.ID, "user_id", applicantID, "project_id", req.ProjectID)
	writeJSON(w, http.StatusCreated, toRequestPayload(request))
}

// DecideWithdrawal handles POST /withdrawals/{id}/decision.
func (h *ApplicationHandler) DecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	var req decisionRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	request, err := h.svc.DecideWithdrawal(r.Context(), requestID, domain.ApprovedStatus(req.Decision))
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("withdrawal decided", "request_id", requestID, "decision", req.Decision)
	writeJSON(w, http.StatusOK, toRequestPayload(request))
}

type bookingRequest struct {
	ApplicantID string `json:"applicant_id"`
}

// Book handles POST /bookings. The acting officer books for the applicant.
func (h *ApplicationHandler) Book(w http.ResponseWriter, r *http.Request) {
	officerID, ok := actorID(w, r)
	if !ok {
		return
	}
	var req bookingRequest
	if err := parseJSONBody(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.ApplicantID == "" {
		badRequest(w, "applicant_id is required")
		return
	}
	if err := h.svc.BookFlat(r.Context(), officerID, req.ApplicantID); err != nil {
		writeError(w, err)
		return
	}
	slog.Info("flat booked", "officer_id", officerID, "applicant_id", req.ApplicantID)
	w.WriteHeader(http.StatusNoContent)
}

type receiptPayload struct {
	ApplicantID   string `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
	Age           int    `json:"age"`
	MaritalStatus string `json:"marital_status"`
	ProjectID     string `json:"project_id"`
	ProjectName   string `json:"project_name"`
	FlatType      string `json:"flat_type"`
	Price         int    `json:"price"`
}

// Receipts handles GET /receipts for the acting officer.
func (h *ApplicationHandler) Receipts(w http.ResponseWriter, r *http.Request) {
	officerID, ok := actorID(w, r)
	if !ok {
		return
	}
	receipts, err := h.svc.BookingReceipts(r.Context(), officerID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]receiptPayload, 0, len(receipts))
	for _, receipt := range receipts {
		out = append(out, receiptPayload{
			ApplicantID:   receipt.ApplicantID,
			ApplicantName: receipt.ApplicantName,
			Age:           receipt.Age,
			MaritalStatus: string(receipt.MaritalStatus),
			ProjectID:     receipt.ProjectID,
			ProjectName:   receipt.ProjectName,
			FlatType:      string(receipt.FlatType),
			Price:         receipt.Price,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// UserRequests handles GET /requests for the acting user.
func (h *ApplicationHandler) UserRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	requests, err := h.svc.UserRequests(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestPayloads(requests))
}
