// Package httpapi exposes the allocation workflows over a JSON HTTP API.
// Actor identity rides on the X-User-ID header; the engine decides what that
// user may do per operation.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

const userHeader = "X-User-ID"

// NewMux builds the route table over the workflow engine.
func NewMux(svc *domain.Service) *http.ServeMux {
	mux := http.NewServeMux()

	projects := NewProjectHandler(svc)
	applications := NewApplicationHandler(svc)
	registrations := NewRegistrationHandler(svc)
	enquiries := NewEnquiryHandler(svc)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /projects", withLogging(projects.Create))
	mux.HandleFunc("GET /projects", withLogging(projects.List))
	mux.HandleFunc("GET /projects/eligible", withLogging(projects.ListEligible))
	mux.HandleFunc("PUT /projects/{id}", withLogging(projects.Edit))
	mux.HandleFunc("POST /projects/{id}/visibility", withLogging(projects.ToggleVisibility))
	mux.HandleFunc("DELETE /projects/{id}", withLogging(projects.Delete))
	mux.HandleFunc("GET /projects/{id}/enquiries", withLogging(enquiries.ListForProject))

	mux.HandleFunc("POST /applications", withLogging(applications.Submit))
	mux.HandleFunc("POST /applications/{id}/decision", withLogging(applications.Decide))
	mux.HandleFunc("POST /withdrawals", withLogging(applications.RequestWithdrawal))
	mux.HandleFunc("POST /withdrawals/{id}/decision", withLogging(applications.DecideWithdrawal))
	mux.HandleFunc("POST /bookings", withLogging(applications.Book))
	mux.HandleFunc("GET /receipts", withLogging(applications.Receipts))
	mux.HandleFunc("GET /requests", withLogging(applications.UserRequests))

	mux.HandleFunc("POST /registrations", withLogging(registrations.Register))
	mux.HandleFunc("POST /registrations/{id}/decision", withLogging(registrations.Decide))

	mux.HandleFunc("POST /enquiries", withLogging(enquiries.Submit))
	mux.HandleFunc("PUT /enquiries/{id}", withLogging(enquiries.Edit))
	mux.HandleFunc("DELETE /enquiries/{id}", withLogging(enquiries.Delete))
	mux.HandleFunc("POST /enquiries/{id}/answer", withLogging(enquiries.Answer))

	return mux
}

// withLogging wraps a handler with request logging.
func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

type errorBody struct {
	Error    string            `json:"error"`
	Code     string            `json:"code"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeError renders a workflow error using the code's HTTP mapping. Errors
// without a domain code become opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := code.HTTPStatus()
	body := errorBody{
		Error:    http.StatusText(status),
		Code:     string(code),
		Metadata: apperrors.GetMetadata(err),
	}
	if status < http.StatusInternalServerError {
		body.Message = err.Error()
	} else {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:   http.StatusText(http.StatusBadRequest),
		Code:    "BAD_REQUEST",
		Message: message,
	})
}

func parseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// actorID pulls the acting user from the request header.
func actorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		badRequest(w, userHeader+" header is required")
		return "", false
	}
	return userID, true
}
