package domain

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
	"github.com/kaijietay/btoflow/internal/platform/id"
)

// Service orchestrates the allocation workflows over a Store. The clock and
// ID generators are injected so tests can fix time and identifiers; callers
// pass actor IDs explicitly instead of relying on ambient session state.
type Service struct {
	store        Store
	clock        func() time.Time
	newProjectID func() (string, error)
	newRequestID func() (string, error)
}

// NewService constructs the workflow engine. Nil clock or generators default
// to time.Now and the platform ID generator.
func NewService(store Store, clock func() time.Time, newProjectID, newRequestID func() (string, error)) *Service {
	if clock == nil {
		clock = time.Now
	}
	if newProjectID == nil {
		newProjectID = id.NewID
	}
	if newRequestID == nil {
		newRequestID = id.NewID
	}
	return &Service{
		store:        store,
		clock:        clock,
		newProjectID: newProjectID,
		newRequestID: newRequestID,
	}
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// today truncates the clock to a calendar date for window comparisons.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) project(ctx context.Context, projectID string) (Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Project{}, apperrors.WithMetadata(apperrors.CodeProjectNotFound,
				"project not found", map[string]string{"project_id": projectID})
		}
		return Project{}, err
	}
	return project, nil
}

func (s *Service) applicant(ctx context.Context, userID string) (Applicant, error) {
	applicant, err := s.store.GetApplicant(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Applicant{}, apperrors.WithMetadata(apperrors.CodeApplicantNotFound,
				"applicant not found", map[string]string{"user_id": userID})
		}
		return Applicant{}, err
	}
	return applicant, nil
}

func (s *Service) officer(ctx context.Context, userID string) (Officer, error) {
	officer, err := s.store.GetOfficer(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Officer{}, apperrors.WithMetadata(apperrors.CodeOfficerNotFound,
				"officer not found", map[string]string{"user_id": userID})
		}
		return Officer{}, err
	}
	return officer, nil
}

func (s *Service) manager(ctx context.Context, userID string) (Manager, error) {
	manager, err := s.store.GetManager(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Manager{}, apperrors.WithMetadata(apperrors.CodeManagerNotFound,
				"manager not found", map[string]string{"user_id": userID})
		}
		return Manager{}, err
	}
	return manager, nil
}

func (s *Service) request(ctx context.Context, requestID string, kind RequestType) (Request, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Request{}, apperrors.WithMetadata(apperrors.CodeRequestNotFound,
				"request not found", map[string]string{"request_id": requestID})
		}
		return Request{}, err
	}
	if request.Type != kind {
		return Request{}, apperrors.WithMetadata(apperrors.CodeRequestWrongType,
			"request is not a "+string(kind),
			map[string]string{"request_id": requestID, "type": string(request.Type)})
	}
	return request, nil
}

// overallState derives the request's overall state from an approval decision:
// DONE exactly when the decision is non-pending.
func overallState(decision ApprovedStatus) RequestState {
	if decision == ApprovalPending {
		return RequestPending
	}
	return RequestDone
}
