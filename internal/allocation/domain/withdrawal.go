package domain

import (
	"context"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// RequestWithdrawal submits a withdrawal for the applicant's application to
// the project. The application is resolved optimistically at submission: its
// cached status moves to WITHDRAWN and the active link and applied flat are
// cleared immediately, while the withdrawal itself still awaits a manager
// decision. A later rejection does not restore the link; the ambiguity is
// inherited from the product's allocation model and kept as-is.
func (s *Service) RequestWithdrawal(ctx context.Context, applicantID, projectID string) (Request, error) {
	if _, err := s.project(ctx, projectID); err != nil {
		return Request{}, err
	}
	applicant, err := s.applicant(ctx, applicantID)
	if err != nil {
		return Request{}, err
	}

	requests, err := s.store.ListRequestsByUser(ctx, applicantID)
	if err != nil {
		return Request{}, err
	}
	hasApplication := false
	for _, r := range requests {
		if r.ProjectID != projectID {
			continue
		}
		switch r.Type {
		case RequestTypeApplication:
			hasApplication = true
		case RequestTypeWithdrawal:
			if r.State == RequestPending {
				return Request{}, apperrors.WithMetadata(apperrors.CodeWithdrawalInProgress,
					"a withdrawal request is already pending",
					map[string]string{"user_id": applicantID, "project_id": projectID})
			}
		}
	}
	if !hasApplication || applicant.ActiveProjectID != projectID {
		return Request{}, apperrors.WithMetadata(apperrors.CodeNoPendingApplication,
			"no active application to withdraw",
			map[string]string{"user_id": applicantID, "project_id": projectID})
	}

	requestID, err := s.newRequestID()
	if err != nil {
		return Request{}, err
	}

	applicant.setStatus(projectID, ApplicationWithdrawn)
	applicant.ActiveProjectID = ""
	applicant.clearAppliedFlat(projectID)

	withdrawal := Request{
		ID:        requestID,
		Type:      RequestTypeWithdrawal,
		UserID:    applicantID,
		ProjectID: projectID,
		State:     RequestPending,
		Approval:  ApprovalPending,
		CreatedAt: s.now(),
	}

	if err := s.store.PutApplicant(ctx, applicant); err != nil {
		return Request{}, err
	}
	if err := s.store.PutRequest(ctx, withdrawal); err != nil {
		return Request{}, err
	}
	return withdrawal, nil
}

// DecideWithdrawal records a manager decision on a withdrawal request. On
// approval the original application is voided through the application state
// machine, and a booked unit is returned to the project inventory with the
// applicant removed from the booked set.
func (s *Service) DecideWithdrawal(ctx context.Context, requestID string, decision ApprovedStatus) (Request, error) {
	if !decision.Valid() {
		return Request{}, apperrors.New(apperrors.CodeRequestWrongType, "unknown decision")
	}
	withdrawal, err := s.request(ctx, requestID, RequestTypeWithdrawal)
	if err != nil {
		return Request{}, err
	}

	withdrawal.Approval = decision
	withdrawal.State = overallState(decision)

	if decision != ApprovalSuccessful {
		if err := s.store.PutRequest(ctx, withdrawal); err != nil {
			return Request{}, err
		}
		return withdrawal, nil
	}

	applicant, err := s.applicant(ctx, withdrawal.UserID)
	if err != nil {
		return Request{}, err
	}
	project, err := s.project(ctx, withdrawal.ProjectID)
	if err != nil {
		return Request{}, err
	}

	requests, err := s.store.ListRequestsByUser(ctx, withdrawal.UserID)
	if err != nil {
		return Request{}, err
	}
	var application *Request
	for i := range requests {
		r := requests[i]
		if r.Type == RequestTypeApplication && r.ProjectID == withdrawal.ProjectID {
			application = &r
		}
	}

	// Release a booked unit before the application is voided. The flat type
	// comes from the application request because the applicant's cached
	// applied-flat entry was cleared when the withdrawal was submitted.
	projectTouched := false
	if project.HasBookedApplicant(withdrawal.UserID) && application != nil && application.FlatType.Valid() {
		project.releaseUnit(application.FlatType)
		project.removeBookedApplicant(withdrawal.UserID)
		projectTouched = true
	}

	if application != nil {
		applyApplicationDecision(&applicant, application, ApprovalUnsuccessful)
	} else {
		// No surviving application record; still settle the cached state.
		applicant.setStatus(withdrawal.ProjectID, ApplicationUnsuccessful)
		if applicant.ActiveProjectID == withdrawal.ProjectID {
			applicant.ActiveProjectID = ""
		}
		applicant.clearAppliedFlat(withdrawal.ProjectID)
	}

	if projectTouched {
		if err := s.store.PutProject(ctx, project); err != nil {
			return Request{}, err
		}
	}
	if err := s.store.PutApplicant(ctx, applicant); err != nil {
		return Request{}, err
	}
	if application != nil {
		if err := s.store.PutRequest(ctx, *application); err != nil {
			return Request{}, err
		}
	}
	if err := s.store.PutRequest(ctx, withdrawal); err != nil {
		return Request{}, err
	}
	return withdrawal, nil
}
