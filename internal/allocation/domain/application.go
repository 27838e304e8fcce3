package domain

import (
	"context"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// SubmitApplication applies an applicant to a project for the requested flat
// type. Inventory is not consumed here; a unit is decremented only when the
// flat is booked.
func (s *Service) SubmitApplication(ctx context.Context, applicantID, projectID string, flat FlatType) (Request, error) {
	applicant, err := s.applicant(ctx, applicantID)
	if err != nil {
		return Request{}, err
	}
	if applicant.ActiveProjectID != "" {
		return Request{}, apperrors.WithMetadata(apperrors.CodeAlreadyApplied,
			"applicant already has an active application",
			map[string]string{"user_id": applicantID, "project_id": applicant.ActiveProjectID})
	}

	project, err := s.project(ctx, projectID)
	if err != nil {
		return Request{}, err
	}

	if !flat.Valid() {
		return Request{}, apperrors.WithMetadata(apperrors.CodeNotEligible,
			"unknown flat type", map[string]string{"flat_type": string(flat)})
	}
	eligible := Eligibility(&applicant, &project, s.today())
	if !covers(eligible, flat) {
		return Request{}, apperrors.WithMetadata(apperrors.CodeNotEligible,
			"applicant is not eligible for this flat type",
			map[string]string{"user_id": applicantID, "project_id": projectID, "flat_type": string(flat)})
	}
	if project.UnitsFor(flat) <= 0 {
		return Request{}, apperrors.WithMetadata(apperrors.CodeNoUnitsAvailable,
			"no available units of flat type "+string(flat),
			map[string]string{"project_id": projectID, "flat_type": string(flat)})
	}

	requestID, err := s.newRequestID()
	if err != nil {
		return Request{}, err
	}

	applicant.ActiveProjectID = projectID
	applicant.setStatus(projectID, ApplicationPending)
	applicant.setAppliedFlat(projectID, flat)

	request := Request{
		ID:        requestID,
		Type:      RequestTypeApplication,
		UserID:    applicantID,
		ProjectID: projectID,
		State:     RequestPending,
		Approval:  ApprovalPending,
		FlatType:  flat,
		CreatedAt: s.now(),
	}

	if err := s.store.PutApplicant(ctx, applicant); err != nil {
		return Request{}, err
	}
	if err := s.store.PutRequest(ctx, request); err != nil {
		return Request{}, err
	}
	return request, nil
}

// DecideApplication records a manager decision on a BTO application and
// updates the applicant's cached status in the same step. Re-applying a
// decision is allowed and has no further effect.
func (s *Service) DecideApplication(ctx context.Context, requestID string, decision ApprovedStatus) (Request, error) {
	if !decision.Valid() {
		return Request{}, apperrors.New(apperrors.CodeRequestWrongType, "unknown decision")
	}
	request, err := s.request(ctx, requestID, RequestTypeApplication)
	if err != nil {
		return Request{}, err
	}
	applicant, err := s.applicant(ctx, request.UserID)
	if err != nil {
		return Request{}, err
	}

	applyApplicationDecision(&applicant, &request, decision)

	if err := s.store.PutApplicant(ctx, applicant); err != nil {
		return Request{}, err
	}
	if err := s.store.PutRequest(ctx, request); err != nil {
		return Request{}, err
	}
	return request, nil
}

// applyApplicationDecision is the single site that moves an application
// request and its applicant's cached status together. The withdrawal cascade
// reuses it when voiding the original application.
func applyApplicationDecision(applicant *Applicant, request *Request, decision ApprovedStatus) {
	switch decision {
	case ApprovalSuccessful:
		applicant.setStatus(request.ProjectID, ApplicationSuccessful)
	case ApprovalUnsuccessful:
		applicant.setStatus(request.ProjectID, ApplicationUnsuccessful)
		if applicant.ActiveProjectID == request.ProjectID {
			applicant.ActiveProjectID = ""
		}
		applicant.clearAppliedFlat(request.ProjectID)
	case ApprovalPending:
		applicant.setStatus(request.ProjectID, ApplicationPending)
	}
	request.Approval = decision
	request.State = overallState(decision)
}
