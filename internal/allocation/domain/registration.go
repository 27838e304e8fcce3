package domain

import (
	"context"
	"errors"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// registrationActive reports whether a registration state reserves the
// officer's availability for a project window.
func registrationActive(status RegistrationStatus) bool {
	switch status {
	case RegistrationPending, RegistrationApproved, RegistrationApprovedUnassigned:
		return true
	}
	return false
}

// RegisterOfficer submits an officer's registration to service a project.
// The project must be visible, the officer must not hold an active
// application on it, and the project window must not overlap any project the
// officer already has a pending or approved registration for. Re-registering
// while a registration on the same project is still pending or approved is a
// conflict; only a rejected registration may be retried.
func (s *Service) RegisterOfficer(ctx context.Context, officerID, projectID string) (Request, error) {
	project, err := s.project(ctx, projectID)
	if err != nil {
		return Request{}, err
	}
	if !project.Visible {
		return Request{}, apperrors.WithMetadata(apperrors.CodeProjectNotVisible,
			"project is not visible", map[string]string{"project_id": projectID})
	}

	officer, err := s.officer(ctx, officerID)
	if err != nil {
		return Request{}, err
	}

	// An officer is also an applicant under the same user ID; they cannot
	// service a project they applied to.
	applicant, err := s.store.GetApplicant(ctx, officerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Request{}, err
	}
	if err == nil {
		onProject := applicant.ActiveProjectID == projectID || project.HasBookedApplicant(officerID)
		if onProject {
			return Request{}, apperrors.WithMetadata(apperrors.CodeApplicantOnProject,
				"officer holds an application on this project",
				map[string]string{"user_id": officerID, "project_id": projectID})
		}
	}

	if registrationActive(officer.StatusFor(projectID)) {
		return Request{}, apperrors.WithMetadata(apperrors.CodeAlreadyRegistered,
			"officer already has an active registration on this project",
			map[string]string{"user_id": officerID, "project_id": projectID})
	}

	for existingID, status := range officer.Statuses {
		if existingID == projectID || !registrationActive(status) {
			continue
		}
		existing, err := s.store.GetProject(ctx, existingID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return Request{}, err
		}
		if existing.WindowOverlaps(project.OpenDate, project.CloseDate) {
			return Request{}, apperrors.WithMetadata(apperrors.CodeRegistrationWindowOverlap,
				"project window overlaps an existing registration",
				map[string]string{"project_id": projectID, "conflicting_project_id": existingID})
		}
	}

	requestID, err := s.newRequestID()
	if err != nil {
		return Request{}, err
	}

	officer.setStatus(projectID, RegistrationPending)

	request := Request{
		ID:        requestID,
		Type:      RequestTypeRegistration,
		UserID:    officerID,
		ProjectID: projectID,
		State:     RequestPending,
		Approval:  ApprovalPending,
		CreatedAt: s.now(),
	}

	if err := s.store.PutOfficer(ctx, officer); err != nil {
		return Request{}, err
	}
	if err := s.store.PutRequest(ctx, request); err != nil {
		return Request{}, err
	}
	return request, nil
}

// DecideRegistration records a manager decision on an officer registration.
// Approval assigns the officer and consumes an officer slot when one remains;
// with no slots left the registration is still recorded approved but the
// officer stays unassigned (APPROVED_UNASSIGNED). Rejection releases the slot
// and assignment if one was made. Decision replays are safe: assignment and
// slot accounting check membership before mutating.
func (s *Service) DecideRegistration(ctx context.Context, requestID string, decision ApprovedStatus) (Request, error) {
	if !decision.Valid() {
		return Request{}, apperrors.New(apperrors.CodeRequestWrongType, "unknown decision")
	}
	request, err := s.request(ctx, requestID, RequestTypeRegistration)
	if err != nil {
		return Request{}, err
	}
	officer, err := s.officer(ctx, request.UserID)
	if err != nil {
		return Request{}, err
	}
	project, err := s.project(ctx, request.ProjectID)
	if err != nil {
		return Request{}, err
	}

	switch decision {
	case ApprovalSuccessful:
		if project.HasOfficer(request.UserID) || project.OfficerSlots > 0 {
			if err := project.assignOfficer(request.UserID); err != nil {
				return Request{}, err
			}
			officer.addRegisteredProject(request.ProjectID)
			officer.setStatus(request.ProjectID, RegistrationApproved)
		} else {
			officer.setStatus(request.ProjectID, RegistrationApprovedUnassigned)
		}
	case ApprovalUnsuccessful:
		officer.setStatus(request.ProjectID, RegistrationRejected)
		project.unassignOfficer(request.UserID)
		officer.removeRegisteredProject(request.ProjectID)
	case ApprovalPending:
		officer.setStatus(request.ProjectID, RegistrationPending)
	}

	request.Approval = decision
	request.State = overallState(decision)

	if err := s.store.PutProject(ctx, project); err != nil {
		return Request{}, err
	}
	if err := s.store.PutOfficer(ctx, officer); err != nil {
		return Request{}, err
	}
	if err := s.store.PutRequest(ctx, request); err != nil {
		return Request{}, err
	}
	return request, nil
}
