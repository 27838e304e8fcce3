package domain

import (
	"context"
	"errors"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// BookFlat books the applicant's approved flat on behalf of an officer
// servicing the project. This is the single point where inventory decreases:
// one unit of the applied flat type is consumed, the applicant joins the
// project's booked set, and the cached status moves to BOOKED. A second call
// for the same applicant fails with ALREADY_BOOKED and changes nothing.
func (s *Service) BookFlat(ctx context.Context, officerID, applicantID string) error {
	applicant, err := s.store.GetApplicant(ctx, applicantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeNotAnApplicant,
				"no applicant record for user", map[string]string{"user_id": applicantID})
		}
		return err
	}
	if applicant.ActiveProjectID == "" {
		return apperrors.WithMetadata(apperrors.CodeNoActiveApplication,
			"applicant has no active application", map[string]string{"user_id": applicantID})
	}
	projectID := applicant.ActiveProjectID

	officer, err := s.officer(ctx, officerID)
	if err != nil {
		return err
	}
	if !officer.AssignedTo(projectID) {
		return apperrors.WithMetadata(apperrors.CodeOfficerNotAssigned,
			"officer is not assigned to the applicant's project",
			map[string]string{"user_id": officerID, "project_id": projectID})
	}

	switch applicant.StatusFor(projectID) {
	case ApplicationBooked:
		return apperrors.WithMetadata(apperrors.CodeAlreadyBooked,
			"a flat is already booked for this applicant",
			map[string]string{"user_id": applicantID, "project_id": projectID})
	case ApplicationSuccessful:
		// proceed
	default:
		return apperrors.WithMetadata(apperrors.CodeNotYetApproved,
			"application is not approved for booking",
			map[string]string{"user_id": applicantID, "project_id": projectID,
				"status": string(applicant.StatusFor(projectID))})
	}

	project, err := s.project(ctx, projectID)
	if err != nil {
		return err
	}
	flat, ok := applicant.AppliedFlats[projectID]
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeNoActiveApplication,
			"no applied flat type recorded for applicant",
			map[string]string{"user_id": applicantID, "project_id": projectID})
	}
	if err := project.consumeUnit(flat); err != nil {
		return err
	}

	project.addBookedApplicant(applicantID)
	applicant.setStatus(projectID, ApplicationBooked)

	if err := s.store.PutProject(ctx, project); err != nil {
		return err
	}
	return s.store.PutApplicant(ctx, applicant)
}
