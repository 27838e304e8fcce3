package domain

import (
	"context"
	"strings"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// SubmitEnquiry records a free-text question about a visible project.
func (s *Service) SubmitEnquiry(ctx context.Context, userID, projectID, query string) (Request, error) {
	project, err := s.project(ctx, projectID)
	if err != nil {
		return Request{}, err
	}
	if !project.Visible {
		return Request{}, apperrors.WithMetadata(apperrors.CodeProjectNotVisible,
			"project is not visible", map[string]string{"project_id": projectID})
	}

	requestID, err := s.newRequestID()
	if err != nil {
		return Request{}, err
	}
	enquiry := Request{
		ID:        requestID,
		Type:      RequestTypeEnquiry,
		UserID:    userID,
		ProjectID: projectID,
		State:     RequestPending,
		Approval:  ApprovalPending,
		Query:     strings.TrimSpace(query),
		CreatedAt: s.now(),
	}
	if err := s.store.PutRequest(ctx, enquiry); err != nil {
		return Request{}, err
	}
	return enquiry, nil
}

// editableEnquiry loads an enquiry the user may still modify: it must exist,
// be an enquiry, be unanswered, and belong to the user.
func (s *Service) editableEnquiry(ctx context.Context, userID, requestID string) (Request, error) {
	enquiry, err := s.request(ctx, requestID, RequestTypeEnquiry)
	if err != nil {
		return Request{}, err
	}
	if enquiry.State != RequestPending {
		return Request{}, apperrors.WithMetadata(apperrors.CodeEnquiryAlreadyProcessed,
			"enquiry has already been processed", map[string]string{"request_id": requestID})
	}
	if enquiry.UserID != userID {
		return Request{}, apperrors.WithMetadata(apperrors.CodeEnquiryNotOwned,
			"enquiry belongs to another user", map[string]string{"request_id": requestID})
	}
	return enquiry, nil
}

// EditEnquiry replaces the text of the user's own unanswered enquiry.
func (s *Service) EditEnquiry(ctx context.Context, userID, requestID, query string) (Request, error) {
	enquiry, err := s.editableEnquiry(ctx, userID, requestID)
	if err != nil {
		return Request{}, err
	}
	enquiry.Query = strings.TrimSpace(query)
	if err := s.store.PutRequest(ctx, enquiry); err != nil {
		return Request{}, err
	}
	return enquiry, nil
}

// DeleteEnquiry removes the user's own unanswered enquiry.
func (s *Service) DeleteEnquiry(ctx context.Context, userID, requestID string) error {
	enquiry, err := s.editableEnquiry(ctx, userID, requestID)
	if err != nil {
		return err
	}
	return s.store.DeleteRequest(ctx, enquiry.ID)
}

// AnswerEnquiry records the one-time answer to an enquiry and marks it done.
func (s *Service) AnswerEnquiry(ctx context.Context, requestID, answer string) (Request, error) {
	enquiry, err := s.request(ctx, requestID, RequestTypeEnquiry)
	if err != nil {
		return Request{}, err
	}
	if enquiry.State != RequestPending {
		return Request{}, apperrors.WithMetadata(apperrors.CodeEnquiryAlreadyProcessed,
			"enquiry has already been answered", map[string]string{"request_id": requestID})
	}
	enquiry.Answer = strings.TrimSpace(answer)
	enquiry.State = RequestDone
	if err := s.store.PutRequest(ctx, enquiry); err != nil {
		return Request{}, err
	}
	return enquiry, nil
}
