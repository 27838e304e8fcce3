package domain

import (
	"context"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// EligibleProject pairs a project with the highest flat type the applicant
// qualifies for on it.
type EligibleProject struct {
	Project  Project
	Eligible FlatType
}

// EligibleProjects lists the projects the applicant may currently apply to,
// after applying the caller's filter criteria.
func (s *Service) EligibleProjects(ctx context.Context, applicantID string, criteria Criteria) ([]EligibleProject, error) {
	applicant, err := s.applicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	filtered := FilterProjects(projects, criteria)
	out := make([]EligibleProject, 0, len(filtered))
	for _, p := range filtered {
		if flat := Eligibility(&applicant, &p, today); flat != "" {
			out = append(out, EligibleProject{Project: p, Eligible: flat})
		}
	}
	return out, nil
}

// ListProjects returns all projects after applying the filter criteria.
func (s *Service) ListProjects(ctx context.Context, criteria Criteria) ([]Project, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProjects(projects, criteria), nil
}

// UserRequests lists every request submitted by the user.
func (s *Service) UserRequests(ctx context.Context, userID string) ([]Request, error) {
	return s.store.ListRequestsByUser(ctx, userID)
}

// ProjectEnquiries lists the enquiries submitted against one project.
func (s *Service) ProjectEnquiries(ctx context.Context, projectID string) ([]Request, error) {
	requests, err := s.store.ListRequestsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if r.Type == RequestTypeEnquiry {
			out = append(out, r)
		}
	}
	return out, nil
}

// Receipt summarizes one booked flat for receipt generation.
type Receipt struct {
	ApplicantID   string
	ApplicantName string
	Age           int
	MaritalStatus MaritalStatus
	ProjectID     string
	ProjectName   string
	FlatType      FlatType
	Price         int
}

// BookingReceipts lists a receipt for every booked applicant across the
// projects the officer services.
func (s *Service) BookingReceipts(ctx context.Context, officerID string) ([]Receipt, error) {
	officer, err := s.officer(ctx, officerID)
	if err != nil {
		return nil, err
	}

	var receipts []Receipt
	for _, projectID := range officer.RegisteredProjectIDs {
		project, err := s.project(ctx, projectID)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeProjectNotFound) {
				continue
			}
			return nil, err
		}
		for _, applicantID := range project.BookedApplicantIDs {
			applicant, err := s.applicant(ctx, applicantID)
			if err != nil {
				if apperrors.IsCode(err, apperrors.CodeApplicantNotFound) {
					continue
				}
				return nil, err
			}
			flat := applicant.AppliedFlats[projectID]
			receipts = append(receipts, Receipt{
				ApplicantID:   applicantID,
				ApplicantName: applicant.Name,
				Age:           applicant.Age,
				MaritalStatus: applicant.MaritalStatus,
				ProjectID:     projectID,
				ProjectName:   project.Name,
				FlatType:      flat,
				Price:         project.PriceFor(flat),
			})
		}
	}
	return receipts, nil
}
