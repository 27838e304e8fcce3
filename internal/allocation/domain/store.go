package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store implementations when a record is absent.
// Workflow operations translate it into the coded failure for the entity
// being looked up.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary the workflow engine depends on. The
// engine calls it after every committing mutation and never inspects the
// storage format.
type Store interface {
	GetProject(ctx context.Context, projectID string) (Project, error)
	PutProject(ctx context.Context, project Project) error
	DeleteProject(ctx context.Context, projectID string) error
	ListProjects(ctx context.Context) ([]Project, error)

	GetApplicant(ctx context.Context, userID string) (Applicant, error)
	PutApplicant(ctx context.Context, applicant Applicant) error
	ListApplicants(ctx context.Context) ([]Applicant, error)

	GetOfficer(ctx context.Context, userID string) (Officer, error)
	PutOfficer(ctx context.Context, officer Officer) error
	ListOfficers(ctx context.Context) ([]Officer, error)

	GetManager(ctx context.Context, userID string) (Manager, error)
	PutManager(ctx context.Context, manager Manager) error

	GetRequest(ctx context.Context, requestID string) (Request, error)
	PutRequest(ctx context.Context, request Request) error
	DeleteRequest(ctx context.Context, requestID string) error
	ListRequests(ctx context.Context) ([]Request, error)
	ListRequestsByProject(ctx context.Context, projectID string) ([]Request, error)
	ListRequestsByUser(ctx context.Context, userID string) ([]Request, error)
}
