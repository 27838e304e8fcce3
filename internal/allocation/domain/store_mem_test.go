package domain

import (
	"context"
	"sort"
)

// memStore is an in-memory Store for exercising the workflow engine without
// a database. Reads return copies so aliasing cannot leak mutations past a
// Put; request listings preserve insertion order.
type memStore struct {
	projects   map[string]Project
	applicants map[string]Applicant
	officers   map[string]Officer
	managers   map[string]Manager
	requests   map[string]Request
	requestIDs []string
}

func newMemStore() *memStore {
	return &memStore{
		projects:   make(map[string]Project),
		applicants: make(map[string]Applicant),
		officers:   make(map[string]Officer),
		managers:   make(map[string]Manager),
		requests:   make(map[string]Request),
	}
}

func cloneProject(p Project) Project {
	out := p
	out.Neighborhoods = append([]string(nil), p.Neighborhoods...)
	out.OfficerIDs = append([]string(nil), p.OfficerIDs...)
	out.BookedApplicantIDs = append([]string(nil), p.BookedApplicantIDs...)
	out.Units = make(map[FlatType]int, len(p.Units))
	for k, v := range p.Units {
		out.Units[k] = v
	}
	out.Prices = make(map[FlatType]int, len(p.Prices))
	for k, v := range p.Prices {
		out.Prices[k] = v
	}
	return out
}

func cloneApplicant(a Applicant) Applicant {
	out := a
	out.Statuses = make(map[string]ApplicationStatus, len(a.Statuses))
	for k, v := range a.Statuses {
		out.Statuses[k] = v
	}
	out.AppliedFlats = make(map[string]FlatType, len(a.AppliedFlats))
	for k, v := range a.AppliedFlats {
		out.AppliedFlats[k] = v
	}
	return out
}

func cloneOfficer(o Officer) Officer {
	out := o
	out.RegisteredProjectIDs = append([]string(nil), o.RegisteredProjectIDs...)
	out.Statuses = make(map[string]RegistrationStatus, len(o.Statuses))
	for k, v := range o.Statuses {
		out.Statuses[k] = v
	}
	return out
}

func cloneManager(m Manager) Manager {
	out := m
	out.ProjectIDs = append([]string(nil), m.ProjectIDs...)
	return out
}

func (s *memStore) GetProject(_ context.Context, projectID string) (Project, error) {
	p, ok := s.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	return cloneProject(p), nil
}

func (s *memStore) PutProject(_ context.Context, project Project) error {
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *memStore) DeleteProject(_ context.Context, projectID string) error {
	delete(s.projects, projectID)
	return nil
}

func (s *memStore) ListProjects(_ context.Context) ([]Project, error) {
	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Project, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneProject(s.projects[id]))
	}
	return out, nil
}

func (s *memStore) GetApplicant(_ context.Context, userID string) (Applicant, error) {
	a, ok := s.applicants[userID]
	if !ok {
		return Applicant{}, ErrNotFound
	}
	return cloneApplicant(a), nil
}

func (s *memStore) PutApplicant(_ context.Context, applicant Applicant) error {
	s.applicants[applicant.UserID] = cloneApplicant(applicant)
	return nil
}

func (s *memStore) ListApplicants(_ context.Context) ([]Applicant, error) {
	ids := make([]string, 0, len(s.applicants))
	for id := range s.applicants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Applicant, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneApplicant(s.applicants[id]))
	}
	return out, nil
}

func (s *memStore) GetOfficer(_ context.Context, userID string) (Officer, error) {
	o, ok := s.officers[userID]
	if !ok {
		return Officer{}, ErrNotFound
	}
	return cloneOfficer(o), nil
}

func (s *memStore) PutOfficer(_ context.Context, officer Officer) error {
	s.officers[officer.UserID] = cloneOfficer(officer)
	return nil
}

func (s *memStore) ListOfficers(_ context.Context) ([]Officer, error) {
	ids := make([]string, 0, len(s.officers))
	for id := range s.officers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Officer, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneOfficer(s.officers[id]))
	}
	return out, nil
}

func (s *memStore) GetManager(_ context.Context, userID string) (Manager, error) {
	m, ok := s.managers[userID]
	if !ok {
		return Manager{}, ErrNotFound
	}
	return cloneManager(m), nil
}

func (s *memStore) PutManager(_ context.Context, manager Manager) error {
	s.managers[manager.UserID] = cloneManager(manager)
	return nil
}

func (s *memStore) GetRequest(_ context.Context, requestID string) (Request, error) {
	r, ok := s.requests[requestID]
	if !ok {
		return Request{}, ErrNotFound
	}
	return r, nil
}

func (s *memStore) PutRequest(_ context.Context, request Request) error {
	if _, ok := s.requests[request.ID]; !ok {
		s.requestIDs = append(s.requestIDs, request.ID)
	}
	s.requests[request.ID] = request
	return nil
}

func (s *memStore) DeleteRequest(_ context.Context, requestID string) error {
	if _, ok := s.requests[requestID]; !ok {
		return nil
	}
	delete(s.requests, requestID)
	for i, id := range s.requestIDs {
		if id == requestID {
			s.requestIDs = append(s.requestIDs[:i], s.requestIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memStore) ListRequests(_ context.Context) ([]Request, error) {
	out := make([]Request, 0, len(s.requestIDs))
	for _, id := range s.requestIDs {
		out = append(out, s.requests[id])
	}
	return out, nil
}

func (s *memStore) ListRequestsByProject(_ context.Context, projectID string) ([]Request, error) {
	var out []Request
	for _, id := range s.requestIDs {
		if r := s.requests[id]; r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListRequestsByUser(_ context.Context, userID string) ([]Request, error) {
	var out []Request
	for _, id := range s.requestIDs {
		if r := s.requests[id]; r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
