package domain

import (
	"context"
	"time"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// ProjectParams are the manager-editable fields of a project.
type ProjectParams struct {
	Name          string
	Neighborhoods []string
	Units         map[FlatType]int
	Prices        map[FlatType]int
	OpenDate      time.Time
	CloseDate     time.Time
	OfficerSlots  int
	Visible       bool
}

// CreateProject creates a project owned by the manager. Project names are
// unique across the system, and a manager cannot run two projects whose
// application windows intersect. New projects are visible by default.
func (s *Service) CreateProject(ctx context.Context, managerID string, params ProjectParams) (Project, error) {
	manager, err := s.manager(ctx, managerID)
	if err != nil {
		return Project{}, err
	}

	existing, err := s.store.ListProjects(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range existing {
		if p.Name == params.Name {
			return Project{}, apperrors.WithMetadata(apperrors.CodeProjectNameTaken,
				"a project with this name already exists",
				map[string]string{"name": params.Name, "project_id": p.ID})
		}
		if p.ManagerID == managerID && p.WindowOverlaps(params.OpenDate, params.CloseDate) {
			return Project{}, apperrors.WithMetadata(apperrors.CodeProjectWindowOverlap,
				"manager already runs a project with an overlapping window",
				map[string]string{"project_id": p.ID})
		}
	}

	projectID, err := s.newProjectID()
	if err != nil {
		return Project{}, err
	}

	project := Project{
		ID:            projectID,
		Name:          params.Name,
		Neighborhoods: params.Neighborhoods,
		Units:         params.Units,
		Prices:        params.Prices,
		OpenDate:      params.OpenDate,
		CloseDate:     params.CloseDate,
		ManagerID:     managerID,
		OfficerSlots:  params.OfficerSlots,
		Visible:       true,
	}
	if project.Units == nil {
		project.Units = make(map[FlatType]int)
	}
	if project.Prices == nil {
		project.Prices = make(map[FlatType]int)
	}

	if err := s.store.PutProject(ctx, project); err != nil {
		return Project{}, err
	}
	manager.addProject(projectID)
	if err := s.store.PutManager(ctx, manager); err != nil {
		return Project{}, err
	}
	return project, nil
}

// EditProject replaces the editable fields of a project. The project ID and
// owning manager are immutable.
func (s *Service) EditProject(ctx context.Context, projectID string, params ProjectParams) (Project, error) {
	project, err := s.project(ctx, projectID)
	if err != nil {
		return Project{}, err
	}

	project.Name = params.Name
	project.Neighborhoods = params.Neighborhoods
	project.Units = params.Units
	project.Prices = params.Prices
	project.OpenDate = params.OpenDate
	project.CloseDate = params.CloseDate
	project.OfficerSlots = params.OfficerSlots
	project.Visible = params.Visible
	if project.Units == nil {
		project.Units = make(map[FlatType]int)
	}
	if project.Prices == nil {
		project.Prices = make(map[FlatType]int)
	}

	if err := s.store.PutProject(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// ToggleVisibility flips the project's visibility and returns the new value.
func (s *Service) ToggleVisibility(ctx context.Context, projectID string) (bool, error) {
	project, err := s.project(ctx, projectID)
	if err != nil {
		return false, err
	}
	project.Visible = !project.Visible
	if err := s.store.PutProject(ctx, project); err != nil {
		return false, err
	}
	return project.Visible, nil
}

// DeleteProject removes a project and cleans up every reference to it: the
// owning manager's project set, all requests (enquiries included), applicants
// whose active application pointed at it, and officers registered to it.
func (s *Service) DeleteProject(ctx context.Context, projectID string) error {
	project, err := s.project(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	manager, err := s.manager(ctx, project.ManagerID)
	if err == nil {
		manager.removeProject(projectID)
		if err := s.store.PutManager(ctx, manager); err != nil {
			return err
		}
	} else if !apperrors.IsCode(err, apperrors.CodeManagerNotFound) {
		return err
	}

	requests, err := s.store.ListRequestsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, r := range requests {
		if err := s.store.DeleteRequest(ctx, r.ID); err != nil {
			return err
		}
	}

	applicants, err := s.store.ListApplicants(ctx)
	if err != nil {
		return err
	}
	for _, a := range applicants {
		if a.ActiveProjectID != projectID {
			continue
		}
		a.ActiveProjectID = ""
		a.setStatus(projectID, ApplicationUnsuccessful)
		a.clearAppliedFlat(projectID)
		if err := s.store.PutApplicant(ctx, a); err != nil {
			return err
		}
	}

	officers, err := s.store.ListOfficers(ctx)
	if err != nil {
		return err
	}
	for _, o := range officers {
		if _, ok := o.Statuses[projectID]; !ok && !o.AssignedTo(projectID) {
			continue
		}
		o.removeRegisteredProject(projectID)
		o.setStatus(projectID, RegistrationRejected)
		if err := s.store.PutOfficer(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
