package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

func (s *Store) GetApplicant(ctx context.Context, userID string) (domain.Applicant, error) {
	if err := ctx.Err(); err != nil {
		return domain.Applicant{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Applicant{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, name, age, marital_status, active_project_id
		   FROM applicants
		  WHERE user_id = ?`,
		userID,
	)
	var applicant domain.Applicant
	var marital string
	err := row.Scan(&applicant.UserID, &applicant.Name, &applicant.Age, &marital, &applicant.ActiveProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Applicant{}, domain.ErrNotFound
		}
		return domain.Applicant{}, fmt.Errorf("get applicant: %w", err)
	}
	applicant.MaritalStatus = domain.MaritalStatus(marital)
	if err := s.loadApplicantApplications(ctx, &applicant); err != nil {
		return domain.Applicant{}, err
	}
	return applicant, nil
}

func (s *Store) PutApplicant(ctx context.Context, applicant domain.Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if applicant.UserID == "" {
		return fmt.Errorf("applicant user id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO applicants (user_id, name, age, marital_status, active_project_id)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (user_id) DO UPDATE SET
			   name = excluded.name,
			   age = excluded.age,
			   marital_status = excluded.marital_status,
			   active_project_id = excluded.active_project_id`,
			applicant.UserID,
			applicant.Name,
			applicant.Age,
			string(applicant.MaritalStatus),
			applicant.ActiveProjectID,
		); err != nil {
			return fmt.Errorf("put applicant: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`DELETE FROM applicant_applications WHERE user_id = ?`,
			applicant.UserID,
		); err != nil {
			return fmt.Errorf("clear applicant applications: %w", err)
		}
		for projectID, status := range applicant.Statuses {
			flat := applicant.AppliedFlats[projectID]
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO applicant_applications (user_id, project_id, status, flat_type)
				 VALUES (?, ?, ?, ?)`,
				applicant.UserID, projectID, string(status), string(flat),
			); err != nil {
				return fmt.Errorf("put applicant application: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListApplicants(ctx context.Context) ([]domain.Applicant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id, name, age, marital_status, active_project_id
		   FROM applicants
		  ORDER BY user_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []domain.Applicant
	for rows.Next() {
		var applicant domain.Applicant
		var marital string
		if err := rows.Scan(&applicant.UserID, &applicant.Name, &applicant.Age, &marital, &applicant.ActiveProjectID); err != nil {
			return nil, fmt.Errorf("list applicants: %w", err)
		}
		applicant.MaritalStatus = domain.MaritalStatus(marital)
		applicants = append(applicants, applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	for i := range applicants {
		if err := s.loadApplicantApplications(ctx, &applicants[i]); err != nil {
			return nil, err
		}
	}
	return applicants, nil
}

func (s *Store) loadApplicantApplications(ctx context.Context, applicant *domain.Applicant) error {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT project_id, status, flat_type FROM applicant_applications WHERE user_id = ?`,
		applicant.UserID,
	)
	if err != nil {
		return fmt.Errorf("load applicant applications: %w", err)
	}
	defer rows.Close()

	applicant.Statuses = make(map[string]domain.ApplicationStatus)
	applicant.AppliedFlats = make(map[string]domain.FlatType)
	for rows.Next() {
		var projectID, status, flat string
		if err := rows.Scan(&projectID, &status, &flat); err != nil {
			return fmt.Errorf("load applicant applications: %w", err)
		}
		applicant.Statuses[projectID] = domain.ApplicationStatus(status)
		if flat != "" {
			applicant.AppliedFlats[projectID] = domain.FlatType(flat)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load applicant applications: %w", err)
	}
	return nil
}

func (s *Store) GetOfficer(ctx context.Context, userID string) (domain.Officer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Officer{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Officer{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT user_id FROM officers WHERE user_id = ?`, userID)
	var officer domain.Officer
	if err := row.Scan(&officer.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Officer{}, domain.ErrNotFound
		}
		return domain.Officer{}, fmt.Errorf("get officer: %w", err)
	}
	if err := s.loadOfficerRegistrations(ctx, &officer); err != nil {
		return domain.Officer{}, err
	}
	return officer, nil
}

func (s *Store) PutOfficer(ctx context.Context, officer domain.Officer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if officer.UserID == "" {
		return fmt.Errorf("officer user id is required")
	}

	assigned := make(map[string]int, len(officer.RegisteredProjectIDs))
	for i, projectID := range officer.RegisteredProjectIDs {
		assigned[projectID] = i
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO officers (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`,
			officer.UserID,
		); err != nil {
			return fmt.Errorf("put officer: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`DELETE FROM officer_registrations WHERE user_id = ?`,
			officer.UserID,
		); err != nil {
			return fmt.Errorf("clear officer registrations: %w", err)
		}
		for projectID, status := range officer.Statuses {
			position, isAssigned := assigned[projectID]
			assignedFlag := 0
			if isAssigned {
				assignedFlag = 1
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO officer_registrations (user_id, project_id, status, assigned, position)
				 VALUES (?, ?, ?, ?, ?)`,
				officer.UserID, projectID, string(status), assignedFlag, position,
			); err != nil {
				return fmt.Errorf("put officer registration: %w", err)
			}
		}
		// An assignment without a recorded status should not be silently lost.
		for projectID, position := range assigned {
			if _, ok := officer.Statuses[projectID]; ok {
				continue
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO officer_registrations (user_id, project_id, status, assigned, position)
				 VALUES (?, ?, ?, 1, ?)`,
				officer.UserID, projectID, string(domain.RegistrationApproved), position,
			); err != nil {
				return fmt.Errorf("put officer registration: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListOfficers(ctx context.Context) ([]domain.Officer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT user_id FROM officers ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	ids, err := collectStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}

	officers := make([]domain.Officer, 0, len(ids))
	for _, id := range ids {
		officer := domain.Officer{UserID: id}
		if err := s.loadOfficerRegistrations(ctx, &officer); err != nil {
			return nil, err
		}
		officers = append(officers, officer)
	}
	return officers, nil
}

func (s *Store) loadOfficerRegistrations(ctx context.Context, officer *domain.Officer) error {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT project_id, status, assigned
		   FROM officer_registrations
		  WHERE user_id = ?
		  ORDER BY position ASC, project_id ASC`,
		officer.UserID,
	)
	if err != nil {
		return fmt.Errorf("load officer registrations: %w", err)
	}
	defer rows.Close()

	officer.Statuses = make(map[string]domain.RegistrationStatus)
	for rows.Next() {
		var projectID, status string
		var assigned int
		if err := rows.Scan(&projectID, &status, &assigned); err != nil {
			return fmt.Errorf("load officer registrations: %w", err)
		}
		officer.Statuses[projectID] = domain.RegistrationStatus(status)
		if assigned != 0 {
			officer.RegisteredProjectIDs = append(officer.RegisteredProjectIDs, projectID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load officer registrations: %w", err)
	}
	return nil
}

func (s *Store) GetManager(ctx context.Context, userID string) (domain.Manager, error) {
	if err := ctx.Err(); err != nil {
		return domain.Manager{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Manager{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, name FROM managers WHERE user_id = ?`,
		userID,
	)
	var manager domain.Manager
	if err := row.Scan(&manager.UserID, &manager.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Manager{}, domain.ErrNotFound
		}
		return domain.Manager{}, fmt.Errorf("get manager: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT project_id FROM manager_projects WHERE user_id = ? ORDER BY position ASC`,
		userID,
	)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("load manager projects: %w", err)
	}
	manager.ProjectIDs, err = collectStrings(rows)
	if err != nil {
		return domain.Manager{}, fmt.Errorf("load manager projects: %w", err)
	}
	return manager, nil
}

func (s *Store) PutManager(ctx context.Context, manager domain.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if manager.UserID == "" {
		return fmt.Errorf("manager user id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO managers (user_id, name) VALUES (?, ?)
			 ON CONFLICT (user_id) DO UPDATE SET name = excluded.name`,
			manager.UserID,
			manager.Name,
		); err != nil {
			return fmt.Errorf("put manager: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`DELETE FROM manager_projects WHERE user_id = ?`,
			manager.UserID,
		); err != nil {
			return fmt.Errorf("clear manager projects: %w", err)
		}
		for i, projectID := range manager.ProjectIDs {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO manager_projects (user_id, position, project_id) VALUES (?, ?, ?)`,
				manager.UserID, i, projectID,
			); err != nil {
				return fmt.Errorf("put manager project: %w", err)
			}
		}
		return nil
	})
}
