package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

func (s *Store) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Project{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, open_date, close_date, manager_id, officer_slots, visible
		   FROM projects
		  WHERE id = ?`,
		projectID,
	)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	if err := s.loadProjectChildren(ctx, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *Store) PutProject(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if project.ID == "" {
		return fmt.Errorf("project id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		visible := 0
		if project.Visible {
			visible = 1
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO projects (id, name, open_date, close_date, manager_id, officer_slots, visible)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			   name = excluded.name,
			   open_date = excluded.open_date,
			   close_date = excluded.close_date,
			   manager_id = excluded.manager_id,
			   officer_slots = excluded.officer_slots,
			   visible = excluded.visible`,
			project.ID,
			project.Name,
			toMillis(project.OpenDate),
			toMillis(project.CloseDate),
			project.ManagerID,
			project.OfficerSlots,
			visible,
		); err != nil {
			return fmt.Errorf("put project: %w", err)
		}
		if err := deleteProjectChildren(ctx, tx, project.ID); err != nil {
			return err
		}

		for i, name := range project.Neighborhoods {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO project_neighborhoods (project_id, position, name) VALUES (?, ?, ?)`,
				project.ID, i, name,
			); err != nil {
				return fmt.Errorf("put project neighborhood: %w", err)
			}
		}
		for _, flat := range domain.FlatTypes() {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO project_units (project_id, flat_type, units, price) VALUES (?, ?, ?, ?)`,
				project.ID, string(flat), project.UnitsFor(flat), project.PriceFor(flat),
			); err != nil {
				return fmt.Errorf("put project units: %w", err)
			}
		}
		for i, userID := range project.OfficerIDs {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO project_officers (project_id, position, user_id) VALUES (?, ?, ?)`,
				project.ID, i, userID,
			); err != nil {
				return fmt.Errorf("put project officer: %w", err)
			}
		}
		for i, userID := range project.BookedApplicantIDs {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO project_booked_applicants (project_id, position, user_id) VALUES (?, ?, ?)`,
				project.ID, i, userID,
			); err != nil {
				return fmt.Errorf("put project booked applicant: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, projectID); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return deleteProjectChildren(ctx, tx, projectID)
	})
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, open_date, close_date, manager_id, officer_slots, visible
		   FROM projects
		  ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		if err := s.loadProjectChildren(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var project domain.Project
	var openDate, closeDate int64
	var visible int
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&openDate,
		&closeDate,
		&project.ManagerID,
		&project.OfficerSlots,
		&visible,
	); err != nil {
		return domain.Project{}, err
	}
	project.OpenDate = fromMillis(openDate)
	project.CloseDate = fromMillis(closeDate)
	project.Visible = visible != 0
	return project, nil
}

func (s *Store) loadProjectChildren(ctx context.Context, project *domain.Project) error {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name FROM project_neighborhoods WHERE project_id = ? ORDER BY position ASC`,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("load project neighborhoods: %w", err)
	}
	project.Neighborhoods, err = collectStrings(rows)
	if err != nil {
		return fmt.Errorf("load project neighborhoods: %w", err)
	}

	project.Units = make(map[domain.FlatType]int)
	project.Prices = make(map[domain.FlatType]int)
	unitRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT flat_type, units, price FROM project_units WHERE project_id = ?`,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("load project units: %w", err)
	}
	defer unitRows.Close()
	for unitRows.Next() {
		var flat string
		var units, price int
		if err := unitRows.Scan(&flat, &units, &price); err != nil {
			return fmt.Errorf("load project units: %w", err)
		}
		project.Units[domain.FlatType(flat)] = units
		project.Prices[domain.FlatType(flat)] = price
	}
	if err := unitRows.Err(); err != nil {
		return fmt.Errorf("load project units: %w", err)
	}

	officerRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id FROM project_officers WHERE project_id = ? ORDER BY position ASC`,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("load project officers: %w", err)
	}
	project.OfficerIDs, err = collectStrings(officerRows)
	if err != nil {
		return fmt.Errorf("load project officers: %w", err)
	}

	bookedRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT user_id FROM project_booked_applicants WHERE project_id = ? ORDER BY position ASC`,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("load project booked applicants: %w", err)
	}
	project.BookedApplicantIDs, err = collectStrings(bookedRows)
	if err != nil {
		return fmt.Errorf("load project booked applicants: %w", err)
	}
	return nil
}

func deleteProjectChildren(ctx context.Context, tx *sql.Tx, projectID string) error {
	for _, table := range []string{
		"project_neighborhoods",
		"project_units",
		"project_officers",
		"project_booked_applicants",
	} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var out []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}
