package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

const requestColumns = `id, type, user_id, project_id, state, approval, flat_type, query, answer, created_at`

func (s *Store) GetRequest(ctx context.Context, requestID string) (domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return domain.Request{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Request{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`,
		requestID,
	)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Request{}, domain.ErrNotFound
		}
		return domain.Request{}, fmt.Errorf("get request: %w", err)
	}
	return request, nil
}

func (s *Store) PutRequest(ctx context.Context, request domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if request.ID == "" {
		return fmt.Errorf("request id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO requests (id, type, user_id, project_id, state, approval, flat_type, query, answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   type = excluded.type,
		   user_id = excluded.user_id,
		   project_id = excluded.project_id,
		   state = excluded.state,
		   approval = excluded.approval,
		   flat_type = excluded.flat_type,
		   query = excluded.query,
		   answer = excluded.answer,
		   created_at = excluded.created_at`,
		request.ID,
		string(request.Type),
		request.UserID,
		request.ProjectID,
		string(request.State),
		string(request.Approval),
		string(request.FlatType),
		request.Query,
		request.Answer,
		toMillis(request.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put request: %w", err)
	}
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, requestID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, requestID); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

func (s *Store) ListRequests(ctx context.Context) ([]domain.Request, error) {
	return s.listRequests(ctx, `SELECT `+requestColumns+` FROM requests ORDER BY created_at ASC, rowid ASC`)
}

func (s *Store) ListRequestsByProject(ctx context.Context, projectID string) ([]domain.Request, error) {
	return s.listRequests(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE project_id = ? ORDER BY created_at ASC, rowid ASC`,
		projectID)
}

func (s *Store) ListRequestsByUser(ctx context.Context, userID string) ([]domain.Request, error) {
	return s.listRequests(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE user_id = ? ORDER BY created_at ASC, rowid ASC`,
		userID)
}

func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func scanRequest(row rowScanner) (domain.Request, error) {
	var request domain.Request
	var kind, state, approval, flat string
	var createdAt int64
	if err := row.Scan(
		&request.ID,
		&kind,
		&request.UserID,
		&request.ProjectID,
		&state,
		&approval,
		&flat,
		&request.Query,
		&request.Answer,
		&createdAt,
	); err != nil {
		return domain.Request{}, err
	}
	request.Type = domain.RequestType(kind)
	request.State = domain.RequestState(state)
	request.Approval = domain.ApprovedStatus(approval)
	request.FlatType = domain.FlatType(flat)
	request.CreatedAt = fromMillis(createdAt)
	return request, nil
}
