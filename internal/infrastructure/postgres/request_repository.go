package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, title, description, status, created_by, approved_by, created_at, updated_at`

// RequestRepo implementación PostgreSQL del repositorio de solicitudes.
type RequestRepo struct {
	q Querier
}

func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO requests (id, title, description, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, req.ID, req.Title, req.Description, req.Status, req.CreatedBy, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate bloquea la fila con FOR UPDATE; llamar solo dentro de una
// transacción. El estado leído aquí es el vigente hasta el commit.
func (r *RequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *RequestRepo) getOne(ctx context.Context, query, id string) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

func (r *RequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus, approvedBy *string, at time.Time) error {
	var (
		query string
		args  []any
	)
	if approvedBy != nil {
		query = `UPDATE requests SET status = $2, approved_by = $3, updated_at = $4 WHERE id = $1`
		args = []any{id, status, *approvedBy, at}
	} else {
		query = `UPDATE requests SET status = $2, updated_at = $3 WHERE id = $1`
		args = []any{id, status, at}
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update request status: no rows affected")
	}
	return nil
}

func (r *RequestRepo) UpdateInfo(ctx context.Context, id, title, description string, at time.Time) error {
	query := `UPDATE requests SET title = $2, description = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, title, description, at); err != nil {
		return fmt.Errorf("update request info: %w", err)
	}
	return nil
}

func (r *RequestRepo) List(ctx context.Context, status *entity.RequestStatus, limit, offset int) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests`
	var args []any
	pos := 1
	if status != nil {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, *status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func (r *RequestRepo) Count(ctx context.Context, status *entity.RequestStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM requests`
	var args []any
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	var total int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return total, nil
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var req entity.Request
	var description *string
	err := row.Scan(&req.ID, &req.Title, &description, &req.Status,
		&req.CreatedBy, &req.ApprovedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description != nil {
		req.Description = *description
	}
	return &req, nil
}
