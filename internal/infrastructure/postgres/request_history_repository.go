package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.RequestHistoryRepository = (*RequestHistoryRepo)(nil)

// RequestHistoryRepo implementación PostgreSQL del historial de transiciones.
type RequestHistoryRepo struct {
	q Querier
}

func NewRequestHistoryRepository(q Querier) *RequestHistoryRepo {
	return &RequestHistoryRepo{q: q}
}

func (r *RequestHistoryRepo) Create(ctx context.Context, h *entity.RequestHistory) error {
	query := `
		INSERT INTO request_history (id, request_id, old_status, new_status, comment, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, h.ID, h.RequestID, h.OldStatus, h.NewStatus, h.Comment, h.ChangedBy, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("create request history: %w", err)
	}
	return nil
}

func (r *RequestHistoryRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.RequestHistory, error) {
	query := `
		SELECT id, request_id, old_status, new_status, comment, changed_by, changed_at
		FROM request_history
		WHERE request_id = $1
		ORDER BY changed_at, id`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list request history: %w", err)
	}
	defer rows.Close()

	var list []*entity.RequestHistory
	for rows.Next() {
		var h entity.RequestHistory
		if err := rows.Scan(&h.ID, &h.RequestID, &h.OldStatus, &h.NewStatus, &h.Comment, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan request history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
