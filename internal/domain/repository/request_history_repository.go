package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RequestHistoryRepository puerto del historial de transiciones (append-only).
type RequestHistoryRepository interface {
	Create(ctx context.Context, h *entity.RequestHistory) error
	ListByRequest(ctx context.Context, requestID string) ([]*entity.RequestHistory, error)
}
