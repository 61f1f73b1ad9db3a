package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// LocationRepository puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Location, error)
}
