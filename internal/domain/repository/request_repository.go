package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// RequestRepository puerto de persistencia para solicitudes de compra.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para que la
	// transición lea el estado vigente dentro de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Request, error)
	// UpdateStatus fija el nuevo estado y updated_at; approvedBy solo se
	// escribe cuando no es nil (acción Approve).
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus, approvedBy *string, at time.Time) error
	// UpdateInfo actualiza título y descripción (solo en Draft).
	UpdateInfo(ctx context.Context, id, title, description string, at time.Time) error
	List(ctx context.Context, status *entity.RequestStatus, limit, offset int) ([]*entity.Request, error)
	// Count total de solicitudes que cumplen el filtro, sin paginar.
	Count(ctx context.Context, status *entity.RequestStatus) (int64, error)
}
