package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// NotificationRepository puerto para notificaciones in-app.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
