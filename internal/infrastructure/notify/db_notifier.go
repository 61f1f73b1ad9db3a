// Package notify implementa el canal de notificaciones in-app sobre la base
// de datos. El canal es best-effort: los errores se devuelven al caller, que
// decide si los ignora (las transiciones de solicitud los registran y siguen).
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apprequest "github.com/jhoicas/Compras-api/internal/application/request"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ apprequest.Notifier = (*DBNotifier)(nil)

// DBNotifier persiste cada notificación como fila en la tabla notifications.
type DBNotifier struct {
	repo repository.NotificationRepository
}

func NewDBNotifier(repo repository.NotificationRepository) *DBNotifier {
	return &DBNotifier{repo: repo}
}

// Notify crea la notificación para el usuario destino.
func (n *DBNotifier) Notify(ctx context.Context, targetUserID, title, message string) error {
	err := n.repo.Create(ctx, &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    targetUserID,
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
