package request

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las operaciones
// multi-fila del workflow (crear con líneas, reemplazar líneas, recibir ítems).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
		historyRepo repository.RequestHistoryRepository,
	) error) error
}

// Notifier canal de notificación best-effort hacia el creador de la solicitud.
// Puede fallar: el caso de uso registra el error y continúa; un fallo aquí
// jamás revierte ni reporta como fallida la transición.
type Notifier interface {
	Notify(ctx context.Context, targetUserID, title, message string) error
}
