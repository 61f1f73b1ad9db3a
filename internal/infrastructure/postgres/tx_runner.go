package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	apprequest "github.com/jhoicas/Compras-api/internal/application/request"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Ensure TxRunner implements request.TxRunner.
var _ apprequest.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El nivel de aislamiento por defecto (read committed) es suficiente:
// ninguna escritura parcial es visible y un fallo a mitad de camino
// deja el estado previo intacto.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	requestRepo repository.RequestRepository,
	historyRepo repository.RequestHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	requestRepo := NewRequestRepository(tx)
	historyRepo := NewRequestHistoryRepository(tx)

	if err := fn(txRepo, requestRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
