package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockKey par (producto, bodega) sobre el que se calcula stock.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// TransactionFilter filtros para listar transacciones del ledger.
type TransactionFilter struct {
	ProductID   string
	WarehouseID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// LowStockItem producto cuyo stock derivado está bajo su punto de reorden.
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	OnHand       int64
	ReorderPoint int64
}

// TransactionRepository puerto de persistencia del ledger de inventario.
// Las filas son append-only; la única mutación permitida es MarkPendingAsIncome.
// El stock nunca se guarda: OnHand y OnHandBatch lo derivan con una sola
// agregación agrupada sobre las filas filtradas.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	ListByRequest(ctx context.Context, requestID string) ([]*entity.InventoryTransaction, error)
	List(ctx context.Context, f TransactionFilter) ([]*entity.InventoryTransaction, error)

	// DeletePendingByRequest borra las líneas PENDING de una solicitud
	// (solo durante el reemplazo completo de líneas en Draft).
	DeletePendingByRequest(ctx context.Context, requestID string) error

	// MarkPendingAsIncome convierte todas las PENDING de la solicitud en INCOME.
	// Devuelve cuántas filas cambiaron. Debe ejecutarse dentro de la misma
	// transacción de BD que el registro de historial.
	MarkPendingAsIncome(ctx context.Context, requestID string, at time.Time) (int64, error)

	// OnHand: ΣINCOME − ΣOUTCOME − ΣINSTALL del par; PENDING aporta 0;
	// sin filas, 0.
	OnHand(ctx context.Context, productID, warehouseID string) (int64, error)

	// OnHandBatch igual que OnHand para un conjunto de pares, en una sola
	// consulta agrupada (sin ida y vuelta por par).
	OnHandBatch(ctx context.Context, keys []StockKey) (map[StockKey]int64, error)

	// BelowReorderPoint productos activos con stock derivado bajo el punto de
	// reorden. warehouseID vacío = stock agregado de todas las bodegas.
	BelowReorderPoint(ctx context.Context, warehouseID string) ([]LowStockItem, error)
}
