package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger. El signo lo da el tipo, no la cantidad:
// INCOME suma al stock, OUTCOME e INSTALL restan; PENDING no afecta el stock
// (cantidad reservada por una solicitud aún no recibida).
const (
	TxTypeIncome  = "INCOME"
	TxTypeOutcome = "OUTCOME"
	TxTypeInstall = "INSTALL"
	TxTypePending = "PENDING"
)

// InventoryTransaction entrada del ledger de inventario (append-only).
// Quantity siempre es positiva. Una vez creada es inmutable, con una sola
// excepción: el flip PENDING→INCOME cuando la solicitud marca ítems recibidos.
type InventoryTransaction struct {
	ID          string
	ProductID   string
	WarehouseID string
	LocationID  *string
	Type        string
	Quantity    int64
	UnitPrice   *decimal.Decimal
	TotalPrice  *decimal.Decimal // UnitPrice × Quantity cuando hay precio
	Date        time.Time
	UserID      string // actor que generó la transacción
	Description string
	RequestID   *string // presente cuando la fila nació de una solicitud
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
