package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionResponse representación de una transacción del ledger.
type TransactionResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	LocationID  *string          `json:"location_id,omitempty"`
	Type        string           `json:"type"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice  *decimal.Decimal `json:"total_price,omitempty"`
	Date        time.Time        `json:"date"`
	UserID      string           `json:"user_id"`
	Description string           `json:"description,omitempty"`
	RequestID   *string          `json:"request_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// StockPairRequest par producto/bodega para la consulta batch de stock.
type StockPairRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
}

// OnHandBatchRequest body para POST /api/inventory/on-hand/batch.
type OnHandBatchRequest struct {
	Pairs []StockPairRequest `json:"pairs"`
}

// OnHandResponse stock derivado de un par producto/bodega.
type OnHandResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	OnHand      int64  `json:"on_hand"`
}

// LowStockItemResponse producto bajo punto de reorden (tablero Kanban).
type LowStockItemResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	OnHand       int64  `json:"on_hand"`
	ReorderPoint int64  `json:"reorder_point"`
	Deficit      int64  `json:"deficit"` // ReorderPoint - OnHand
}
