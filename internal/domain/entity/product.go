package entity

import "time"

// Product producto o SKU del inventario. El stock no se guarda aquí:
// se deriva sumando las transacciones del ledger por producto/bodega.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	ReorderPoint int64 // 0 = sin alerta de stock bajo
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
