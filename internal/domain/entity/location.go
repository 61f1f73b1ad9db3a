package entity

import "time"

// Location ubicación física dentro de una bodega (estante, rack, sala).
// Opcional en las transacciones del ledger.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
