package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestItemInput línea de una solicitud (se materializa como transacción PENDING).
type RequestItemInput struct {
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	LocationID  *string          `json:"location_id,omitempty"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Description string           `json:"description,omitempty"`
}

// CreateRequestRequest body para POST /api/requests.
type CreateRequestRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Items       []RequestItemInput `json:"items"`
}

// UpdateRequestRequest body para PUT /api/requests/:id (solo en Draft; reemplaza todas las líneas).
type UpdateRequestRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Items       []RequestItemInput `json:"items"`
}

// TransitionRequest body opcional para las acciones de transición.
type TransitionRequest struct {
	Comment string `json:"comment,omitempty"`
}

// RequestResponse representación de una solicitud.
type RequestResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	ApprovedBy  *string    `json:"approved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	Items []TransactionResponse `json:"items,omitempty"`
}

// RequestHistoryResponse una transición del historial.
type RequestHistoryResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Comment   string    `json:"comment,omitempty"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// RequestListResponse listado paginado de solicitudes. Total es el conteo
// global de filas que cumplen el filtro, no el tamaño de la página.
type RequestListResponse struct {
	Total    int64             `json:"total"`
	Requests []RequestResponse `json:"requests"`
}
