package entity

import "time"

// RequestStatus estado de una solicitud de compra (conjunto cerrado).
type RequestStatus string

// Estados del ciclo de vida de una solicitud.
const (
	StatusDraft          RequestStatus = "DRAFT"
	StatusSubmitted      RequestStatus = "SUBMITTED"
	StatusApproved       RequestStatus = "APPROVED"
	StatusInProgress     RequestStatus = "IN_PROGRESS"
	StatusItemsReceived  RequestStatus = "ITEMS_RECEIVED"
	StatusItemsInstalled RequestStatus = "ITEMS_INSTALLED"
	StatusCompleted      RequestStatus = "COMPLETED"
	StatusCancelled      RequestStatus = "CANCELLED"
	StatusRejected       RequestStatus = "REJECTED"
)

// Request representa una solicitud de compra. Nunca se borra: permanece para auditoría.
// Las líneas viven como transacciones PENDING en el ledger (vía RequestID)
// y cada cambio de estado queda registrado en RequestHistory.
type Request struct {
	ID          string
	Title       string
	Description string
	Status      RequestStatus
	CreatedBy   string  // UserID del solicitante
	ApprovedBy  *string // UserID del aprobador (se fija en Approve)
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
