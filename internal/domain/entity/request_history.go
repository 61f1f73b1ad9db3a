package entity

import "time"

// RequestHistory registro inmutable de una transición de estado de una solicitud.
// Se crea exactamente una vez por transición; nunca se actualiza ni se borra.
type RequestHistory struct {
	ID        string
	RequestID string
	OldStatus RequestStatus
	NewStatus RequestStatus
	Comment   string
	ChangedBy string // UserID del actor
	ChangedAt time.Time
}
