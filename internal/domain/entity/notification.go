package entity

import "time"

// Notification notificación in-app para un usuario. Canal best-effort:
// su creación nunca debe afectar la operación que la origina.
type Notification struct {
	ID        string
	UserID    string // destinatario
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
