package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleComprador = "comprador"
	RoleBodeguero = "bodeguero"
)

// User usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | comprador | bodeguero
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
