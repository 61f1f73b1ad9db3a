package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// ValidationError señala un dato del caller inválido, indicando el campo ofensivo.
// errors.Is(err, ErrInvalidInput) retorna true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TransitionError señala una acción intentada desde un estado que no la admite.
// Incluye el estado actual para que el caller pueda re-consultar antes de reintentar.
// errors.Is(err, ErrInvalidTransition) retorna true.
type TransitionError struct {
	Current string // estado actual de la solicitud
	Action  string // acción intentada
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("la acción %q no está permitida desde el estado %q", e.Action, e.Current)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
