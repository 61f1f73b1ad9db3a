// Package workflow define la máquina de estados de las solicitudes de compra.
// Toda transición pasa por Next: la tabla es la única fuente de verdad,
// nunca se valida el estado con ifs sueltos en los casos de uso.
package workflow

import (
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// Action acción sobre una solicitud que cambia su estado.
type Action string

// Acciones disponibles.
const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionReceive  Action = "receive"  // marca ítems recibidos: PENDING→INCOME
	ActionInstall  Action = "install"  // marca ítems instalados
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionReject   Action = "reject"
)

// rule estados de origen admitidos y estado destino de una acción.
type rule struct {
	from []entity.RequestStatus
	to   entity.RequestStatus
}

// transitions tabla central de transiciones.
var transitions = map[Action]rule{
	ActionSubmit: {
		from: []entity.RequestStatus{entity.StatusDraft},
		to:   entity.StatusSubmitted,
	},
	ActionApprove: {
		from: []entity.RequestStatus{entity.StatusSubmitted},
		to:   entity.StatusApproved,
	},
	ActionReceive: {
		from: []entity.RequestStatus{entity.StatusApproved, entity.StatusInProgress},
		to:   entity.StatusItemsReceived,
	},
	ActionInstall: {
		from: []entity.RequestStatus{entity.StatusItemsReceived, entity.StatusInProgress},
		to:   entity.StatusItemsInstalled,
	},
	ActionComplete: {
		from: []entity.RequestStatus{entity.StatusItemsInstalled, entity.StatusItemsReceived, entity.StatusInProgress},
		to:   entity.StatusCompleted,
	},
	ActionCancel: {
		from: []entity.RequestStatus{entity.StatusDraft, entity.StatusSubmitted, entity.StatusApproved, entity.StatusInProgress},
		to:   entity.StatusCancelled,
	},
	ActionReject: {
		from: []entity.RequestStatus{entity.StatusSubmitted},
		to:   entity.StatusRejected,
	},
}

// itemMutable estados en los que se pueden agregar o reemplazar líneas PENDING.
var itemMutable = map[entity.RequestStatus]bool{
	entity.StatusDraft:      true,
	entity.StatusSubmitted:  true,
	entity.StatusApproved:   true,
	entity.StatusInProgress: true,
}

// Next devuelve el estado resultante de aplicar action sobre current.
// Si la tabla no admite la transición retorna *domain.TransitionError
// con el estado actual y la acción intentada.
func Next(current entity.RequestStatus, action Action) (entity.RequestStatus, error) {
	r, ok := transitions[action]
	if !ok {
		return "", &domain.TransitionError{Current: string(current), Action: string(action)}
	}
	for _, s := range r.from {
		if s == current {
			return r.to, nil
		}
	}
	return "", &domain.TransitionError{Current: string(current), Action: string(action)}
}

// CanModifyItems indica si el estado admite agregar líneas (AddItem).
func CanModifyItems(s entity.RequestStatus) bool {
	return itemMutable[s]
}

// IsTerminal indica si el estado no admite ninguna transición posterior.
func IsTerminal(s entity.RequestStatus) bool {
	for _, r := range transitions {
		for _, f := range r.from {
			if f == s {
				return false
			}
		}
	}
	return true
}
