package supplychain

import (
	"fmt"

	"github.com/jhoicas/Abastecimiento-api/internal/domain"
	"github.com/jhoicas/Abastecimiento-api/internal/domain/entity"
)

// poTransitions tabla de transiciones válidas; cada estado tiene un único sucesor.
var poTransitions = map[entity.POStatus]entity.POStatus{
	entity.POStatusDraft:     entity.POStatusApproved,
	entity.POStatusApproved:  entity.POStatusInTransit,
	entity.POStatusInTransit: entity.POStatusReceived,
}

// ParsePOStatus valida que s sea uno de los cuatro estados conocidos.
func ParsePOStatus(s string) (entity.POStatus, error) {
	switch st := entity.POStatus(s); st {
	case entity.POStatusDraft, entity.POStatusApproved, entity.POStatusInTransit, entity.POStatusReceived:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
}

// NextPOStatus devuelve el sucesor de from; false si from es terminal.
func NextPOStatus(from entity.POStatus) (entity.POStatus, bool) {
	next, ok := poTransitions[from]
	return next, ok
}

// ValidateTransition permite solo DRAFT→APPROVED→IN_TRANSIT→RECEIVED.
// Repetir el estado actual (incluido RECEIVED→RECEIVED) también se rechaza.
func ValidateTransition(from, to entity.POStatus) error {
	if next, ok := poTransitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
}
