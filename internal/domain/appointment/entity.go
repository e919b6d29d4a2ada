package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the requested status if the lifecycle allows it.
func Transition(ap *models.Appointment, to Status) error {
	current, ok := ParseStatus(ap.Status)
	if !ok {
		return httperr.ErrInternal("unknown_status", nil)
	}

	if err := CanTransition(current, to); err != nil {
		return err
	}

	ap.Status = string(to)
	return nil
}
