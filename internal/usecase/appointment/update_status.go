package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UpdateStatusInput struct {
	Actor         user.Identity
	AppointmentID uint
	Status        string
}

// UpdateAppointmentStatus applies lifecycle transitions requested by barbers
// (own appointments), admins (any) and clients (cancel their own).
type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	target, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, httperr.ErrValidation("invalid_status", "Unknown appointment status.")
	}

	var barberID uint
	switch in.Actor.Role {
	case user.RoleBarber:
		barber, err := uc.repo.GetBarberByUserID(ctx, in.Actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("barber_not_found", "Barber profile not found.")
			}
			return nil, httperr.ErrInternal("status_update_failed", err)
		}
		barberID = barber.ID
	case user.RoleClient:
		if target != domain.StatusCanceled {
			return nil, httperr.ErrValidation("invalid_status", "Clients can only cancel appointments.")
		}
	case user.RoleAdmin:
	default:
		return nil, httperr.ErrValidation("invalid_role", "Role cannot change appointments.")
	}

	var from string
	ap, err := uc.repo.UpdateAppointment(ctx, in.AppointmentID, func(ap *models.Appointment) error {
		// hide other people's appointments behind not-found
		if in.Actor.Role == user.RoleBarber && ap.BarberID != barberID {
			return domain.ErrRecordNotFound
		}
		if in.Actor.Role == user.RoleClient && ap.ClientID != in.Actor.ID {
			return domain.ErrRecordNotFound
		}
		from = ap.Status
		return domain.Transition(ap, target)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
		}
		var be httperr.BusinessError
		if errors.As(err, &be) {
			return nil, err
		}
		return nil, httperr.ErrInternal("status_update_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.ID,
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
