package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(repo domain.Repository) *ListClientAppointments {
	return &ListClientAppointments{repo: repo}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, httperr.ErrInternal("list_appointments_failed", err)
	}

	return toListDTO(appointments), nil
}

// ListBarberSchedule returns one day of a barber's agenda, all statuses included.
type ListBarberSchedule struct {
	repo domain.Repository
}

func NewListBarberSchedule(repo domain.Repository) *ListBarberSchedule {
	return &ListBarberSchedule{repo: repo}
}

func (uc *ListBarberSchedule) Execute(
	ctx context.Context,
	barberUserID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, ok := timezone.ParseDate(date)
	if !ok {
		return nil, httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
	}

	barber, err := uc.repo.GetBarberByUserID(ctx, barberUserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("barber_not_found", "Barber profile not found.")
		}
		return nil, httperr.ErrInternal("list_appointments_failed", err)
	}

	start, end := timezone.DayBounds(day)

	appointments, err := uc.repo.ListAppointmentsForBarber(ctx, barber.ID, start, end)
	if err != nil {
		return nil, httperr.ErrInternal("list_appointments_failed", err)
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		at := ap.AppointmentTime.In(timezone.Reference)
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			AppointmentTime: at,
			TimeSlot:        domain.FormatSlot(at),
			DurationMinutes: ap.Service.Duration,
			Status:          ap.Status,
			Notes:           ap.Notes,
			ClientName:      ap.Client.Name,
			BarberName:      ap.Barber.User.Name,
			ServiceName:     ap.Service.Name,
		})
	}
	return out
}
