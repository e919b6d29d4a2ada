package appointment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/barber-booking/internal/usecase/appointment")

type GetAvailability struct {
	repo domain.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, log *zap.Logger) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		log:  log,
		now:  timezone.Now,
	}
}

// WithClock replaces the time source used to hide slots already in the past.
func (uc *GetAvailability) WithClock(now func() time.Time) *GetAvailability {
	uc.now = now
	return uc
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	ctx, span := tracer.Start(ctx, "appointment.GetAvailability")
	defer span.End()
	span.SetAttributes(
		attribute.String("date", in.Date),
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	if in.Date == "" || in.ServiceID == 0 || in.BarberID == 0 {
		return nil, httperr.ErrValidation("missing_params", "date, serviceId and barberId are required.")
	}

	day, ok := timezone.ParseDate(in.Date)
	if !ok {
		return nil, httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
	}

	// --------------------------------------------------
	// Catalog
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
		}
		return nil, httperr.ErrInternal("availability_failed", err)
	}
	if !service.IsActive {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("barber_not_found", "Barber not found.")
		}
		return nil, httperr.ErrInternal("availability_failed", err)
	}

	window, ok := domain.ParseWorkingHours(barber.WorkingHours)
	if !ok && barber.WorkingHours != nil {
		uc.log.Warn("malformed working hours, using default window",
			zap.Uint("barber_id", barber.ID),
			zap.String("working_hours", *barber.WorkingHours),
			zap.String("default", domain.DefaultWindow.String()),
		)
	}

	candidates := domain.GenerateSlots(
		window.Start,
		window.End,
		domain.DefaultStepMinutes,
		service.Duration,
	)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	// --------------------------------------------------
	// Existing appointments of the day
	// --------------------------------------------------
	dayStart, dayEnd := timezone.DayBounds(day)

	booked, err := uc.repo.ListBookedIntervals(ctx, barber.ID, dayStart, dayEnd)
	if err != nil {
		return nil, httperr.ErrInternal("availability_failed", err)
	}

	free := domain.FreeSlots(
		dayStart,
		candidates,
		service.Duration,
		domain.OccupiedIntervals(booked),
	)

	now := uc.now()
	out := make([]string, 0, len(free))
	for _, slot := range free {
		if slot.Before(now) {
			continue
		}
		out = append(out, domain.FormatSlot(slot))
	}

	return out, nil
}
