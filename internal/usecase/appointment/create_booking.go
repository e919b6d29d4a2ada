package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Client user.Identity

	ServiceID uint
	BarberID  uint

	// Date is YYYY-MM-DD; a trailing time-of-day component is ignored.
	Date string
	// TimeSlot uses the availability display form, e.g. "9:30 AM".
	TimeSlot string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   timezone.Now,
	}
}

func (uc *CreateBooking) WithClock(now func() time.Time) *CreateBooking {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (_ *dto.BookingSummaryDTO, err error) {

	ctx, span := tracer.Start(ctx, "appointment.CreateBooking")
	span.SetAttributes(
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "booking failed")
		}
		span.End()
	}()

	// --------------------------------------------------
	// 1. Required fields (no transaction yet)
	// --------------------------------------------------
	if in.ServiceID == 0 || in.BarberID == 0 ||
		strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.TimeSlot) == "" {
		return nil, httperr.ErrValidation(
			"missing_fields",
			"serviceId, barberId, date and timeSlot are required.",
		)
	}

	// --------------------------------------------------
	// 2. Dedicated transaction, released exactly once
	// --------------------------------------------------
	tx, err := uc.repo.BeginBooking(ctx)
	if err != nil {
		return nil, httperr.ErrInternal("booking_failed", err)
	}
	defer tx.Release()

	booked, err := uc.book(ctx, tx, in)
	if err != nil {
		uc.rollback(tx, err)

		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.Client.ID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"barber_id":  in.BarberID,
					"service_id": in.ServiceID,
					"date":       in.Date,
					"time_slot":  in.TimeSlot,
				},
			})
		}

		return nil, classify(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify(err)
	}

	// --------------------------------------------------
	// 3. Audit (after commit)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Client.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &booked.ID,
		Metadata: map[string]any{
			"barber_id":        booked.BarberID,
			"service_id":       booked.ServiceID,
			"appointment_time": booked.AppointmentTime,
		},
	})

	return &dto.BookingSummaryDTO{
		ID:              booked.ID,
		AppointmentTime: booked.AppointmentTime.In(timezone.Reference),
		ServiceName:     booked.ServiceName,
		ClientName:      booked.ClientName,
		BarberName:      booked.BarberName,
		Status:          string(booked.Status),
		Notes:           booked.Notes,
		CreatedAt:       booked.CreatedAt,
	}, nil
}

// book runs every step that must share the transaction.
func (uc *CreateBooking) book(
	ctx context.Context,
	tx domain.BookingTx,
	in CreateBookingInput,
) (*domain.BookedAppointment, error) {

	start, ok := domain.ParseBookingInstant(in.Date, in.TimeSlot)
	if !ok {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Invalid date or time slot.")
	}
	if start.Before(uc.now()) {
		return nil, httperr.ErrValidation("slot_in_past", "The selected time slot has already passed.")
	}

	if err := tx.LockBarberSchedule(ctx, in.BarberID); err != nil {
		return nil, err
	}

	overlap, err := tx.HasActiveOverlap(ctx, in.BarberID, in.ServiceID, start)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, httperr.ErrConflict("slot_unavailable", "The selected time slot is no longer available.", nil)
	}

	booked, err := tx.InsertAppointment(ctx, &models.Appointment{
		ClientID:        in.Client.ID,
		BarberID:        in.BarberID,
		ServiceID:       in.ServiceID,
		AppointmentTime: start,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return nil, err
	}

	fanout := domain.ComposeNotifications(*booked)

	if err := tx.InsertClientNotification(ctx, fanout.Client); err != nil {
		return nil, err
	}

	if fanout.Barber != nil {
		if err := tx.InsertBarberNotification(ctx, fanout.Barber); err != nil {
			return nil, err
		}
	}

	return booked, nil
}

func (uc *CreateBooking) rollback(tx domain.BookingTx, cause error) {
	if err := tx.Rollback(); err != nil {
		uc.log.Error("booking rollback failed",
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}

// classify keeps business errors and turns everything else into an internal one.
func classify(err error) error {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.ErrInternal("booking_failed", err)
}
