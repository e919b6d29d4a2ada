package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ErrRecordNotFound is returned by repositories when a lookup matches nothing.
var ErrRecordNotFound = errors.New("record not found")

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		barberID uint,
	) (*models.Barber, error)

	GetBarberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	// -------- Availability --------
	ListBookedIntervals(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]BookedInterval, error)

	// -------- Booking --------
	BeginBooking(ctx context.Context) (BookingTx, error)

	// -------- Appointment (state change) --------
	// UpdateAppointment locks the row, applies mutate and saves it in one
	// transaction. A mutate error aborts without saving.
	UpdateAppointment(
		ctx context.Context,
		appointmentID uint,
		mutate func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	// -------- Listings --------
	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForBarber(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}

// BookingTx is a transaction on a session owned by one booking request.
// Release must be called exactly once; it rolls back unless Commit or
// Rollback already ended the transaction.
type BookingTx interface {
	// LockBarberSchedule serializes bookings for one barber until the
	// transaction ends.
	LockBarberSchedule(ctx context.Context, barberID uint) error

	// HasActiveOverlap reports whether a booking of serviceID at start would
	// overlap an active appointment of barberID.
	HasActiveOverlap(ctx context.Context, barberID, serviceID uint, start time.Time) (bool, error)

	InsertAppointment(ctx context.Context, ap *models.Appointment) (*BookedAppointment, error)
	InsertClientNotification(ctx context.Context, n *models.Notification) error
	InsertBarberNotification(ctx context.Context, n *models.BarberNotification) error

	Commit() error
	Rollback() error
	Release()
}
