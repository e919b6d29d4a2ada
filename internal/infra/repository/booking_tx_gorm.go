package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// bookingTx wraps a gorm transaction pinned to one pooled connection.
type bookingTx struct {
	tx       *gorm.DB
	finished bool
}

func (t *bookingTx) LockBarberSchedule(ctx context.Context, barberID uint) error {
	return t.tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", scheduleLockNamespace, int32(barberID)).
		Error
}

// scheduleLockNamespace keeps barber locks apart from other advisory locks.
const scheduleLockNamespace int32 = 7001

const activeOverlapSQL = `
SELECT EXISTS (
	SELECT 1
	FROM appointments a
	JOIN services s ON s.id = a.service_id
	WHERE a.barber_id = ?
	  AND a.status NOT IN ?
	  AND a.appointment_time < CAST(? AS timestamptz)
	      + make_interval(mins => (SELECT duration FROM services WHERE id = ?))
	  AND a.appointment_time + make_interval(mins => s.duration) > CAST(? AS timestamptz)
)`

func (t *bookingTx) HasActiveOverlap(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	start time.Time,
) (bool, error) {

	var exists bool
	if err := t.tx.WithContext(ctx).
		Raw(activeOverlapSQL,
			barberID,
			domain.NonBlockingStatusValues(),
			start.UTC(),
			serviceID,
			start.UTC(),
		).
		Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

func (t *bookingTx) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) (*domain.BookedAppointment, error) {

	ap.AppointmentTime = ap.AppointmentTime.UTC()

	if err := t.tx.WithContext(ctx).
		Omit("Client", "Barber", "Service").
		Create(ap).Error; err != nil {
		return nil, translate(err)
	}

	var names struct {
		ServiceName string
		ClientName  string
		BarberName  string
	}

	if err := t.tx.WithContext(ctx).Raw(`
		SELECT s.name AS service_name, cu.name AS client_name, bu.name AS barber_name
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		JOIN users cu ON cu.id = a.client_id
		JOIN barbers b ON b.id = a.barber_id
		JOIN users bu ON bu.id = b.user_id
		WHERE a.id = ?`, ap.ID).
		Scan(&names).Error; err != nil {
		return nil, err
	}

	status, _ := domain.ParseStatus(ap.Status)

	return &domain.BookedAppointment{
		ID:              ap.ID,
		ClientID:        ap.ClientID,
		BarberID:        ap.BarberID,
		ServiceID:       ap.ServiceID,
		AppointmentTime: ap.AppointmentTime,
		Status:          status,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt,
		ServiceName:     names.ServiceName,
		ClientName:      names.ClientName,
		BarberName:      names.BarberName,
	}, nil
}

func (t *bookingTx) InsertClientNotification(ctx context.Context, n *models.Notification) error {
	return translate(t.tx.WithContext(ctx).Omit("User").Create(n).Error)
}

func (t *bookingTx) InsertBarberNotification(ctx context.Context, n *models.BarberNotification) error {
	return translate(t.tx.WithContext(ctx).Omit("Barber").Create(n).Error)
}

func (t *bookingTx) Commit() error {
	t.finished = true
	return translate(t.tx.Commit().Error)
}

func (t *bookingTx) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	return t.tx.Rollback().Error
}

// Release returns the connection to the pool, rolling back if still open.
func (t *bookingTx) Release() {
	if t.finished {
		return
	}
	t.finished = true
	t.tx.Rollback()
}

var _ domain.BookingTx = (*bookingTx)(nil)
