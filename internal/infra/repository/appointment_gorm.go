package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&barber, barberID).Error; err != nil {
		return nil, translate(err)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetBarberByUserID(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&barber).Error; err != nil {
		return nil, translate(err)
	}
	return &barber, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]domain.BookedInterval, error) {

	var rows []struct {
		ID              uint
		AppointmentTime time.Time
		Duration        int
		Status          string
	}

	if err := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select("a.id, a.appointment_time, s.duration, a.status").
		Joins("JOIN services s ON s.id = a.service_id").
		Where("a.barber_id = ?", barberID).
		Where("a.status NOT IN ?", domain.NonBlockingStatusValues()).
		Where("a.appointment_time >= ? AND a.appointment_time < ?", from, to).
		Order("a.appointment_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.BookedInterval, 0, len(rows))
	for _, row := range rows {
		status, _ := domain.ParseStatus(row.Status)
		out = append(out, domain.BookedInterval{
			AppointmentID:   row.ID,
			AppointmentTime: row.AppointmentTime,
			DurationMinutes: row.Duration,
			Status:          status,
		})
	}

	return out, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) BeginBooking(ctx context.Context) (domain.BookingTx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &bookingTx{tx: tx}, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	appointmentID uint,
	mutate func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, appointmentID).Error; err != nil {
			return err
		}

		if err := mutate(&ap); err != nil {
			return err
		}

		if err := tx.Model(&ap).
			Select("status", "updated_at").
			Updates(map[string]any{
				"status":     ap.Status,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		return tx.
			Preload("Client").
			Preload("Barber.User").
			Preload("Service").
			First(&ap, appointmentID).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &ap, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber.User").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("appointment_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForBarber(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber.User").
		Preload("Service").
		Where(
			"barber_id = ? AND appointment_time >= ? AND appointment_time < ?",
			barberID,
			from,
			to,
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
