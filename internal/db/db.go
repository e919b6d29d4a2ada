package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if !cfg.AutoMigrate {
		return db, nil
	}

	if err := Migrate(db, log); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Barber{},
		&models.Appointment{},
		&models.Notification{},
		&models.BarberNotification{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// legacy spellings from older clients
	res := db.Exec(`
        UPDATE appointments
        SET status = CASE
            WHEN lower(status) = 'cancelled' THEN 'canceled'
            WHEN lower(status) IN ('no_show', 'noshow', 'no show') THEN 'no-show'
            ELSE lower(status)
        END
        WHERE status <> lower(status)
           OR lower(status) IN ('cancelled', 'no_show', 'noshow', 'no show')
    `)
	if res.Error != nil {
		return fmt.Errorf("normalize statuses: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Info("normalized appointment statuses", zap.Int64("rows", res.RowsAffected))
	}

	// one active appointment per barber and start instant
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_barber_active_start
        ON appointments (barber_id, appointment_time)
        WHERE status NOT IN ('canceled', 'no-show')
    `).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}

	return nil
}
