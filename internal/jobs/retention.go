package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Retention purges read notifications and old audit rows.
type Retention struct {
	db                *gorm.DB
	log               *zap.Logger
	notificationsDays int
	auditDays         int
}

type PurgeResult struct {
	Notifications       int64
	BarberNotifications int64
	AuditLogs           int64
}

func NewRetention(db *gorm.DB, log *zap.Logger, notificationsDays, auditDays int) *Retention {
	return &Retention{
		db:                db,
		log:               log,
		notificationsDays: notificationsDays,
		auditDays:         auditDays,
	}
}

// Cutoffs returns the creation instants before which rows are purged.
// A non-positive retention disables that purge (zero time).
func (r *Retention) Cutoffs(now time.Time) (notifications, audit time.Time) {
	if r.notificationsDays > 0 {
		notifications = now.AddDate(0, 0, -r.notificationsDays)
	}
	if r.auditDays > 0 {
		audit = now.AddDate(0, 0, -r.auditDays)
	}
	return notifications, audit
}

func (r *Retention) Purge(ctx context.Context, now time.Time) (PurgeResult, error) {
	var out PurgeResult
	notifCutoff, auditCutoff := r.Cutoffs(now)

	if !notifCutoff.IsZero() {
		res := r.db.WithContext(ctx).
			Where("is_read = ? AND created_at < ?", true, notifCutoff).
			Delete(&models.Notification{})
		if res.Error != nil {
			return out, res.Error
		}
		out.Notifications = res.RowsAffected

		res = r.db.WithContext(ctx).
			Where("is_read = ? AND created_at < ?", true, notifCutoff).
			Delete(&models.BarberNotification{})
		if res.Error != nil {
			return out, res.Error
		}
		out.BarberNotifications = res.RowsAffected
	}

	if !auditCutoff.IsZero() {
		res := r.db.WithContext(ctx).
			Where("created_at < ?", auditCutoff).
			Delete(&models.AuditLog{})
		if res.Error != nil {
			return out, res.Error
		}
		out.AuditLogs = res.RowsAffected
	}

	return out, nil
}

// Schedule registers the daily purge on a new scheduler and starts it.
// Callers stop it with sched.Stop().
func (r *Retention) Schedule() (*cron.Cron, error) {
	sched := cron.New(cron.WithLocation(timezone.Reference), cron.WithParser(cronParser))

	_, err := sched.AddFunc("@daily", r.run)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

func (r *Retention) run() {
	defer func() {
		if err := recover(); err != nil {
			r.log.Error("retention job panicked", zap.Any("panic", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := r.Purge(ctx, timezone.Now())
	if err != nil {
		r.log.Error("retention purge failed", zap.Error(err))
		return
	}

	r.log.Info("retention purge done",
		zap.Int64("notifications", res.Notifications),
		zap.Int64("barber_notifications", res.BarberNotifications),
		zap.Int64("audit_logs", res.AuditLogs),
	)
}
