package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var errDBDown = errors.New("connection refused")

// fakeRepo is an in-memory domain.Repository. Committed writes land in
// appointments/notifications; uncommitted ones are discarded.
type fakeRepo struct {
	services map[uint]*models.Service
	barbers  map[uint]*models.Barber
	users    map[uint]*models.User

	appointments        []models.Appointment
	notifications       []models.Notification
	barberNotifications []models.BarberNotification

	// failure injection
	listErr            error
	beginErr           error
	insertErr          error
	clientNotifErr     error
	barberNotifErr     error
	commitErr          error
	forceOverlap       bool
	skipOverlapRecheck bool

	txs []*fakeTx
}

func newFakeRepo() *fakeRepo {
	wh := "09:00-11:00"
	return &fakeRepo{
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Haircut", Duration: 30, IsActive: true},
			2: {ID: 2, Name: "Beard", Duration: 60, IsActive: true},
			3: {ID: 3, Name: "Retired", Duration: 30, IsActive: false},
		},
		users: map[uint]*models.User{
			10: {ID: 10, Name: "Alex Client", Role: "client"},
			11: {ID: 11, Name: "Other Client", Role: "client"},
			20: {ID: 20, Name: "Sam Barber", Role: "barber"},
			21: {ID: 21, Name: "Kim Barber", Role: "barber"},
		},
		barbers: map[uint]*models.Barber{
			1: {ID: 1, UserID: 20, WorkingHours: &wh},
			2: {ID: 2, UserID: 21},
		},
	}
}

func (r *fakeRepo) seed(ap models.Appointment) {
	ap.ID = uint(len(r.appointments) + 1)
	r.appointments = append(r.appointments, ap)
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := r.barbers[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *b
	cp.User = *r.users[b.UserID]
	return &cp, nil
}

func (r *fakeRepo) GetBarberByUserID(ctx context.Context, userID uint) (*models.Barber, error) {
	for id, b := range r.barbers {
		if b.UserID == userID {
			return r.GetBarber(ctx, id)
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeRepo) ListBookedIntervals(_ context.Context, barberID uint, from, to time.Time) ([]domain.BookedInterval, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.BookedInterval
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.AppointmentTime.Before(from) || !ap.AppointmentTime.Before(to) {
			continue
		}
		status, _ := domain.ParseStatus(ap.Status)
		out = append(out, domain.BookedInterval{
			AppointmentID:   ap.ID,
			AppointmentTime: ap.AppointmentTime,
			DurationMinutes: r.services[ap.ServiceID].Duration,
			Status:          status,
		})
	}
	return out, nil
}

func (r *fakeRepo) BeginBooking(context.Context) (domain.BookingTx, error) {
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	tx := &fakeTx{repo: r}
	r.txs = append(r.txs, tx)
	return tx, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, id uint, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID != id {
			continue
		}
		cp := r.appointments[i]
		if err := mutate(&cp); err != nil {
			return nil, err
		}
		r.appointments[i] = cp
		return &cp, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForClient(_ context.Context, clientID uint) ([]models.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, r.hydrate(ap))
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForBarber(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && !ap.AppointmentTime.Before(from) && ap.AppointmentTime.Before(to) {
			out = append(out, r.hydrate(ap))
		}
	}
	return out, nil
}

func (r *fakeRepo) hydrate(ap models.Appointment) models.Appointment {
	ap.Service = *r.services[ap.ServiceID]
	ap.Client = *r.users[ap.ClientID]
	b := *r.barbers[ap.BarberID]
	b.User = *r.users[b.UserID]
	ap.Barber = b
	return ap
}

// fakeTx buffers writes until Commit.
type fakeTx struct {
	repo *fakeRepo

	locked       []uint
	appointments []models.Appointment
	notifs       []models.Notification
	barberNotifs []models.BarberNotification

	commits   int
	rollbacks int
	releases  int
	finished  bool
}

func (t *fakeTx) LockBarberSchedule(_ context.Context, barberID uint) error {
	t.locked = append(t.locked, barberID)
	return nil
}

func (t *fakeTx) HasActiveOverlap(ctx context.Context, barberID, serviceID uint, start time.Time) (bool, error) {
	if t.repo.forceOverlap {
		return true, nil
	}
	if t.repo.skipOverlapRecheck {
		return false, nil
	}
	svc, ok := t.repo.services[serviceID]
	if !ok {
		return false, nil
	}
	booked, err := t.repo.ListBookedIntervals(ctx, barberID, start.Add(-24*time.Hour), start.Add(24*time.Hour))
	if err != nil {
		return false, err
	}
	slot := domain.Interval{Start: start, End: start.Add(time.Duration(svc.Duration) * time.Minute)}
	for _, o := range domain.OccupiedIntervals(booked) {
		if slot.Overlaps(o) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertAppointment(_ context.Context, ap *models.Appointment) (*domain.BookedAppointment, error) {
	if t.repo.insertErr != nil {
		return nil, t.repo.insertErr
	}
	svc, ok1 := t.repo.services[ap.ServiceID]
	barber, ok2 := t.repo.barbers[ap.BarberID]
	if !ok1 || !ok2 {
		return nil, httperr.ErrReference("invalid_selection", "Invalid service or barber selection.", errors.New("fk"))
	}
	// unique (barber_id, appointment_time) among active rows
	for _, ex := range t.repo.appointments {
		st, _ := domain.ParseStatus(ex.Status)
		if ex.BarberID == ap.BarberID && ex.AppointmentTime.Equal(ap.AppointmentTime) && st.Blocks() {
			return nil, httperr.ErrConflict("slot_unavailable", "The selected time slot is no longer available.", errors.New("dup"))
		}
	}

	ap.ID = uint(len(t.repo.appointments) + len(t.appointments) + 1)
	ap.CreatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t.appointments = append(t.appointments, *ap)

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
		ServiceName:     svc.Name,
		ClientName:      t.repo.users[ap.ClientID].Name,
		BarberName:      t.repo.users[barber.UserID].Name,
	}, nil
}

func (t *fakeTx) InsertClientNotification(_ context.Context, n *models.Notification) error {
	if t.repo.clientNotifErr != nil {
		return t.repo.clientNotifErr
	}
	t.notifs = append(t.notifs, *n)
	return nil
}

func (t *fakeTx) InsertBarberNotification(_ context.Context, n *models.BarberNotification) error {
	if t.repo.barberNotifErr != nil {
		return t.repo.barberNotifErr
	}
	t.barberNotifs = append(t.barberNotifs, *n)
	return nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	if t.repo.commitErr != nil {
		t.finished = true
		return t.repo.commitErr
	}
	t.finished = true
	t.repo.appointments = append(t.repo.appointments, t.appointments...)
	t.repo.notifications = append(t.repo.notifications, t.notifs...)
	t.repo.barberNotifications = append(t.repo.barberNotifications, t.barberNotifs...)
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	t.finished = true
	return nil
}

func (t *fakeTx) Release() {
	t.releases++
	t.finished = true
}

var (
	_ domain.Repository = (*fakeRepo)(nil)
	_ domain.BookingTx  = (*fakeTx)(nil)
)
