package appointment

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newAvailability(repo *fakeRepo) *GetAvailability {
	return NewGetAvailability(repo, zap.NewNop()).WithClock(clock)
}

func TestAvailabilityEmptyDay(t *testing.T) {
	repo := newFakeRepo()

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailabilityExcludesConfirmedAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(models.Appointment{
		ClientID: 10, BarberID: 1, ServiceID: 1,
		AppointmentTime: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:          "confirmed",
	})

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"9:00 AM", "10:00 AM", "10:30 AM"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailabilityIgnoresCanceledAndNoShow(t *testing.T) {
	repo := newFakeRepo()
	for _, st := range []string{"canceled", "no-show"} {
		repo.seed(models.Appointment{
			ClientID: 10, BarberID: 1, ServiceID: 1,
			AppointmentTime: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			Status:          st,
		})
	}

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got) != 4 || got[0] != "9:00 AM" {
		t.Fatalf("canceled/no-show should not block, got %v", got)
	}
}

func TestAvailabilityOtherDaysDoNotBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(models.Appointment{
		ClientID: 10, BarberID: 1, ServiceID: 1,
		AppointmentTime: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		Status:          "pending",
	})

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 slots, got %v", got)
	}
}

func TestAvailabilityMalformedWorkingHoursUsesDefault(t *testing.T) {
	repo := newFakeRepo()
	bad := "nine-to-five"
	repo.barbers[1].WorkingHours = &bad

	core, logs := observer.New(zapcore.WarnLevel)
	uc := NewGetAvailability(repo, zap.New(core)).WithClock(clock)

	got, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// 09:00-17:00 in 30 minute steps
	if len(got) != 16 || got[0] != "9:00 AM" || got[15] != "4:30 PM" {
		t.Fatalf("expected default window slots, got %v", got)
	}
	if logs.FilterMessageSnippet("malformed working hours").Len() != 1 {
		t.Fatal("expected a warning about malformed working hours")
	}
}

func TestAvailabilityMissingWorkingHoursUsesDefaultSilently(t *testing.T) {
	repo := newFakeRepo()

	core, logs := observer.New(zapcore.WarnLevel)
	uc := NewGetAvailability(repo, zap.New(core)).WithClock(clock)

	got, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 2,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(got))
	}
	if logs.Len() != 0 {
		t.Fatal("absent working hours should not warn")
	}
}

func TestAvailabilityHidesPastSlots(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, zap.NewNop()).WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 45, 0, 0, time.UTC)
	})

	got, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"10:00 AM", "10:30 AM"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAvailabilityNoFitReturnsEmptyList(t *testing.T) {
	repo := newFakeRepo()
	repo.services[4] = &models.Service{ID: 4, Name: "Full treatment", Duration: 180, IsActive: true}

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 4, BarberID: 1,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestAvailabilityErrors(t *testing.T) {
	tests := []struct {
		name string
		in   domain.AvailabilityInput
		kind httperr.Kind
		code string
	}{
		{"missing date", domain.AvailabilityInput{ServiceID: 1, BarberID: 1}, httperr.KindValidation, "missing_params"},
		{"missing service", domain.AvailabilityInput{Date: "2026-03-14", BarberID: 1}, httperr.KindValidation, "missing_params"},
		{"missing barber", domain.AvailabilityInput{Date: "2026-03-14", ServiceID: 1}, httperr.KindValidation, "missing_params"},
		{"bad format", domain.AvailabilityInput{Date: "14/03/2026", ServiceID: 1, BarberID: 1}, httperr.KindValidation, "invalid_date"},
		{"impossible date", domain.AvailabilityInput{Date: "2026-02-30", ServiceID: 1, BarberID: 1}, httperr.KindValidation, "invalid_date"},
		{"unknown service", domain.AvailabilityInput{Date: "2026-03-14", ServiceID: 99, BarberID: 1}, httperr.KindNotFound, "service_not_found"},
		{"inactive service", domain.AvailabilityInput{Date: "2026-03-14", ServiceID: 3, BarberID: 1}, httperr.KindNotFound, "service_not_found"},
		{"unknown barber", domain.AvailabilityInput{Date: "2026-03-14", ServiceID: 1, BarberID: 99}, httperr.KindNotFound, "barber_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAvailability(newFakeRepo()).Execute(context.Background(), tt.in)
			if httperr.KindOf(err) != tt.kind || !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("got %v, want %s/%s", err, tt.kind, tt.code)
			}
		})
	}
}

func TestAvailabilityPersistenceFailureIsInternal(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errDBDown

	got, err := newAvailability(repo).Execute(context.Background(), domain.AvailabilityInput{
		Date: "2026-03-14", ServiceID: 1, BarberID: 1,
	})
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
	if httperr.KindOf(err) != httperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
