package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func seededForStatus() *fakeRepo {
	repo := newFakeRepo()
	repo.seed(models.Appointment{
		ClientID: 10, BarberID: 1, ServiceID: 1,
		AppointmentTime: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Status:          "pending",
	})
	return repo
}

var (
	barberSam = user.Identity{ID: 20, Role: user.RoleBarber}
	barberKim = user.Identity{ID: 21, Role: user.RoleBarber}
	admin     = user.Identity{ID: 1, Role: user.RoleAdmin}
)

func TestUpdateStatusBarberConfirmsOwnAppointment(t *testing.T) {
	repo := seededForStatus()
	uc := NewUpdateAppointmentStatus(repo, nil)

	ap, err := uc.Execute(context.Background(), UpdateStatusInput{
		Actor: barberSam, AppointmentID: 1, Status: "Confirmed",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if ap.Status != "confirmed" || repo.appointments[0].Status != "confirmed" {
		t.Fatalf("status not saved, got %q", ap.Status)
	}
}

func TestUpdateStatusOtherBarberSeesNotFound(t *testing.T) {
	repo := seededForStatus()
	uc := NewUpdateAppointmentStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		Actor: barberKim, AppointmentID: 1, Status: "confirmed",
	})
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.appointments[0].Status != "pending" {
		t.Fatal("status must not change")
	}
}

func TestUpdateStatusNormalizesAliases(t *testing.T) {
	repo := seededForStatus()
	uc := NewUpdateAppointmentStatus(repo, nil)

	ap, err := uc.Execute(context.Background(), UpdateStatusInput{
		Actor: admin, AppointmentID: 1, Status: "cancelled",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if ap.Status != "canceled" {
		t.Fatalf("status = %q, want canceled", ap.Status)
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo := seededForStatus()
	uc := NewUpdateAppointmentStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		Actor: admin, AppointmentID: 1, Status: "completed",
	})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestUpdateStatusClientRules(t *testing.T) {
	owner := user.Identity{ID: 10, Role: user.RoleClient}
	stranger := user.Identity{ID: 11, Role: user.RoleClient}

	tests := []struct {
		name   string
		actor  user.Identity
		status string
		code   string
	}{
		{"owner cannot confirm", owner, "confirmed", "invalid_status"},
		{"stranger cannot cancel", stranger, "canceled", "appointment_not_found"},
		{"owner cancels", owner, "canceled", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUpdateAppointmentStatus(seededForStatus(), nil)
			_, err := uc.Execute(context.Background(), UpdateStatusInput{
				Actor: tt.actor, AppointmentID: 1, Status: tt.status,
			})
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Execute failed: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestUpdateStatusUnknownInputs(t *testing.T) {
	uc := NewUpdateAppointmentStatus(seededForStatus(), nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		Actor: admin, AppointmentID: 1, Status: "scheduled",
	})
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		Actor: admin, AppointmentID: 42, Status: "confirmed",
	})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}

	_, err = uc.Execute(context.Background(), UpdateStatusInput{
		Actor: user.Identity{ID: 99, Role: user.RoleBarber}, AppointmentID: 1, Status: "confirmed",
	})
	if !httperr.IsBusiness(err, "barber_not_found") {
		t.Fatalf("expected barber_not_found, got %v", err)
	}
}
