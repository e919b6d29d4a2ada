package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	NotificationBookingPending   = "booking_pending"
	NotificationNewBookingBarber = "new_booking_barber"

	ClientAppointmentsLink = "/client/appointments"
	BarberScheduleLink     = "/barber/schedule"
)

// BookedAppointment is a freshly inserted appointment together with the
// display names needed to describe it.
type BookedAppointment struct {
	ID              uint
	ClientID        uint
	BarberID        uint
	ServiceID       uint
	AppointmentTime time.Time
	Status          Status
	Notes           string
	CreatedAt       time.Time

	ServiceName string
	ClientName  string
	BarberName  string
}

// Fanout is the set of notification rows a booking produces.
// Barber is nil when the booking has no barber.
type Fanout struct {
	Client *models.Notification
	Barber *models.BarberNotification
}

func ComposeNotifications(b BookedAppointment) Fanout {
	when := FormatForNotification(b.AppointmentTime)

	out := Fanout{
		Client: &models.Notification{
			UserID: b.ClientID,
			Title:  fmt.Sprintf("Booking requested: %s", b.ServiceName),
			Message: fmt.Sprintf(
				"Your %s with %s on %s is pending confirmation.",
				b.ServiceName, b.BarberName, when,
			),
			Link: ClientAppointmentsLink,
			Type: NotificationBookingPending,
		},
	}

	if b.BarberID != 0 {
		out.Barber = &models.BarberNotification{
			BarberID: b.BarberID,
			Title:    fmt.Sprintf("New booking from %s", b.ClientName),
			Message: fmt.Sprintf(
				"%s booked %s for %s.",
				b.ClientName, b.ServiceName, when,
			),
			Link: BarberScheduleLink,
			Type: NotificationNewBookingBarber,
		}
	}

	return out
}
