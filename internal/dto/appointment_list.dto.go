package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	AppointmentTime time.Time `json:"appointment_time"`
	TimeSlot        string    `json:"time_slot"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	ClientName      string    `json:"client_name"`
	BarberName      string    `json:"barber_name"`
	ServiceName     string    `json:"service_name"`
}
