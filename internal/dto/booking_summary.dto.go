package dto

import "time"

type BookingSummaryDTO struct {
	ID              uint      `json:"id"`
	AppointmentTime time.Time `json:"appointment_time"`
	ServiceName     string    `json:"service_name"`
	ClientName      string    `json:"client_name"`
	BarberName      string    `json:"barber_name"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
