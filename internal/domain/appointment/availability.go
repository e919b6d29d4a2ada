package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	Date      string
	ServiceID uint
	BarberID  uint
}

// BookedInterval is an existing appointment as the availability check sees it.
type BookedInterval struct {
	AppointmentID   uint
	AppointmentTime time.Time
	DurationMinutes int
	Status          Status
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open intervals, so touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// OccupiedIntervals keeps only blocking appointments.
func OccupiedIntervals(booked []BookedInterval) []Interval {
	out := make([]Interval, 0, len(booked))
	for _, b := range booked {
		if !b.Status.Blocks() {
			continue
		}
		start := b.AppointmentTime.In(timezone.Reference)
		out = append(out, Interval{
			Start: start,
			End:   start.Add(time.Duration(b.DurationMinutes) * time.Minute),
		})
	}
	return out
}

// FreeSlots places each candidate on day and drops those whose
// [start, start+duration) overlaps any occupied interval. Order is preserved.
func FreeSlots(
	day time.Time,
	candidates []TimeOfDay,
	durationMinutes int,
	occupied []Interval,
) []time.Time {

	free := make([]time.Time, 0, len(candidates))
	length := time.Duration(durationMinutes) * time.Minute

	for _, c := range candidates {
		start := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location())
		slot := Interval{Start: start, End: start.Add(length)}

		conflict := false
		for _, o := range occupied {
			if slot.Overlaps(o) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, start)
		}
	}

	return free
}
