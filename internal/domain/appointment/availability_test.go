package appointment

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func day() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func formatAll(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = FormatSlot(t)
	}
	return out
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(10, 30)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"same", base, true},
		{"inside", Interval{at(10, 10), at(10, 20)}, true},
		{"covers", Interval{at(9, 0), at(11, 0)}, true},
		{"starts inside", Interval{at(10, 15), at(10, 45)}, true},
		{"ends inside", Interval{at(9, 45), at(10, 15)}, true},
		{"touches end", Interval{at(10, 30), at(11, 0)}, false},
		{"touches start", Interval{at(9, 30), at(10, 0)}, false},
		{"before", Interval{at(8, 0), at(9, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Fatalf("base.Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Fatalf("Overlaps not symmetric")
			}
		})
	}
}

func TestOccupiedIntervalsSkipsNonBlocking(t *testing.T) {
	booked := []BookedInterval{
		{AppointmentID: 1, AppointmentTime: at(9, 0), DurationMinutes: 30, Status: StatusPending},
		{AppointmentID: 2, AppointmentTime: at(10, 0), DurationMinutes: 30, Status: StatusCanceled},
		{AppointmentID: 3, AppointmentTime: at(11, 0), DurationMinutes: 45, Status: StatusNoShow},
		{AppointmentID: 4, AppointmentTime: at(12, 0), DurationMinutes: 60, Status: StatusConfirmed},
	}

	got := OccupiedIntervals(booked)
	if len(got) != 2 {
		t.Fatalf("expected 2 occupied intervals, got %d", len(got))
	}
	if !got[1].End.Equal(at(13, 0)) {
		t.Fatalf("interval end uses own duration, got %v", got[1].End)
	}
}

func TestFreeSlots(t *testing.T) {
	candidates := GenerateSlots("09:00", "11:00", 30, 30)

	t.Run("no appointments", func(t *testing.T) {
		got := formatAll(FreeSlots(day(), candidates, 30, nil))
		want := []string{"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM"}
		if !equalStrings(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("one booking blocks its slot", func(t *testing.T) {
		occupied := OccupiedIntervals([]BookedInterval{
			{AppointmentTime: at(9, 30), DurationMinutes: 30, Status: StatusConfirmed},
		})
		got := formatAll(FreeSlots(day(), candidates, 30, occupied))
		want := []string{"9:00 AM", "10:00 AM", "10:30 AM"}
		if !equalStrings(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("long booking blocks several", func(t *testing.T) {
		occupied := OccupiedIntervals([]BookedInterval{
			{AppointmentTime: at(9, 0), DurationMinutes: 60, Status: StatusPending},
		})
		got := formatAll(FreeSlots(day(), candidates, 30, occupied))
		want := []string{"10:00 AM", "10:30 AM"}
		if !equalStrings(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("longer service overlaps next booking", func(t *testing.T) {
		cands := GenerateSlots("09:00", "11:00", 30, 60)
		occupied := OccupiedIntervals([]BookedInterval{
			{AppointmentTime: at(10, 0), DurationMinutes: 30, Status: StatusPending},
		})
		got := formatAll(FreeSlots(day(), cands, 60, occupied))
		want := []string{"9:00 AM"}
		if !equalStrings(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("canceled and no-show never block", func(t *testing.T) {
		occupied := OccupiedIntervals([]BookedInterval{
			{AppointmentTime: at(9, 0), DurationMinutes: 30, Status: StatusCanceled},
			{AppointmentTime: at(9, 30), DurationMinutes: 30, Status: StatusNoShow},
		})
		got := FreeSlots(day(), candidates, 30, occupied)
		if len(got) != len(candidates) {
			t.Fatalf("expected all %d slots free, got %d", len(candidates), len(got))
		}
	})

	t.Run("free slots never overlap occupied", func(t *testing.T) {
		occupied := OccupiedIntervals([]BookedInterval{
			{AppointmentTime: at(9, 15), DurationMinutes: 20, Status: StatusPending},
			{AppointmentTime: at(10, 40), DurationMinutes: 10, Status: StatusConfirmed},
		})
		for _, s := range FreeSlots(day(), candidates, 30, occupied) {
			slot := Interval{Start: s, End: s.Add(30 * time.Minute)}
			for _, o := range occupied {
				if slot.Overlaps(o) {
					t.Fatalf("free slot %s overlaps %v", FormatSlot(s), o)
				}
			}
		}
	})
}
