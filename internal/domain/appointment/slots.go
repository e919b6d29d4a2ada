package appointment

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultStepMinutes is the spacing between candidate start times.
const DefaultStepMinutes = 30

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeOfDay is minutes since midnight in the reference zone.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	m := hhmmPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return TimeOfDay(h*60 + mm), true
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// GenerateSlots lists candidate start times from workStart, step minutes apart,
// keeping only starts whose service would finish by workEnd. Invalid bounds or
// non-positive step/duration give an empty result.
func GenerateSlots(workStart, workEnd string, stepMinutes, serviceDurationMinutes int) []TimeOfDay {
	start, ok := ParseTimeOfDay(workStart)
	if !ok {
		return []TimeOfDay{}
	}
	end, ok := ParseTimeOfDay(workEnd)
	if !ok {
		return []TimeOfDay{}
	}
	if start >= end || stepMinutes <= 0 || serviceDurationMinutes <= 0 {
		return []TimeOfDay{}
	}

	slots := make([]TimeOfDay, 0, int(end-start)/stepMinutes+1)
	for cur := start; cur+TimeOfDay(serviceDurationMinutes) <= end; cur += TimeOfDay(stepMinutes) {
		slots = append(slots, cur)
	}
	return slots
}
