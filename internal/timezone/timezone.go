package timezone

import (
	"regexp"
	"time"
)

// Reference is the single zone used for stored instants, working hours and
// interval arithmetic. Conversion to anything else happens only for display.
var Reference = time.UTC

const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func Now() time.Time {
	return time.Now().In(Reference)
}

// IsDate reports whether s is a strict YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.ParseInLocation(DateLayout, s, Reference)
	return err == nil
}

// ParseDate parses a strict YYYY-MM-DD date at midnight in the reference zone.
func ParseDate(s string) (time.Time, bool) {
	if !datePattern.MatchString(s) {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, s, Reference)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DatePart keeps only the calendar-date prefix of values such as
// "2026-03-14" or "2026-03-14T10:00:00.000Z".
func DatePart(s string) string {
	if len(s) >= len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// DayBounds returns [midnight, next midnight) of day in the reference zone.
func DayBounds(day time.Time) (time.Time, time.Time) {
	d := day.In(Reference)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Reference)
	return start, start.AddDate(0, 0, 1)
}
