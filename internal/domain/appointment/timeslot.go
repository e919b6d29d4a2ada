package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// SlotLayout is the 12-hour display form shared by availability output and
// booking input, e.g. "9:00 AM".
const SlotLayout = "3:04 PM"

// NotificationLayout is how appointment times read inside notification text.
const NotificationLayout = "Mon, Jan 2, 2006 at 3:04 PM"

func FormatSlot(t time.Time) string {
	return t.In(timezone.Reference).Format(SlotLayout)
}

func FormatForNotification(t time.Time) string {
	return t.In(timezone.Reference).Format(NotificationLayout)
}

// ParseBookingInstant combines the calendar-date part of date with a display
// time slot into one instant in the reference zone.
func ParseBookingInstant(date, slot string) (time.Time, bool) {
	day, ok := timezone.ParseDate(timezone.DatePart(strings.TrimSpace(date)))
	if !ok {
		return time.Time{}, false
	}

	clock, err := time.ParseInLocation(SlotLayout, strings.ToUpper(strings.TrimSpace(slot)), timezone.Reference)
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		timezone.Reference,
	), true
}
