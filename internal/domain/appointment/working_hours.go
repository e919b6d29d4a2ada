package appointment

import "strings"

// Window is a daily working-hours range as HH:mm bounds.
type Window struct {
	Start string
	End   string
}

var DefaultWindow = Window{Start: "09:00", End: "17:00"}

func (w Window) String() string {
	return w.Start + "-" + w.End
}

// ParseWorkingHours parses "HH:mm-HH:mm". ok is false when the value is
// absent or malformed, in which case DefaultWindow is returned.
func ParseWorkingHours(raw *string) (Window, bool) {
	if raw == nil {
		return DefaultWindow, false
	}

	parts := strings.Split(strings.TrimSpace(*raw), "-")
	if len(parts) != 2 {
		return DefaultWindow, false
	}

	w := Window{Start: strings.TrimSpace(parts[0]), End: strings.TrimSpace(parts[1])}
	start, ok1 := ParseTimeOfDay(w.Start)
	end, ok2 := ParseTimeOfDay(w.End)
	if !ok1 || !ok2 || start >= end {
		return DefaultWindow, false
	}

	return w, true
}
