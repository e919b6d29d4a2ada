package appointment

import "testing"

func slotStrings(slots []TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		step     int
		duration int
		want     []string
	}{
		{"exact fit", "09:00", "11:00", 30, 30, []string{"09:00", "09:30", "10:00", "10:30"}},
		{"longer service", "09:00", "10:00", 30, 45, []string{"09:00"}},
		{"step and duration independent", "09:00", "10:30", 30, 60, []string{"09:00", "09:30"}},
		{"window too short", "09:00", "09:20", 30, 30, []string{}},
		{"start equals end", "09:00", "09:00", 30, 30, []string{}},
		{"start after end", "17:00", "09:00", 30, 30, []string{}},
		{"bad start", "9:00", "17:00", 30, 30, []string{}},
		{"bad end", "09:00", "24:00", 30, 30, []string{}},
		{"garbage", "nine", "five", 30, 30, []string{}},
		{"zero step", "09:00", "17:00", 0, 30, []string{}},
		{"negative step", "09:00", "17:00", -30, 30, []string{}},
		{"zero duration", "09:00", "17:00", 30, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.start, tt.end, tt.step, tt.duration)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !equalStrings(slotStrings(got), tt.want) {
				t.Fatalf("got %v, want %v", slotStrings(got), tt.want)
			}
		})
	}
}

func TestGenerateSlotsProperties(t *testing.T) {
	windows := [][2]string{{"08:00", "12:00"}, {"09:15", "17:45"}, {"00:00", "23:59"}}
	for _, w := range windows {
		start, _ := ParseTimeOfDay(w[0])
		end, _ := ParseTimeOfDay(w[1])

		for _, step := range []int{5, 15, 30, 60} {
			for _, dur := range []int{10, 30, 45, 90} {
				slots := GenerateSlots(w[0], w[1], step, dur)
				for i, s := range slots {
					if s < start {
						t.Fatalf("%v step=%d dur=%d: slot %s before start", w, step, dur, s)
					}
					if s+TimeOfDay(dur) > end {
						t.Fatalf("%v step=%d dur=%d: slot %s ends after window", w, step, dur, s)
					}
					if i > 0 && s-slots[i-1] != TimeOfDay(step) {
						t.Fatalf("%v step=%d dur=%d: slots not %d apart", w, step, dur, step)
					}
				}
				// the next candidate would not fit
				if len(slots) > 0 {
					next := slots[len(slots)-1] + TimeOfDay(step)
					if next+TimeOfDay(dur) <= end {
						t.Fatalf("%v step=%d dur=%d: stopped early at %s", w, step, dur, slots[len(slots)-1])
					}
				}
			}
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]TimeOfDay{"00:00": 0, "09:30": 570, "23:59": 1439}
	for in, want := range valid {
		got, ok := ParseTimeOfDay(in)
		if !ok || got != want {
			t.Fatalf("ParseTimeOfDay(%q) = %d, %v; want %d", in, got, ok, want)
		}
	}

	for _, in := range []string{"", "9:30", "24:00", "12:60", "12:5", " 09:00", "09:00 "} {
		if _, ok := ParseTimeOfDay(in); ok {
			t.Fatalf("ParseTimeOfDay(%q) should fail", in)
		}
	}
}
