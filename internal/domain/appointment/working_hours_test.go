package appointment

import "testing"

func strPtr(s string) *string { return &s }

func TestParseWorkingHours(t *testing.T) {
	tests := []struct {
		name   string
		raw    *string
		want   Window
		wantOK bool
	}{
		{"nil", nil, DefaultWindow, false},
		{"valid", strPtr("08:00-12:30"), Window{"08:00", "12:30"}, true},
		{"spaces", strPtr(" 10:00 - 18:00 "), Window{"10:00", "18:00"}, true},
		{"empty", strPtr(""), DefaultWindow, false},
		{"one bound", strPtr("09:00"), DefaultWindow, false},
		{"three parts", strPtr("09:00-12:00-13:00"), DefaultWindow, false},
		{"bad hour", strPtr("25:00-26:00"), DefaultWindow, false},
		{"reversed", strPtr("17:00-09:00"), DefaultWindow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWorkingHours(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("got %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultWindowString(t *testing.T) {
	if DefaultWindow.String() != "09:00-17:00" {
		t.Fatalf("unexpected default window %q", DefaultWindow.String())
	}
}
