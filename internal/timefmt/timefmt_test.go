package timefmt

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"negative", -time.Second, "0s"},
		{"zero", 0, "0s"},
		{"sub-millisecond", 300 * time.Microsecond, "<1ms"},
		{"millis", 850 * time.Millisecond, "850ms"},
		{"seconds", 4200 * time.Millisecond, "4.2s"},
		{"tens of seconds", 42*time.Second + 900*time.Millisecond, "42s"},
		{"minutes", 2*time.Minute + 5*time.Second, "2m05s"},
		{"hours", time.Hour + 3*time.Minute + 59*time.Second, "1h03m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Duration(tc.d); got != tc.want {
				t.Fatalf("Duration(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestSince(t *testing.T) {
	start := time.Date(2025, time.December, 5, 15, 0, 0, 0, time.UTC)
	if got := Since(start, start.Add(90*time.Second)); got != "1m30s" {
		t.Fatalf("Since = %q", got)
	}
}
