package quizstatus

import (
	"testing"
	"time"
)

func TestEvaluateWindowBoundaries(t *testing.T) {
	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want WindowStatus
	}{
		{name: "just before open", now: from.Add(-time.Millisecond), want: WindowUpcoming},
		{name: "exactly at open", now: from, want: WindowActive},
		{name: "mid window", now: from.Add(48 * time.Hour), want: WindowActive},
		{name: "exactly at close", now: to, want: WindowActive},
		{name: "just after close", now: to.Add(time.Millisecond), want: WindowEnded},
		{name: "long before open", now: from.Add(-30 * 24 * time.Hour), want: WindowUpcoming},
		{name: "long after close", now: to.Add(365 * 24 * time.Hour), want: WindowEnded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateWindow(from, to, tc.now)
			if got.Status != tc.want {
				t.Fatalf("status = %s, want %s", got.Status, tc.want)
			}
			if tc.want == WindowEnded && got.TimeRemaining != "" {
				t.Fatalf("ended window must have empty time remaining, got %q", got.TimeRemaining)
			}
			if tc.want != WindowEnded && got.TimeRemaining == "" {
				t.Fatal("upcoming/active window must report time remaining")
			}
		})
	}
}

func TestEvaluateWindowInverted(t *testing.T) {
	from := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour) // misconfigured: from > to

	for _, now := range []time.Time{
		to.Add(-time.Hour),  // sebelum dua-duanya
		to.Add(time.Hour),   // di antara to dan from
		from.Add(time.Hour), // setelah dua-duanya
	} {
		got := EvaluateWindow(from, to, now)
		if got.Status != WindowEnded {
			t.Fatalf("inverted window at %s: status = %s, want ended", now, got.Status)
		}
		if got.TimeRemaining != "" {
			t.Fatalf("inverted window must have empty time remaining, got %q", got.TimeRemaining)
		}
	}
}

func TestEvaluateWindowDeterministic(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)
	now := from.Add(3 * time.Hour)

	first := EvaluateWindow(from, to, now)
	for i := 0; i < 10; i++ {
		if got := EvaluateWindow(from, to, now); got != first {
			t.Fatalf("call %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "days", d: 3*24*time.Hour + 5*time.Hour, want: "3d"},
		{name: "exactly one day", d: 24 * time.Hour, want: "1d"},
		{name: "hours and minutes", d: 2*time.Hour + 15*time.Minute, want: "2h 15m"},
		{name: "exactly one hour", d: time.Hour, want: "1h 0m"},
		{name: "minutes", d: 45 * time.Minute, want: "45m"},
		{name: "under a minute rounds up", d: 20 * time.Second, want: "1m"},
		{name: "negative", d: -time.Minute, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRemaining(tc.d); got != tc.want {
				t.Fatalf("FormatRemaining(%s) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}
