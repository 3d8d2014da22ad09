package schedule

import (
	"strings"
	"testing"
	"time"
)

func mustConverter(t *testing.T, tz string) *Converter {
	t.Helper()
	c, err := NewConverter(tz, "Mon, 02 Jan 2006 15:04")
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	return c
}

func TestResolveConvertsToUTC(t *testing.T) {
	c := mustConverter(t, "America/New_York")

	// July 4th is EDT, UTC-4.
	slot, err := c.Resolve("2025-07-04", "09:00")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := time.Date(2025, 7, 4, 13, 0, 0, 0, time.UTC)
	if !slot.AppointmentAt.Equal(want) {
		t.Fatalf("appointment at %s, want %s", slot.AppointmentAt, want)
	}
}

func TestReminderIsAlwaysThreeHoursBefore(t *testing.T) {
	c := mustConverter(t, "Europe/London")

	cases := []struct{ date, clock string }{
		{"2025-01-15", "09:00"},
		{"2025-06-21", "23:45"},
		{"2025-03-30", "01:30"}, // inside the UK spring-forward gap
		{"2025-10-26", "01:30"}, // repeated during the UK fall-back
		{"2025-12-31", "00:00"},
	}
	for _, tc := range cases {
		slot, err := c.Resolve(tc.date, tc.clock)
		if err != nil {
			t.Fatalf("resolve %s %s: %v", tc.date, tc.clock, err)
		}
		if got := slot.AppointmentAt.Sub(slot.ReminderAt); got != ReminderLead {
			t.Errorf("%s %s: reminder offset %s, want %s", tc.date, tc.clock, got, ReminderLead)
		}
	}
}

func TestResolveDSTTransitionsAreDeterministic(t *testing.T) {
	c := mustConverter(t, "America/New_York")

	// 2025-03-09 02:30 EST does not exist; the time package normalizes it
	// rather than failing. Resolving twice must agree.
	first, err := c.Resolve("2025-03-09", "02:30")
	if err != nil {
		t.Fatalf("resolve gap time: %v", err)
	}
	second, err := c.Resolve("2025-03-09", "02:30")
	if err != nil {
		t.Fatalf("resolve gap time again: %v", err)
	}
	if !first.AppointmentAt.Equal(second.AppointmentAt) {
		t.Fatalf("gap resolution not deterministic: %s vs %s", first.AppointmentAt, second.AppointmentAt)
	}

	// 2025-11-02 01:30 happens twice; same determinism requirement.
	fold, err := c.Resolve("2025-11-02", "01:30")
	if err != nil {
		t.Fatalf("resolve fold time: %v", err)
	}
	foldAgain, err := c.Resolve("2025-11-02", "01:30")
	if err != nil {
		t.Fatalf("resolve fold time again: %v", err)
	}
	if !fold.AppointmentAt.Equal(foldAgain.AppointmentAt) {
		t.Fatalf("fold resolution not deterministic")
	}
}

func TestReminderISOFormat(t *testing.T) {
	c := mustConverter(t, "America/New_York")
	slot, err := c.Resolve("2025-07-04", "09:00")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	iso := slot.ReminderISO()
	if iso != "2025-07-04T10:00:00Z" {
		t.Fatalf("reminder ISO %q", iso)
	}
	if !strings.HasSuffix(iso, "Z") || strings.Contains(iso, "+") {
		t.Fatalf("reminder ISO must use a bare Z suffix: %q", iso)
	}
}

func TestDisplayTimeRoundTrips(t *testing.T) {
	layout := "Mon, 02 Jan 2006 15:04"
	c, err := NewConverter("America/New_York", layout)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	slot, err := c.Resolve("2025-02-14", "18:30")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	loc, _ := time.LoadLocation("America/New_York")
	parsed, err := time.ParseInLocation(layout, slot.DisplayTime(), loc)
	if err != nil {
		t.Fatalf("re-parse display time: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.February || parsed.Day() != 14 ||
		parsed.Hour() != 18 || parsed.Minute() != 30 {
		t.Fatalf("round trip lost the civil time: %s", parsed)
	}
}

func TestResolveRejectsMalformedInput(t *testing.T) {
	c := mustConverter(t, "Europe/London")
	if _, err := c.Resolve("15-01-2025", "09:00"); err == nil {
		t.Error("expected error for bad date")
	}
	if _, err := c.Resolve("2025-01-15", "9am"); err == nil {
		t.Error("expected error for bad clock")
	}
}

func TestNewConverterRejectsUnknownZone(t *testing.T) {
	if _, err := NewConverter("Atlantis/Lost", "15:04"); err == nil {
		t.Error("expected error for unknown timezone")
	}
	if _, err := NewConverter("UTC", ""); err == nil {
		t.Error("expected error for empty layout")
	}
}
