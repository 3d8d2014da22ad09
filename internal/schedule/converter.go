package schedule

import (
	"fmt"
	"time"
)

// ReminderLead is how far ahead of the appointment the reminder SMS goes out.
const ReminderLead = 3 * time.Hour

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Converter turns the form's local date and time-of-day into absolute UTC
// instants. All customers share one configured timezone.
type Converter struct {
	location      *time.Location
	displayLayout string
}

// NewConverter resolves the IANA timezone name and keeps the display layout
// used on the confirmation page and in SMS bodies.
func NewConverter(timezone, displayLayout string) (*Converter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("schedule: load timezone %q: %w", timezone, err)
	}
	if displayLayout == "" {
		return nil, fmt.Errorf("schedule: display layout required")
	}
	return &Converter{location: loc, displayLayout: displayLayout}, nil
}

// Slot is a resolved appointment time. AppointmentAt and ReminderAt are UTC;
// ReminderAt is always exactly ReminderLead before AppointmentAt.
type Slot struct {
	AppointmentAt time.Time
	ReminderAt    time.Time

	location      *time.Location
	displayLayout string
}

// Resolve combines a YYYY-MM-DD date and an HH:MM clock into a civil
// timestamp, interprets it in the configured timezone and converts to UTC.
// Civil times that fall in a DST gap or repeat across a DST fold resolve per
// the time package's documented normalization; no bespoke disambiguation.
func (c *Converter) Resolve(date, clock string) (Slot, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return Slot{}, fmt.Errorf("schedule: parse date %q: %w", date, err)
	}
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return Slot{}, fmt.Errorf("schedule: parse time %q: %w", clock, err)
	}

	local := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, c.location)
	appointmentAt := local.UTC()

	return Slot{
		AppointmentAt: appointmentAt,
		ReminderAt:    appointmentAt.Add(-ReminderLead),
		location:      c.location,
		displayLayout: c.displayLayout,
	}, nil
}

// DisplayTime renders the appointment in the customer's timezone using the
// configured layout.
func (s Slot) DisplayTime() string {
	return s.AppointmentAt.In(s.location).Format(s.displayLayout)
}

// ReminderISO renders the reminder instant the way MessageBird's
// scheduledDatetime parameter expects it: ISO 8601 UTC with a trailing Z and
// no fractional seconds.
func (s Slot) ReminderISO() string {
	return s.ReminderAt.Truncate(time.Second).UTC().Format("2006-01-02T15:04:05Z")
}
