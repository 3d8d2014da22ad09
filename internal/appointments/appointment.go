package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Appointment is one booked slot. Instances are created only by the booking
// workflow after every gate has passed and are immutable afterwards.
type Appointment struct {
	ID           uuid.UUID
	CustomerName string
	Treatment    string
	// PhoneNumber is digits only, country code included.
	PhoneNumber string
	// AppointmentAt and ReminderAt are UTC; ReminderAt is always exactly
	// three hours before AppointmentAt.
	AppointmentAt time.Time
	ReminderAt    time.Time
	BookedAt      time.Time
}

// Store is an append-only collection of appointments. There is no update or
// delete; List exists for future extension.
type Store interface {
	Add(ctx context.Context, appt Appointment) error
	List(ctx context.Context) ([]Appointment, error)
}
