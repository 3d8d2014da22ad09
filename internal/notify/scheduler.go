package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/beautybird/appointments/internal/messagebird"
	"github.com/beautybird/appointments/pkg/logging"
)

var notifyTracer = otel.Tracer("beautybird.internal.notify")

// MessageCreator is the slice of the MessageBird client the scheduler needs.
type MessageCreator interface {
	CreateMessage(ctx context.Context, req messagebird.MessageRequest) (*messagebird.MessageResponse, error)
}

// Booking carries everything the reminder message needs.
type Booking struct {
	CustomerName string
	// Recipient is the country-code-prefixed number.
	Recipient string
	// DisplayTime is the appointment rendered in the customer's timezone.
	DisplayTime string
	// ReminderISO is the reminder instant as ISO-8601 UTC with trailing Z.
	ReminderISO string
}

// DeliveryError carries the messaging service's human-readable descriptions
// for display on the booking form.
type DeliveryError struct {
	Descriptions []string
	Err          error
}

func (e *DeliveryError) Error() string {
	if len(e.Descriptions) > 0 {
		return fmt.Sprintf("notify: %s", strings.Join(e.Descriptions, "; "))
	}
	return fmt.Sprintf("notify: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Scheduler hands the appointment message to MessageBird in a single call.
// MessageBird confirms the submission to the customer and holds the reminder
// copy until the scheduled instant; nothing in this process waits or
// re-invokes at reminder time.
type Scheduler struct {
	client     MessageCreator
	originator string
	logger     *logging.Logger
}

// NewScheduler creates a scheduler sending under the given originator name.
func NewScheduler(client MessageCreator, originator string, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		client:     client,
		originator: originator,
		logger:     logger,
	}
}

// ScheduleReminder books the reminder SMS for the booking's reminder
// instant. Failures are terminal; nothing is retried.
func (s *Scheduler) ScheduleReminder(ctx context.Context, booking Booking) error {
	if strings.TrimSpace(booking.Recipient) == "" {
		return errors.New("notify: recipient required")
	}
	if strings.TrimSpace(booking.ReminderISO) == "" {
		return errors.New("notify: reminder instant required")
	}

	ctx, span := notifyTracer.Start(ctx, "notify.schedule_reminder")
	defer span.End()
	span.SetAttributes(
		attribute.String("beautybird.recipient", booking.Recipient),
		attribute.String("beautybird.reminder_at", booking.ReminderISO),
	)

	body := fmt.Sprintf("%s, you have an appointment at BeautyBird at %s",
		booking.CustomerName, booking.DisplayTime)

	resp, err := s.client.CreateMessage(ctx, messagebird.MessageRequest{
		Originator:        s.originator,
		Recipients:        []string{booking.Recipient},
		Body:              body,
		ScheduledDatetime: booking.ReminderISO,
	})
	if err != nil {
		s.logger.Error("reminder schedule failed",
			"recipient", booking.Recipient,
			"reminder_at", booking.ReminderISO,
			"error", err,
		)
		return wrapDelivery(err)
	}

	s.logger.Info("reminder scheduled",
		"message_id", resp.ID,
		"recipient", booking.Recipient,
		"reminder_at", booking.ReminderISO,
	)
	return nil
}

func wrapDelivery(err error) error {
	var apiErr *messagebird.APIError
	if errors.As(err, &apiErr) {
		return &DeliveryError{Descriptions: apiErr.Descriptions(), Err: err}
	}
	return &DeliveryError{Err: err}
}
