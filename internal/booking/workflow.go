package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/beautybird/appointments/internal/appointments"
	"github.com/beautybird/appointments/internal/notify"
	"github.com/beautybird/appointments/internal/observability/metrics"
	"github.com/beautybird/appointments/internal/phone"
	"github.com/beautybird/appointments/internal/schedule"
	"github.com/beautybird/appointments/pkg/logging"
	"github.com/google/uuid"
)

var bookingTracer = otel.Tracer("beautybird.internal.booking")

// MinimumLead is the smallest interval allowed between submitting the form
// and the appointment itself: the reminder offset plus a five minute margin
// so MessageBird never receives a scheduledDatetime in the past.
const MinimumLead = schedule.ReminderLead + 5*time.Minute

// Request is one submitted booking form. It lives only for the duration of
// a single Book call.
type Request struct {
	CustomerName string
	Treatment    string
	// Phone is the local number as typed, without country code.
	Phone string
	// Date is YYYY-MM-DD, Clock is HH:MM, both in the configured timezone.
	Date  string
	Clock string
}

// Confirmation echoes the booked details back for the confirmation page.
type Confirmation struct {
	CustomerName string
	Treatment    string
	Phone        string
	DisplayTime  string
}

// SlotResolver turns form date/clock values into UTC instants.
type SlotResolver interface {
	Resolve(date, clock string) (schedule.Slot, error)
}

// PhoneVerifier confirms a number is a reachable mobile number.
type PhoneVerifier interface {
	Verify(ctx context.Context, rawDigits string) (*phone.Classification, error)
}

// ReminderScheduler hands the reminder SMS to the messaging service.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking notify.Booking) error
}

// Workflow walks one booking request through its gates in order: resolve the
// slot, enforce the lead time, verify the phone, schedule the messages,
// store the appointment. Any failure rejects the request; nothing retries.
type Workflow struct {
	slots    SlotResolver
	phones   PhoneVerifier
	notifier ReminderScheduler
	store    appointments.Store
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	clock    func() time.Time
}

// NewWorkflow wires the booking workflow. metrics may be nil.
func NewWorkflow(
	slots SlotResolver,
	phones PhoneVerifier,
	notifier ReminderScheduler,
	store appointments.Store,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *Workflow {
	if logger == nil {
		logger = logging.Default()
	}
	return &Workflow{
		slots:    slots,
		phones:   phones,
		notifier: notifier,
		store:    store,
		metrics:  m,
		logger:   logger,
		clock:    time.Now,
	}
}

// Book runs the workflow. On failure the returned error is always a
// *RejectionError whose Message is safe to show the customer.
func (w *Workflow) Book(ctx context.Context, req Request) (*Confirmation, error) {
	start := w.clock()
	ctx, span := bookingTracer.Start(ctx, "booking.book")
	defer span.End()

	confirmation, err := w.book(ctx, req)

	outcome := "stored"
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			outcome = string(rejection.Kind)
		} else {
			outcome = "error"
		}
	}
	span.SetAttributes(attribute.String("beautybird.outcome", outcome))
	w.metrics.ObserveBooking(outcome, w.clock().Sub(start).Seconds())
	return confirmation, err
}

func (w *Workflow) book(ctx context.Context, req Request) (*Confirmation, error) {
	name := strings.TrimSpace(req.CustomerName)
	treatment := strings.TrimSpace(req.Treatment)
	if name == "" || treatment == "" {
		return nil, reject(RejectInvalidInput, msgInvalidInput, nil)
	}

	// Received -> TimeValidated
	slot, err := w.slots.Resolve(req.Date, req.Clock)
	if err != nil {
		return nil, reject(RejectInvalidInput, msgInvalidInput, err)
	}
	now := w.clock().UTC()
	if slot.AppointmentAt.Add(-MinimumLead).Before(now) {
		w.logger.Info("booking rejected: too soon",
			"appointment_at", slot.AppointmentAt,
			"now", now,
		)
		return nil, reject(RejectTooSoon, msgTooSoon, nil)
	}

	// TimeValidated -> PhoneValidated
	class, err := w.phones.Verify(ctx, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidFormat):
			w.metrics.ObserveLookup("invalid_format")
			return nil, reject(RejectInvalidPhone, msgInvalidPhone, err)
		default:
			w.metrics.ObserveLookup("unavailable")
			return nil, reject(RejectValidationUnavailable, msgValidationUnavailable, err)
		}
	}
	if !class.Mobile {
		w.metrics.ObserveLookup("not_mobile")
		return nil, reject(RejectNotMobile, msgNotMobile, nil)
	}
	w.metrics.ObserveLookup("mobile")

	// PhoneValidated -> MessageScheduled
	if err := w.notifier.ScheduleReminder(ctx, notify.Booking{
		CustomerName: name,
		Recipient:    class.Number,
		DisplayTime:  slot.DisplayTime(),
		ReminderISO:  slot.ReminderISO(),
	}); err != nil {
		message := msgMessagingFailed
		var delivery *notify.DeliveryError
		if errors.As(err, &delivery) && len(delivery.Descriptions) > 0 {
			message = strings.Join(delivery.Descriptions, "; ")
		}
		return nil, reject(RejectMessagingFailed, message, err)
	}

	// MessageScheduled -> Stored
	appt := appointments.Appointment{
		ID:            uuid.New(),
		CustomerName:  name,
		Treatment:     treatment,
		PhoneNumber:   class.Number,
		AppointmentAt: slot.AppointmentAt,
		ReminderAt:    slot.ReminderAt,
		BookedAt:      now,
	}
	if err := w.store.Add(ctx, appt); err != nil {
		w.logger.Error("appointment store failed", "error", err)
		return nil, reject(RejectStorageFailed, msgStorageFailed, err)
	}

	w.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"treatment", treatment,
		"appointment_at", appt.AppointmentAt,
		"reminder_at", appt.ReminderAt,
	)
	return &Confirmation{
		CustomerName: name,
		Treatment:    treatment,
		Phone:        phone.DigitsOnly(req.Phone),
		DisplayTime:  slot.DisplayTime(),
	}, nil
}
