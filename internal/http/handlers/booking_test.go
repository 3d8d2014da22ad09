package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautybird/appointments/internal/booking"
)

type stubWorkflow struct {
	conf     *booking.Confirmation
	err      error
	requests []booking.Request
}

func (s *stubWorkflow) Book(ctx context.Context, req booking.Request) (*booking.Confirmation, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.conf, nil
}

func newHandler(t *testing.T, workflow *stubWorkflow) *BookingHandler {
	t.Helper()
	h, err := NewBookingHandler(workflow, nil)
	require.NoError(t, err)
	return h
}

func postForm(h *BookingHandler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.SubmitBooking(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"customer_name": {"Anna"},
		"treatment":     {"manicure"},
		"phone":         {"7911123456"},
		"appt-date":     {"2025-07-04"},
		"appt-time":     {"09:00"},
	}
}

func TestShowFormRendersEmptyForm(t *testing.T) {
	h := newHandler(t, &stubWorkflow{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ShowForm(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="customer_name"`)
	assert.Contains(t, body, `name="appt-date"`)
	assert.Contains(t, body, `name="appt-time"`)
	assert.NotContains(t, body, `class="flash"`)
}

func TestSubmitBookingSuccessRendersConfirmation(t *testing.T) {
	workflow := &stubWorkflow{conf: &booking.Confirmation{
		CustomerName: "Anna",
		Treatment:    "manicure",
		Phone:        "7911123456",
		DisplayTime:  "Fri, 04 Jul 2025 09:00",
	}}
	h := newHandler(t, workflow)

	rec := postForm(h, validForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "You're booked!")
	assert.Contains(t, body, "Fri, 04 Jul 2025 09:00")
	assert.Contains(t, body, "manicure")

	require.Len(t, workflow.requests, 1)
	assert.Equal(t, "2025-07-04", workflow.requests[0].Date)
	assert.Equal(t, "09:00", workflow.requests[0].Clock)
}

func TestSubmitBookingRejectionFlashesMessage(t *testing.T) {
	workflow := &stubWorkflow{err: &booking.RejectionError{
		Kind:    booking.RejectTooSoon,
		Message: "Appointment time must be at least 3:05 hours from now",
	}}
	h := newHandler(t, workflow)

	rec := postForm(h, validForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Appointment time must be at least 3:05 hours from now")
	// Re-rendered form keeps the entered values.
	assert.Contains(t, body, `value="Anna"`)
	assert.Contains(t, body, `value="2025-07-04"`)
}

func TestSubmitBookingBlankFieldSkipsWorkflow(t *testing.T) {
	workflow := &stubWorkflow{}
	h := newHandler(t, workflow)

	form := validForm()
	form.Set("phone", "")
	rec := postForm(h, form)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in every field.")
	assert.Empty(t, workflow.requests)
}

func TestSubmitBookingUnexpectedErrorIs500(t *testing.T) {
	workflow := &stubWorkflow{err: assert.AnError}
	h := newHandler(t, workflow)

	rec := postForm(h, validForm())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong. Please try again.")
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
