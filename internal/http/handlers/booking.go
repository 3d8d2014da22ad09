package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/beautybird/appointments/internal/booking"
	"github.com/beautybird/appointments/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// BookingWorkflow is the slice of the booking workflow the handler needs.
type BookingWorkflow interface {
	Book(ctx context.Context, req booking.Request) (*booking.Confirmation, error)
}

// BookingHandler serves the appointment form and processes submissions.
type BookingHandler struct {
	workflow BookingWorkflow
	logger   *logging.Logger
	form     *template.Template
	success  *template.Template
}

// formData feeds the index template; a rejected submission re-renders with
// the flash message and the previously entered values.
type formData struct {
	Flash        string
	CustomerName string
	Treatment    string
	Phone        string
	Date         string
	Clock        string
}

// NewBookingHandler parses the embedded templates once.
func NewBookingHandler(workflow BookingWorkflow, logger *logging.Logger) (*BookingHandler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	form, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	success, err := template.ParseFS(templateFS, "templates/success.html")
	if err != nil {
		return nil, err
	}
	return &BookingHandler{
		workflow: workflow,
		logger:   logger,
		form:     form,
		success:  success,
	}, nil
}

// ShowForm renders the empty booking form.
func (h *BookingHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, formData{})
}

// SubmitBooking binds the form fields, runs the workflow and renders either
// the confirmation page or the form with the rejection reason flashed.
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, http.StatusBadRequest, formData{Flash: "Could not read the submitted form. Please try again."})
		return
	}

	data := formData{
		CustomerName: strings.TrimSpace(r.PostFormValue("customer_name")),
		Treatment:    strings.TrimSpace(r.PostFormValue("treatment")),
		Phone:        strings.TrimSpace(r.PostFormValue("phone")),
		Date:         strings.TrimSpace(r.PostFormValue("appt-date")),
		Clock:        strings.TrimSpace(r.PostFormValue("appt-time")),
	}
	if data.CustomerName == "" || data.Treatment == "" || data.Phone == "" || data.Date == "" || data.Clock == "" {
		data.Flash = "Please fill in every field."
		h.renderForm(w, http.StatusOK, data)
		return
	}

	confirmation, err := h.workflow.Book(r.Context(), booking.Request{
		CustomerName: data.CustomerName,
		Treatment:    data.Treatment,
		Phone:        data.Phone,
		Date:         data.Date,
		Clock:        data.Clock,
	})
	if err != nil {
		var rejection *booking.RejectionError
		if errors.As(err, &rejection) {
			data.Flash = rejection.Message
			h.renderForm(w, http.StatusOK, data)
			return
		}
		h.logger.Error("booking failed", "error", err)
		data.Flash = "Something went wrong. Please try again."
		h.renderForm(w, http.StatusInternalServerError, data)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.success.Execute(w, confirmation); err != nil {
		h.logger.Error("render confirmation failed", "error", err)
	}
}

func (h *BookingHandler) renderForm(w http.ResponseWriter, status int, data formData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.form.Execute(w, data); err != nil {
		h.logger.Error("render form failed", "error", err)
	}
}
