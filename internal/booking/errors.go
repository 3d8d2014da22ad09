package booking

// RejectionKind labels why a booking request was turned away. Every kind is
// terminal for the current request; the customer resubmits the form.
type RejectionKind string

const (
	RejectInvalidInput          RejectionKind = "invalid_input"
	RejectTooSoon               RejectionKind = "too_soon"
	RejectInvalidPhone          RejectionKind = "invalid_phone"
	RejectNotMobile             RejectionKind = "not_mobile"
	RejectValidationUnavailable RejectionKind = "validation_unavailable"
	RejectMessagingFailed       RejectionKind = "messaging_failed"
	RejectStorageFailed         RejectionKind = "storage_failed"
)

// User-facing messages for each rejection. Messaging failures instead carry
// the service's own description.
const (
	msgInvalidInput          = "Please fill in every field with a valid value."
	msgTooSoon               = "Appointment time must be at least 3:05 hours from now"
	msgInvalidPhone          = "Please enter a valid phone number."
	msgNotMobile             = "The number you entered is not a mobile number. Please re-enter a mobile number."
	msgValidationUnavailable = "Something went wrong while checking your phone number."
	msgMessagingFailed       = "Something went wrong while scheduling your reminder. Please try again."
	msgStorageFailed         = "Something went wrong while saving your appointment. Please try again."
)

// RejectionError is the single failure type the workflow returns. Message is
// safe to flash on the form as-is.
type RejectionError struct {
	Kind    RejectionKind
	Message string
	Err     error
}

func (e *RejectionError) Error() string {
	return "booking: rejected (" + string(e.Kind) + "): " + e.Message
}

func (e *RejectionError) Unwrap() error { return e.Err }

func reject(kind RejectionKind, message string, cause error) *RejectionError {
	return &RejectionError{Kind: kind, Message: message, Err: cause}
}
