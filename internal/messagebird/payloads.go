package messagebird

import (
	"errors"
	"strings"
)

// LookupResponse mirrors the MessageBird lookup resource. Type is the
// device classification, e.g. "mobile", "landline" or "fixed line or mobile".
type LookupResponse struct {
	Href        string        `json:"href"`
	CountryCode string        `json:"countryCode"`
	PhoneNumber int64         `json:"phoneNumber"`
	Type        string        `json:"type"`
	Formats     LookupFormats `json:"formats"`
}

// LookupFormats carries the canonical renderings of a looked-up number.
type LookupFormats struct {
	E164          string `json:"e164"`
	International string `json:"international"`
	National      string `json:"national"`
	RFC3966       string `json:"rfc3966"`
}

// IsMobile reports whether the classification includes mobile. MessageBird
// uses combined types such as "fixed line or mobile", so this is a
// substring match, not equality.
func (r *LookupResponse) IsMobile() bool {
	return strings.Contains(r.Type, "mobile")
}

// MessageRequest describes an outbound SMS payload.
type MessageRequest struct {
	Originator string
	Recipients []string
	Body       string

	// ScheduledDatetime delays dispatch until the given ISO-8601 UTC
	// instant (trailing Z). Empty sends immediately.
	ScheduledDatetime string
}

func (r MessageRequest) validate() error {
	if strings.TrimSpace(r.Originator) == "" {
		return errors.New("messagebird: originator required")
	}
	if len(r.Recipients) == 0 {
		return errors.New("messagebird: at least one recipient required")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("messagebird: body required")
	}
	return nil
}

// MessageResponse represents the MessageBird message resource.
type MessageResponse struct {
	ID                string     `json:"id"`
	Href              string     `json:"href"`
	Direction         string     `json:"direction"`
	Originator        string     `json:"originator"`
	Body              string     `json:"body"`
	ScheduledDatetime string     `json:"scheduledDatetime"`
	CreatedDatetime   string     `json:"createdDatetime"`
	Recipients        Recipients `json:"recipients"`
}

// Recipients summarizes delivery state per recipient.
type Recipients struct {
	TotalCount     int              `json:"totalCount"`
	TotalSentCount int              `json:"totalSentCount"`
	Items          []RecipientEntry `json:"items"`
}

// RecipientEntry is one recipient's delivery status.
type RecipientEntry struct {
	Recipient int64  `json:"recipient"`
	Status    string `json:"status"`
}
