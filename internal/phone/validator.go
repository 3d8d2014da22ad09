package phone

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beautybird/appointments/internal/messagebird"
	"github.com/beautybird/appointments/pkg/logging"
)

// Validation failures callers can branch on. Anything the lookup service
// reports beyond a malformed number folds into ErrUnavailable so the
// user-visible message set stays bounded.
var (
	ErrInvalidFormat = errors.New("phone: invalid number format")
	ErrUnavailable   = errors.New("phone: validation unavailable")
)

// Lookuper is the slice of the MessageBird client the validator needs.
type Lookuper interface {
	Lookup(ctx context.Context, phoneNumber string) (*messagebird.LookupResponse, error)
}

// Classification is the outcome of a successful lookup.
type Classification struct {
	// Number is the country-code-prefixed number that was looked up.
	Number string
	// Type is the raw device classification from the service.
	Type string
	// Mobile reports whether Type includes a mobile classification.
	Mobile bool
}

// Validator confirms a customer-supplied number is a reachable mobile
// number in the configured country.
type Validator struct {
	client      Lookuper
	countryCode string
	cache       *Cache
	logger      *logging.Logger
}

// NewValidator builds a validator. cache may be nil to disable caching.
func NewValidator(client Lookuper, countryCode string, cache *Cache, logger *logging.Logger) *Validator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Validator{
		client:      client,
		countryCode: strings.TrimPrefix(strings.TrimSpace(countryCode), "+"),
		cache:       cache,
		logger:      logger,
	}
}

// Verify looks up the raw local digits under the configured country code.
// It returns ErrInvalidFormat for numbers the service cannot parse and
// ErrUnavailable for every other lookup failure. A non-mobile number is not
// an error here; callers read Classification.Mobile.
func (v *Validator) Verify(ctx context.Context, rawDigits string) (*Classification, error) {
	digits := DigitsOnly(rawDigits)
	if digits == "" {
		return nil, ErrInvalidFormat
	}
	number := v.countryCode + digits

	if deviceType, ok := v.cache.Get(ctx, number); ok {
		return &Classification{
			Number: number,
			Type:   deviceType,
			Mobile: strings.Contains(deviceType, "mobile"),
		}, nil
	}

	resp, err := v.client.Lookup(ctx, number)
	if err != nil {
		var apiErr *messagebird.APIError
		if errors.As(err, &apiErr) && apiErr.Code() == messagebird.ErrorCodeInvalidParams {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, apiErr.Error())
		}
		v.logger.Warn("phone lookup failed", "number", number, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	v.cache.Set(ctx, number, resp.Type)
	return &Classification{
		Number: number,
		Type:   resp.Type,
		Mobile: resp.IsMobile(),
	}, nil
}

// DigitsOnly strips everything but digits from a raw phone value.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
