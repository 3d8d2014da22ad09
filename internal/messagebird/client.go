package messagebird

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"
)

const (
	defaultBaseURL   = "https://rest.messagebird.com"
	defaultUserAgent = "beautybird-appointments/0.1"
)

// ErrorCodeInvalidParams is MessageBird's error code for a request parameter
// it could not parse, which for lookups means a malformed phone number.
const ErrorCodeInvalidParams = 21

// Config controls how the MessageBird client behaves.
type Config struct {
	BaseURL    string
	AccessKey  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client wraps the MessageBird REST endpoints the booking flow needs:
// number lookup and (optionally scheduled) message creation.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, errors.New("messagebird: access key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		accessKey:  cfg.AccessKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// Lookup performs an HLR-backed lookup of a full international number.
func (c *Client) Lookup(ctx context.Context, phoneNumber string) (*LookupResponse, error) {
	number := strings.TrimSpace(phoneNumber)
	if number == "" {
		return nil, errors.New("messagebird: phone number required")
	}
	data, err := c.invoke(ctx, http.MethodGet, "/lookup/"+url.PathEscape(number), nil)
	if err != nil {
		return nil, err
	}
	var resp LookupResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("messagebird: decode lookup response: %w", err)
	}
	return &resp, nil
}

// CreateMessage submits an SMS. When ScheduledDatetime is set MessageBird
// holds the message and dispatches it at that instant.
func (c *Client) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(struct {
		Originator        string   `json:"originator"`
		Recipients        []string `json:"recipients"`
		Body              string   `json:"body"`
		ScheduledDatetime string   `json:"scheduledDatetime,omitempty"`
	}{
		Originator:        req.Originator,
		Recipients:        req.Recipients,
		Body:              req.Body,
		ScheduledDatetime: req.ScheduledDatetime,
	})
	if err != nil {
		return nil, fmt.Errorf("messagebird: marshal message body: %w", err)
	}
	data, err := c.invoke(ctx, http.MethodPost, "/messages", body)
	if err != nil {
		return nil, err
	}
	var resp MessageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("messagebird: decode message response: %w", err)
	}
	return &resp, nil
}

func (c *Client) invoke(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("messagebird: build request: %w", err)
	}
	req.Header.Set("Authorization", "AccessKey "+c.accessKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("messagebird: http error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("messagebird: read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, decodeAPIError(resp.StatusCode, data)
}

// APIError is a structured MessageBird error response.
type APIError struct {
	StatusCode int           `json:"-"`
	Errors     []ErrorDetail `json:"errors"`
}

// ErrorDetail is one entry in MessageBird's errors array.
type ErrorDetail struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Parameter   string `json:"parameter,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("messagebird: %s (code=%d status=%d)",
			e.Errors[0].Description, e.Errors[0].Code, e.StatusCode)
	}
	return fmt.Sprintf("messagebird: http status %d", e.StatusCode)
}

// Code returns the first error's numeric code, or zero when absent.
func (e *APIError) Code() int {
	if len(e.Errors) == 0 {
		return 0
	}
	return e.Errors[0].Code
}

// Descriptions returns every human-readable description the service sent.
func (e *APIError) Descriptions() []string {
	out := make([]string, 0, len(e.Errors))
	for _, detail := range e.Errors {
		if strings.TrimSpace(detail.Description) != "" {
			out = append(out, detail.Description)
		}
	}
	return out
}

func decodeAPIError(status int, body []byte) error {
	var parsed APIError
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &APIError{
			StatusCode: status,
			Errors:     []ErrorDetail{{Description: strings.TrimSpace(string(body))}},
		}
	}
	parsed.StatusCode = status
	return &parsed
}
