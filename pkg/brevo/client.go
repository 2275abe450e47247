// Package brevo is a minimal client for the Brevo (formerly Sendinblue)
// contacts API. Only contact creation is implemented.
// See: https://developers.brevo.com/reference/createcontact
package brevo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.brevo.com"

// Attribute names used by the contacts endpoint.
const (
	AttrSignupDate = "SIGNUP_DATE"
	AttrSource     = "SOURCE"
)

// ErrMissingAPIKey is returned before any request is made when the client has no key.
var ErrMissingAPIKey = errors.New("brevo: api key is not set")

// Client talks to the Brevo REST API.
type Client struct {
	rc     *resty.Client
	apiKey string
}

// Option customizes a Client.
type Option func(*resty.Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(rc *resty.Client) {
		rc.SetTransport(hc.Transport)
		rc.SetTimeout(hc.Timeout)
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(rc *resty.Client) {
		rc.SetHeader("User-Agent", ua)
	}
}

// New creates a client for baseURL authenticated with apiKey.
// No request timeout is applied unless one is configured through WithHTTPClient.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{rc: rc, apiKey: apiKey}
}

// CreateContactRequest is the body of POST /v3/contacts.
type CreateContactRequest struct {
	Email         string         `json:"email"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	ListIDs       []int          `json:"listIds,omitempty"`
	UpdateEnabled bool           `json:"updateEnabled"`
}

// CreateContactResponse is returned when a new contact was created.
// ID is zero when an existing contact was updated (204 No Content).
type CreateContactResponse struct {
	ID int64 `json:"id"`
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("brevo: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("brevo: unexpected status %d", e.StatusCode)
}

// CreateContact creates the contact, or updates it when UpdateEnabled is set
// and the email is already known.
func (c *Client) CreateContact(ctx context.Context, req CreateContactRequest) (*CreateContactResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("api-key", c.apiKey).
		SetBody(req).
		Post("/v3/contacts")
	if err != nil {
		return nil, fmt.Errorf("brevo: create contact: %w", err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, parseError(resp.StatusCode(), resp.Body())
	}

	out := &CreateContactResponse{}
	if len(resp.Body()) > 0 {
		// a malformed success body does not undo the registration
		_ = json.Unmarshal(resp.Body(), out)
	}
	return out, nil
}

func parseError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	apiErr.StatusCode = status
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
