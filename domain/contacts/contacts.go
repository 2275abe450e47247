// Package contacts registers signup contacts with the marketing provider.
package contacts

import (
	"context"
	"errors"
	"time"
)

// SignupDateLayout renders SIGNUP_DATE as ISO-8601 UTC with milliseconds.
const SignupDateLayout = "2006-01-02T15:04:05.000Z"

// ErrUnknownList is returned when a list ID has no provider-side mapping.
var ErrUnknownList = errors.New("contact list is not mapped")

// Contact is the record upserted by a Registrar.
type Contact struct {
	Email         string
	SignupDate    time.Time
	Source        string
	ListIDs       []int
	UpdateEnabled bool
}

// FormattedSignupDate returns SignupDate in SignupDateLayout.
func (c Contact) FormattedSignupDate() string {
	return c.SignupDate.UTC().Format(SignupDateLayout)
}

// Registrar creates or updates a contact and its list memberships.
type Registrar interface {
	Register(ctx context.Context, c Contact) error
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(ctx context.Context, c Contact) error

func (f RegistrarFunc) Register(ctx context.Context, c Contact) error {
	return f(ctx, c)
}
