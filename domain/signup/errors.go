package signup

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is the only failure text a visitor ever sees.
const GenericErrorMessage = "Failed to process your request. Please try again."

var (
	// ErrBusy rejects a submission while another one is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrSuccessShowing rejects a submission while the success notice is displayed.
	ErrSuccessShowing = errors.New("the success notice is still showing")

	// ErrMissingCredential means the provider API key is not set.
	ErrMissingCredential = errors.New("contact provider credential is not set")
	// ErrInvalidListID means the configured list ID is not positive.
	ErrInvalidListID = errors.New("contact list id must be positive")
	// ErrInvalidConfig is returned by NewWorkflow for unusable settings.
	ErrInvalidConfig = errors.New("invalid signup configuration")

	errAborted = errors.New("submission aborted")
)

// Kind classifies the outcome of a submission.
type Kind int

const (
	KindNone Kind = iota
	KindConfiguration
	KindRegistration
	KindDelivery
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindRegistration:
		return "registration"
	case KindDelivery:
		return "delivery"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConfigurationError means the workflow was not attempted because the
// provider settings are unusable.
type ConfigurationError struct{ Err error }

func (e *ConfigurationError) Error() string { return "configuration: " + e.Err.Error() }
func (e *ConfigurationError) Unwrap() error { return e.Err }

// RegistrationError means the contact provider call failed.
type RegistrationError struct{ Err error }

func (e *RegistrationError) Error() string { return "registration: " + e.Err.Error() }
func (e *RegistrationError) Unwrap() error { return e.Err }

// DeliveryError means the guide could not be fetched or saved. The contact
// may already be registered.
type DeliveryError struct{ Err error }

func (e *DeliveryError) Error() string { return "delivery: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }

// Result is the outcome of one submission. Err is for diagnostics only.
type Result struct {
	Kind Kind
	Err  error
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Kind == KindNone
}

func failure(kind Kind, err error) Result {
	switch kind {
	case KindConfiguration:
		err = &ConfigurationError{Err: err}
	case KindRegistration:
		err = &RegistrationError{Err: err}
	case KindDelivery:
		err = &DeliveryError{Err: err}
	}
	return Result{Kind: kind, Err: err}
}
