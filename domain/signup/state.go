package signup

import "fmt"

// Phase is the visible state of a visitor's signup card.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText renders the phase by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Event drives a phase transition.
type Event int

const (
	EventSubmit Event = iota
	EventFail
	EventComplete
	EventExpire
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventFail:
		return "fail"
	case EventComplete:
		return "complete"
	case EventExpire:
		return "expire"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type transition struct {
	from  Phase
	event Event
}

var transitions = map[transition]Phase{
	{PhaseIdle, EventSubmit}:         PhaseSubmitting,
	{PhaseError, EventSubmit}:        PhaseSubmitting,
	{PhaseSubmitting, EventFail}:     PhaseError,
	{PhaseSubmitting, EventComplete}: PhaseSuccess,
	{PhaseSuccess, EventExpire}:      PhaseIdle,
}

// InvalidTransitionError is returned for a (phase, event) pair outside the table.
type InvalidTransitionError struct {
	From  Phase
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition from %s on %s", e.From, e.Event)
}

// Next returns the phase reached from p on e.
func Next(p Phase, e Event) (Phase, error) {
	to, ok := transitions[transition{p, e}]
	if !ok {
		return p, &InvalidTransitionError{From: p, Event: e}
	}
	return to, nil
}
