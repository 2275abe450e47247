package signup

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	allowed := map[Phase]map[Event]Phase{
		PhaseIdle:       {EventSubmit: PhaseSubmitting},
		PhaseError:      {EventSubmit: PhaseSubmitting},
		PhaseSubmitting: {EventFail: PhaseError, EventComplete: PhaseSuccess},
		PhaseSuccess:    {EventExpire: PhaseIdle},
	}

	phases := []Phase{PhaseIdle, PhaseSubmitting, PhaseError, PhaseSuccess}
	events := []Event{EventSubmit, EventFail, EventComplete, EventExpire}

	for _, p := range phases {
		for _, e := range events {
			t.Run(p.String()+"/"+e.String(), func(t *testing.T) {
				got, err := Next(p, e)
				want, ok := allowed[p][e]
				if ok {
					require.NoError(t, err)
					assert.Equal(t, want, got)
					return
				}
				var invalid *InvalidTransitionError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, p, got, "rejected transition must keep the phase")
			})
		}
	}
}

func TestPhase_JSON(t *testing.T) {
	out, err := json.Marshal(State{Phase: PhaseSubmitting, Email: "ada@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"submitting","email":"ada@example.com"}`, string(out))
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: PhaseSuccess, Event: EventSubmit}
	assert.Equal(t, "no transition from success on submit", err.Error())
}
