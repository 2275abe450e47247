package signup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
)

// State is a snapshot of a Controller.
type State struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
	Email   string `json:"email"`
}

// Controller holds one visitor's signup card: the email field, the phase and
// the error message. At most one submission runs at a time.
type Controller struct {
	wf *Workflow

	mu         sync.Mutex
	phase      Phase
	message    string
	email      string
	timer      Timer
	generation uint64
	lastActive time.Time
}

// Submit runs the workflow for email and hands the guide to saver.
//
// While a submission is in flight it returns ErrBusy, and while the success
// notice is showing it returns ErrSuccessShowing; neither changes any state.
// Otherwise the returned error is nil and the outcome is in Result.
func (c *Controller) Submit(ctx context.Context, email string, saver asset.Saver) (Result, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseSubmitting:
		c.mu.Unlock()
		c.wf.metrics.reject("busy")
		return Result{}, ErrBusy
	case PhaseSuccess:
		c.mu.Unlock()
		c.wf.metrics.reject("success_showing")
		return Result{}, ErrSuccessShowing
	}
	if err := c.fire(EventSubmit); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	c.email = email
	c.message = ""
	c.lastActive = c.wf.clock.Now()
	c.mu.Unlock()

	res := failure(KindConfiguration, errAborted)
	defer func() {
		c.finish(res)
	}()
	res = c.wf.run(ctx, email, saver)
	return res, nil
}

// finish leaves the Submitting phase. It runs even if run panics past its
// own recovery.
func (c *Controller) finish(res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = c.wf.clock.Now()
	if !res.OK() {
		_ = c.fire(EventFail)
		c.message = GenericErrorMessage
		return
	}

	_ = c.fire(EventComplete)
	c.email = ""
	c.generation++
	gen := c.generation
	c.timer = c.wf.clock.AfterFunc(c.wf.cfg.SuccessDisplay(), func() {
		c.expire(gen)
	})
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.phase != PhaseSuccess {
		return
	}
	_ = c.fire(EventExpire)
	c.timer = nil
}

// fire applies e. The caller holds c.mu.
func (c *Controller) fire(e Event) error {
	to, err := Next(c.phase, e)
	if err != nil {
		c.wf.log.Error("rejected phase transition", slog.String("from", c.phase.String()), slog.String("event", e.String()))
		return err
	}
	c.phase = to
	return nil
}

// RejectInput keeps a submission that failed the input check in the email
// field and shows why. It does nothing while a submission is running or the
// success notice is up.
func (c *Controller) RejectInput(email, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSubmitting || c.phase == PhaseSuccess {
		return
	}
	c.email = email
	c.message = message
	c.lastActive = c.wf.clock.Now()
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Phase: c.phase, Message: c.message, Email: c.email}
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseSubmitting
}

// idleSince returns the last activity time and whether the controller may be dropped.
func (c *Controller) idleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive, c.phase != PhaseSubmitting
}

// Close cancels a pending success timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
