package signup

import (
	"sync"
	"time"
)

// Sessions keeps one Controller per visitor session id, in memory only.
type Sessions struct {
	wf  *Workflow
	ttl time.Duration

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewSessions creates an empty registry. Controllers idle for longer than
// ttl are dropped by Sweep.
func NewSessions(wf *Workflow, ttl time.Duration) *Sessions {
	return &Sessions{
		wf:          wf,
		ttl:         ttl,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the Controller for id, creating it on first use.
func (s *Sessions) Get(id string) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[id]
	if !ok {
		c = s.wf.NewController()
		s.controllers[id] = c
		s.wf.metrics.sessions(len(s.controllers))
	}
	return c
}

// Peek returns the Controller for id without creating one.
func (s *Sessions) Peek(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controllers[id]
	return c, ok
}

// Len returns the number of held sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}

// Sweep drops controllers idle longer than the ttl. Controllers with a
// submission in flight are kept. It returns the number removed.
func (s *Sessions) Sweep() int {
	now := s.wf.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.controllers {
		last, idle := c.idleSince()
		if !idle || now.Sub(last) <= s.ttl {
			continue
		}
		c.Close()
		delete(s.controllers, id)
		removed++
	}
	s.wf.metrics.sessions(len(s.controllers))
	return removed
}
