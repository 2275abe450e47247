package signup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/contacts"
)

var testPDF = []byte("%PDF-1.4\n%guide\n")

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

// Advance moves the clock forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recorder collects the calls made by the fake collaborators, in order.
type recorder struct {
	mu       sync.Mutex
	calls    []string
	contacts []contacts.Contact
	saved    []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeRegistrar struct {
	rec   *recorder
	err   error
	panic any
	block chan struct{}
}

func (f *fakeRegistrar) Register(ctx context.Context, c contacts.Contact) error {
	f.rec.add("register")
	f.rec.mu.Lock()
	f.rec.contacts = append(f.rec.contacts, c)
	f.rec.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

type fakeSource struct {
	rec *recorder
	err error
}

func (f *fakeSource) Fetch(_ context.Context, path string) (*asset.Asset, error) {
	f.rec.add("fetch:" + path)
	if f.err != nil {
		return nil, f.err
	}
	return &asset.Asset{Name: path, ContentType: "application/pdf", Data: testPDF}, nil
}

type fakeSaver struct {
	rec   *recorder
	err   error
	panic any
}

func (f *fakeSaver) Save(_ context.Context, filename string, a *asset.Asset) error {
	f.rec.add("save:" + filename)
	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return f.err
	}
	f.rec.mu.Lock()
	f.rec.saved = append(f.rec.saved, filename)
	f.rec.mu.Unlock()
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		Credential:       "xkeysib-test",
		ListID:           5,
		SourceLabel:      "Emergency Guide Landing Page",
		AssetPath:        "guide.pdf",
		DownloadFilename: "ResQX-Emergency-Guide.pdf",
		SuccessDisplayMs: 5000,
	}
}

type harness struct {
	clock     *fakeClock
	rec       *recorder
	registrar *fakeRegistrar
	source    *fakeSource
	saver     *fakeSaver
	wf        *Workflow
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{clock: newFakeClock(), rec: &recorder{}}
	h.registrar = &fakeRegistrar{rec: h.rec}
	h.source = &fakeSource{rec: h.rec}
	h.saver = &fakeSaver{rec: h.rec}

	opts = append([]Option{WithClock(h.clock), WithLogger(discardLogger())}, opts...)
	wf, err := NewWorkflow(cfg, h.registrar, h.source, opts...)
	require.NoError(t, err)
	h.wf = wf
	return h
}

var errBoom = errors.New("boom")
