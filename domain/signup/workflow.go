package signup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/contacts"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/tracing"
)

// Workflow registers a contact and then delivers the guide. It holds no
// per-visitor state; Controllers built from it do.
type Workflow struct {
	cfg       Config
	registrar contacts.Registrar
	source    asset.Source
	clock     Clock
	log       *slog.Logger
	metrics   *Metrics
}

// Option customizes a Workflow.
type Option func(*Workflow)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(w *Workflow) { w.clock = c }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Workflow) { w.log = log }
}

// WithMetrics records outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(w *Workflow) { w.metrics = m }
}

// NewWorkflow validates cfg and returns a ready Workflow.
func NewWorkflow(cfg Config, registrar contacts.Registrar, source asset.Source, opts ...Option) (*Workflow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registrar == nil || source == nil {
		return nil, fmt.Errorf("%w: registrar and asset source are required", ErrInvalidConfig)
	}

	w := &Workflow{
		cfg:       cfg,
		registrar: registrar,
		source:    source,
		clock:     SystemClock,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(logger.Scope("signup"))
	return w, nil
}

// Config returns the settings the workflow was built with.
func (w *Workflow) Config() Config {
	return w.cfg
}

// NewController returns a Controller in the Idle phase.
func (w *Workflow) NewController() *Controller {
	return &Controller{wf: w, phase: PhaseIdle, lastActive: w.clock.Now()}
}

// run performs one attempt. It never panics: a panicking collaborator is
// reported as a failure of the step in progress.
func (w *Workflow) run(ctx context.Context, email string, saver asset.Saver) (res Result) {
	ctx, span := tracing.Start(ctx, "signup.submit")
	defer span.End()

	start := time.Now()
	step := KindConfiguration
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("signup step panicked", slog.String("step", step.String()), slog.Any("panic", r))
			res = failure(step, fmt.Errorf("panic: %v", r))
		}
		if !res.OK() {
			tracing.Fail(span, res.Err)
			w.log.Error("signup failed", slog.String("kind", res.Kind.String()), logger.Error(res.Err))
		}
		w.metrics.observe(res.Kind, time.Since(start))
	}()

	if err := w.cfg.usable(); err != nil {
		return failure(KindConfiguration, err)
	}

	step = KindRegistration
	if err := w.register(ctx, email); err != nil {
		return failure(KindRegistration, err)
	}

	step = KindDelivery
	if err := w.deliver(ctx, saver); err != nil {
		return failure(KindDelivery, err)
	}

	w.log.Info("guide delivered", slog.Int("list_id", w.cfg.ListID))
	return Result{Kind: KindNone}
}

func (w *Workflow) register(ctx context.Context, email string) error {
	ctx, span := tracing.Start(ctx, "signup.register", attribute.Int("resqx.list_id", w.cfg.ListID))
	defer span.End()

	err := w.registrar.Register(ctx, contacts.Contact{
		Email:         email,
		SignupDate:    w.clock.Now().UTC(),
		Source:        w.cfg.SourceLabel,
		ListIDs:       []int{w.cfg.ListID},
		UpdateEnabled: true,
	})
	tracing.Fail(span, err)
	return err
}

func (w *Workflow) deliver(ctx context.Context, saver asset.Saver) error {
	ctx, span := tracing.Start(ctx, "signup.deliver", attribute.String("resqx.asset", w.cfg.AssetPath))
	defer span.End()

	a, err := w.source.Fetch(ctx, w.cfg.AssetPath)
	if err != nil {
		tracing.Fail(span, err)
		return fmt.Errorf("fetch %s: %w", w.cfg.AssetPath, err)
	}
	span.SetAttributes(attribute.Int("resqx.asset_bytes", a.Size()))

	if err := saver.Save(ctx, w.cfg.DownloadFilename, a); err != nil {
		tracing.Fail(span, err)
		return fmt.Errorf("save %s: %w", w.cfg.DownloadFilename, err)
	}
	return nil
}
