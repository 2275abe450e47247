package signup

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/contacts"
	"github.com/Ealfred1/ResQ-X-checklist/domain/scheduler"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

var Module = fx.Module("signup",
	fx.Provide(
		provideMetrics,
		provideWorkflow,
		provideSessions,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RegisterSweep),
)

func provideMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

func provideWorkflow(cfg *config.Config, registrar contacts.Registrar, source asset.Source, m *Metrics, log *slog.Logger) (*Workflow, error) {
	return NewWorkflow(ConfigFrom(cfg), registrar, source, WithLogger(log), WithMetrics(m))
}

func provideSessions(wf *Workflow, cfg *config.Config) *Sessions {
	return NewSessions(wf, cfg.Signup.SessionIdleTTL)
}

// RegisterSweep schedules eviction of idle visitor sessions.
func RegisterSweep(s *scheduler.Scheduler, sessions *Sessions, cfg *config.Config, log *slog.Logger) error {
	log = log.With(logger.Scope("signup.sessions"))
	return s.AddTask("signup_session_sweep", cfg.Signup.SessionSweep, func(context.Context) error {
		if n := sessions.Sweep(); n > 0 {
			log.Debug("evicted idle sessions", slog.Int("evicted", n), slog.Int("remaining", sessions.Len()))
		}
		return nil
	})
}
