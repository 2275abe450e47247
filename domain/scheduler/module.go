package scheduler

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the scheduler. Tasks are added by the modules that own them.
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(RegisterLifecycle),
)

// RegisterLifecycle starts the scheduler with the app and stops it on shutdown.
func RegisterLifecycle(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
