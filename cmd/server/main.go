// Package main provides the entry point for the ResQ-X landing server
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/contacts"
	"github.com/Ealfred1/ResQ-X-checklist/domain/health"
	"github.com/Ealfred1/ResQ-X-checklist/domain/landing"
	"github.com/Ealfred1/ResQ-X-checklist/domain/scheduler"
	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
	"github.com/Ealfred1/ResQ-X-checklist/domain/tracing"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/internal/server"
	"github.com/Ealfred1/ResQ-X-checklist/internal/storage"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

func main() {
	// Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		server.Module,
		storage.Module,
		tracing.Module,

		// Scheduler module (session sweep)
		scheduler.Module,

		// Domain modules
		contacts.Module,
		asset.Module,
		signup.Module,
		landing.Module,
		health.Module,
	).Run()
}
