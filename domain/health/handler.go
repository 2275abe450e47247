package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/scheduler"
	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/internal/version"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/apperror"
)

const checkTimeout = 5 * time.Second

type sessionCounter interface {
	Len() int
}

type taskLister interface {
	Tasks() []scheduler.TaskInfo
}

// Handler handles health check requests
type Handler struct {
	cfg      *config.Config
	source   asset.Source
	sessions sessionCounter
	tasks    taskLister
	startAt  time.Time

	getLoadAvg  func(context.Context) (*load.AvgStat, error)
	getMemStats func(context.Context) (*mem.VirtualMemoryStat, error)
}

// NewHandler creates a new health handler
func NewHandler(cfg *config.Config, source asset.Source, sessions *signup.Sessions, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		cfg:      cfg,
		source:   source,
		sessions: sessions,
		tasks:    sched,
		startAt:  time.Now(),

		getLoadAvg:  load.AvgWithContext,
		getMemStats: mem.VirtualMemoryWithContext,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) checks(ctx context.Context) map[string]Check {
	checks := map[string]Check{
		"contacts": {Status: "healthy"},
		"guide":    {Status: "healthy"},
	}

	if !h.cfg.Contacts.IsConfigured() {
		checks["contacts"] = Check{
			Status:  "unhealthy",
			Message: h.cfg.Contacts.Provider + " credential or list id is not configured",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := h.checkGuide(ctx); err != nil {
		checks["guide"] = Check{Status: "unhealthy", Message: err.Error()}
	}
	return checks
}

func (h *Handler) checkGuide(ctx context.Context) error {
	if c, ok := h.source.(asset.Checker); ok {
		return c.Check(ctx, h.cfg.Signup.AssetPath)
	}
	_, err := h.source.Fetch(ctx, h.cfg.Signup.AssetPath)
	return err
}

func healthy(checks map[string]Check) bool {
	for _, c := range checks {
		if c.Status != "healthy" {
			return false
		}
	}
	return true
}

// Health returns the overall service health
func (h *Handler) Health(c echo.Context) error {
	checks := h.checks(c.Request().Context())

	status, code := "healthy", http.StatusOK
	if !healthy(checks) {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	return c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).String(),
		Version:   version.Version,
		Checks:    checks,
	})
}

// Healthz returns a simple liveness check
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready reports whether signups can succeed
func (h *Handler) Ready(c echo.Context) error {
	checks := h.checks(c.Request().Context())
	if !healthy(checks) {
		return apperror.ErrNotReady.WithDetails(map[string]any{"checks": checks})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ready"})
}

// Debug returns runtime information outside production
func (h *Handler) Debug(c echo.Context) error {
	if h.cfg.Environment == "production" {
		return apperror.ErrNotFound
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return c.JSON(http.StatusOK, map[string]any{
		"environment": h.cfg.Environment,
		"debug":       h.cfg.Debug,
		"build":       version.Info(),
		"goroutines":  runtime.NumGoroutine(),
		"memory": map[string]any{
			"alloc_mb":       ms.Alloc / 1024 / 1024,
			"total_alloc_mb": ms.TotalAlloc / 1024 / 1024,
			"sys_mb":         ms.Sys / 1024 / 1024,
			"num_gc":         ms.NumGC,
		},
		"signup": map[string]any{
			"provider":     h.cfg.Contacts.Provider,
			"asset_source": h.cfg.Asset.Source,
			"sessions":     h.sessions.Len(),
		},
		"tasks": h.tasks.Tasks(),
		"host":  h.host(c.Request().Context()),
	})
}

// host reports whatever host statistics the platform exposes.
func (h *Handler) host(ctx context.Context) map[string]any {
	out := map[string]any{"cpus": runtime.NumCPU()}
	if h.getLoadAvg != nil {
		if l, err := h.getLoadAvg(ctx); err == nil {
			out["load1"] = l.Load1
			out["load5"] = l.Load5
			out["load15"] = l.Load15
		}
	}
	if h.getMemStats != nil {
		if v, err := h.getMemStats(ctx); err == nil {
			out["memory_used_percent"] = v.UsedPercent
		}
	}
	return out
}
