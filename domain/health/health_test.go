package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/scheduler"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/apperror"
)

type fixedSessions int

func (n fixedSessions) Len() int { return int(n) }

type fixedTasks []scheduler.TaskInfo

func (t fixedTasks) Tasks() []scheduler.TaskInfo { return t }

type failingSource struct{}

func (failingSource) Fetch(context.Context, string) (*asset.Asset, error) {
	return nil, errors.New("bucket unreachable")
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "local",
		Signup:      config.SignupConfig{AssetPath: "guide.pdf"},
		Contacts: config.ContactsConfig{
			Provider: config.ProviderBrevo,
			Brevo:    config.BrevoConfig{APIKey: "key", ListID: 5},
		},
		Asset: config.AssetConfig{Source: config.AssetSourceEmbedded},
	}
}

func newTestHandler(cfg *config.Config, source asset.Source) *Handler {
	if source == nil {
		source = asset.NewFSSource(fstest.MapFS{
			"guide.pdf": {Data: []byte("%PDF-1.4")},
		})
	}
	return &Handler{
		cfg:      cfg,
		source:   source,
		sessions: fixedSessions(3),
		tasks:    fixedTasks{{Name: "signup_session_sweep", Schedule: "@every 1m"}},
		getLoadAvg: func(context.Context) (*load.AvgStat, error) {
			return &load.AvgStat{Load1: 0.5, Load5: 0.25, Load15: 0.125}, nil
		},
		getMemStats: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("not supported")
		},
	}
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(nil)
	RegisterRoutes(e, h)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		source     asset.Source
		wantCode   int
		wantStatus string
		unhealthy  string
	}{
		{
			name:       "all checks pass",
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name:       "missing credential",
			mutate:     func(c *config.Config) { c.Contacts.Brevo.APIKey = "" },
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
			unhealthy:  "contacts",
		},
		{
			name:       "guide unavailable",
			source:     failingSource{},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
			unhealthy:  "guide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			rec := serve(t, newTestHandler(cfg, tt.source), "/health")
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Checks, 2)
			if tt.unhealthy != "" {
				assert.Equal(t, "unhealthy", resp.Checks[tt.unhealthy].Status)
				assert.NotEmpty(t, resp.Checks[tt.unhealthy].Message)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	cfg := testConfig()
	cfg.Contacts.Brevo.APIKey = ""
	rec := serve(t, newTestHandler(cfg, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReady(t *testing.T) {
	rec := serve(t, newTestHandler(testConfig(), nil), "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	cfg := testConfig()
	cfg.Contacts.Brevo.ListID = 0
	rec = serve(t, newTestHandler(cfg, nil), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Checks map[string]Check `json:"checks"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Error.Code)
	assert.Equal(t, "unhealthy", body.Error.Details.Checks["contacts"].Status)
	assert.Equal(t, "healthy", body.Error.Details.Checks["guide"].Status)
}

// checkingSource answers availability checks but must never be downloaded.
type checkingSource struct {
	checked string
	err     error
}

func (s *checkingSource) Fetch(context.Context, string) (*asset.Asset, error) {
	return nil, errors.New("health checks must not download the guide")
}

func (s *checkingSource) Check(_ context.Context, path string) error {
	s.checked = path
	return s.err
}

func TestReady_UsesSourceCheck(t *testing.T) {
	src := &checkingSource{}
	rec := serve(t, newTestHandler(testConfig(), src), "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guide.pdf", src.checked)

	src.err = asset.ErrNotFound
	rec = serve(t, newTestHandler(testConfig(), src), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDebug(t *testing.T) {
	rec := serve(t, newTestHandler(testConfig(), nil), "/debug")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	signup := body["signup"].(map[string]any)
	assert.Equal(t, float64(3), signup["sessions"])
	assert.Equal(t, "brevo", signup["provider"])
	assert.Len(t, body["tasks"], 1)
	host := body["host"].(map[string]any)
	assert.Equal(t, 0.5, host["load1"])
	assert.NotContains(t, host, "memory_used_percent")

	cfg := testConfig()
	cfg.Environment = "production"
	rec = serve(t, newTestHandler(cfg, nil), "/debug")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, newTestHandler(testConfig(), nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
