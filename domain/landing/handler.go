package landing

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	. "maragu.dev/gomponents/html"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/apperror"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

// StateReader resolves the signup state of the requesting visitor and makes
// sure the visitor carries a session before the form is shown.
type StateReader interface {
	Ensure(c echo.Context) signup.State
}

// Handler renders the landing page and serves the guide.
type Handler struct {
	states    StateReader
	source    asset.Source
	card      CardConfig
	assetPath string
	log       *slog.Logger
	now       func() time.Time
}

func NewHandler(states StateReader, source asset.Source, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		states: states,
		source: source,
		card: CardConfig{
			DownloadFilename: cfg.Signup.DownloadFilename,
			SuccessDisplay:   cfg.Signup.SuccessDisplay(),
		},
		assetPath: cfg.Signup.AssetPath,
		log:       log.With(logger.Scope("landing")),
		now:       time.Now,
	}
}

// Page renders the landing page with the visitor's signup card.
func (h *Handler) Page(c echo.Context) error {
	page := Layout(
		PageConfig{},
		SiteHeader(),
		Main(
			Class("container page"),
			Hero(),
			Section(
				Class("split"),
				Features(),
				SignupCard(h.states.Ensure(c), h.card),
			),
		),
		PageFooter(h.now().Year()),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return apperror.NewInternal("failed to render page", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Guide serves the guide itself, inline.
func (h *Handler) Guide(c echo.Context) error {
	a, err := h.source.Fetch(c.Request().Context(), h.assetPath)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			return apperror.ErrNotFound.WithInternal(err)
		}
		return apperror.NewInternal("failed to load guide", err)
	}
	return c.Blob(http.StatusOK, a.ContentType, a.Data)
}
