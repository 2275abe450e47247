package signup

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ealfred1/ResQ-X-checklist/domain/asset"
	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/apperror"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

// SessionCookie names the cookie carrying the visitor session id.
const SessionCookie = "resqx_sid"

// Handler serves the signup endpoints.
type Handler struct {
	sessions *Sessions
	secure   bool
	log      *slog.Logger
}

func NewHandler(sessions *Sessions, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		secure:   cfg.Signup.CookieSecure,
		log:      log.With(logger.Scope("signup.http")),
	}
}

// SubscribeRequest is the body of POST /api/subscribe.
type SubscribeRequest struct {
	Email string `json:"email" form:"email"`
}

// Subscribe registers the visitor and answers with the guide as an attachment.
//
// JSON callers get 400 for bad input, 409 while busy and 502 with the
// generic message on any failure. Plain form posts are redirected back to
// the page, which renders the visitor's state.
func (h *Handler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("Request body must carry an email").WithInternal(err)
	}

	ctrl := h.controller(c)
	email, err := CheckEmail(req.Email)
	if err != nil {
		ctrl.RejectInput(req.Email, err.Error())
		if isFormPost(c) {
			return c.Redirect(http.StatusSeeOther, "/#signup")
		}
		return apperror.NewValidation(err.Error())
	}

	saver := asset.NewAttachmentSaver(c.Response())
	res, err := ctrl.Submit(c.Request().Context(), email, saver)
	if err != nil {
		if isFormPost(c) {
			return c.Redirect(http.StatusSeeOther, "/#signup")
		}
		if errors.Is(err, ErrBusy) || errors.Is(err, ErrSuccessShowing) {
			return apperror.ErrBusy.WithInternal(err)
		}
		return apperror.ErrInternal.WithInternal(err)
	}

	if !res.OK() {
		if saver.Written() {
			// the download had started; nothing more can be sent
			return nil
		}
		if isFormPost(c) {
			return c.Redirect(http.StatusSeeOther, "/#signup")
		}
		return apperror.ErrSignupFailed.WithInternal(res.Err)
	}
	return nil
}

// State returns the visitor's signup card state.
func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.StateFor(c))
}

// StateFor returns the state of the requesting visitor without creating a session.
func (h *Handler) StateFor(c echo.Context) State {
	if id, ok := sessionID(c); ok {
		if ctrl, ok := h.sessions.Peek(id); ok {
			return ctrl.State()
		}
	}
	return State{Phase: PhaseIdle}
}

// Ensure returns the visitor's state like StateFor and issues a session
// cookie when the request has none. Pages showing the signup form call it so
// that every submission from that page, including a double-click, reaches
// the same Controller. No Controller is created until the first submission.
func (h *Handler) Ensure(c echo.Context) State {
	if _, ok := sessionID(c); !ok {
		h.issue(c)
		return State{Phase: PhaseIdle}
	}
	return h.StateFor(c)
}

// controller returns the requesting visitor's Controller, issuing a session
// cookie when the request has none.
func (h *Handler) controller(c echo.Context) *Controller {
	id, ok := sessionID(c)
	if !ok {
		id = h.issue(c)
	}
	return h.sessions.Get(id)
}

func (h *Handler) issue(c echo.Context) string {
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func sessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", false
	}
	return cookie.Value, true
}

func isFormPost(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}
