package landing

import (
	"io/fs"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the page, the guide and the static files
func RegisterRoutes(e *echo.Echo, h *Handler, static fs.FS) {
	e.GET("/", h.Page)
	e.GET("/guide.pdf", h.Guide)
	e.StaticFS("/static", static)
}
