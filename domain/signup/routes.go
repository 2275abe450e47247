package signup

import "github.com/labstack/echo/v4"

// RegisterRoutes registers the signup API
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/subscribe")
	g.POST("", h.Subscribe)
	g.GET("/state", h.State)
}
