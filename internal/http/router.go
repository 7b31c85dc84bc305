package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"egressguard/internal/handler"
)

// NewRouter assembles the admin API. When authToken is non-empty every
// /api route requires a matching bearer token; /healthz stays public.
func NewRouter(
	requestHandler *handler.RequestHandler,
	sweepHandler *handler.SweepHandler,
	authToken string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	if authToken != "" {
		api.Use(StaticTokenMiddleware(authToken))
	}

	requestHandler.RegisterRoutes(api)
	sweepHandler.RegisterRoutes(api)

	return e
}
