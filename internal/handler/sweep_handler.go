package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"egressguard/internal/service"
)

// SweepHandler exposes a manual trigger for the retention sweep. The
// scheduler runs the same operation on its own cadence.
type SweepHandler struct {
	service service.RetentionService
}

func NewSweepHandler(service service.RetentionService) *SweepHandler {
	return &SweepHandler{service: service}
}

func (h *SweepHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sweep", h.Run)
}

func (h *SweepHandler) Run(c echo.Context) error {
	stats, err := h.service.RunDailySweep(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
