package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"egressguard/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps service errors to HTTP responses.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
