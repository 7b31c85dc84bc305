package handler_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"egressguard/internal/handler"
)

func assertRoute(t *testing.T, routes []*echo.Route, method, path string) {
	t.Helper()
	for _, r := range routes {
		if r.Method == method && r.Path == path {
			return
		}
	}
	t.Fatalf("route not found: %s %s", method, path)
}

func TestHandler_RegisterRoutes(t *testing.T) {
	e := newTestEcho()
	g := e.Group("")

	handler.NewRequestHandler(nil).RegisterRoutes(g)
	handler.NewSweepHandler(nil).RegisterRoutes(g)

	routes := e.Routes()

	assertRoute(t, routes, http.MethodGet, "/requests")
	assertRoute(t, routes, http.MethodGet, "/requests/counts")
	assertRoute(t, routes, http.MethodGet, "/requests/:id")
	assertRoute(t, routes, http.MethodPost, "/requests/:id/toggle-block")
	assertRoute(t, routes, http.MethodPut, "/requests/:id/rate-limit")
	assertRoute(t, routes, http.MethodPost, "/requests/bulk")
	assertRoute(t, routes, http.MethodPost, "/requests/clear")
	assertRoute(t, routes, http.MethodPost, "/sweep")
}
