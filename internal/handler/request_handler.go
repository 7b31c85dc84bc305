package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"egressguard/internal/model"
	"egressguard/internal/repository"
	"egressguard/internal/service"
)

// actorHeader carries the operator label recorded in audit entries.
// Authorization itself is the deployment's concern.
const actorHeader = "X-Actor"

type RequestHandler struct {
	service service.AdminService
}

type rateLimitRequest struct {
	IntervalSeconds int `json:"intervalSeconds"`
	Calls           int `json:"calls"`
}

type bulkActionRequest struct {
	IDs    []int64 `json:"ids"`
	Action string  `json:"action"`
}

type clearLogsRequest struct {
	Mode string `json:"mode"`
}

type requestResponse struct {
	ID              int64    `json:"id"`
	Host            string   `json:"host"`
	Method          string   `json:"method"`
	ExampleURL      string   `json:"exampleUrl"`
	URLHistory      []string `json:"urlHistory,omitempty"`
	ResponseCode    *int     `json:"responseCode,omitempty"`
	RequestSize     int64    `json:"requestSize"`
	ResponseTime    *float64 `json:"responseTime,omitempty"`
	ResponseBody    *string  `json:"responseBody,omitempty"`
	SourceComponent *string  `json:"sourceComponent,omitempty"`
	SourceDetail    *string  `json:"sourceDetail,omitempty"`
	RequestCount      int64  `json:"requestCount"`
	FirstSeenAt       string `json:"firstSeenAt"`
	LastSeenAt        string `json:"lastSeenAt"`
	IsBlocked         bool   `json:"isBlocked"`
	RateLimitInterval int    `json:"rateLimitInterval"`
	RateLimitCalls    int    `json:"rateLimitCalls"`
}

type requestListResponse struct {
	Items   []requestResponse `json:"items"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
}

type toggleBlockResponse struct {
	ID      int64              `json:"id"`
	Blocked bool               `json:"blocked"`
	Counts  model.StatusCounts `json:"counts"`
}

type bulkActionResponse struct {
	Counts model.StatusCounts `json:"counts"`
}

func NewRequestHandler(service service.AdminService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/requests", h.List)
	g.GET("/requests/counts", h.Counts)
	g.GET("/requests/:id", h.Get)
	g.POST("/requests/:id/toggle-block", h.ToggleBlock)
	g.PUT("/requests/:id/rate-limit", h.SetRateLimit)
	g.POST("/requests/bulk", h.BulkAction)
	g.POST("/requests/clear", h.ClearLogs)
}

func (h *RequestHandler) List(c echo.Context) error {
	q := repository.ListQuery{
		Filter:   c.QueryParam("filter"),
		Search:   c.QueryParam("search"),
		SearchBy: c.QueryParam("searchBy"),
		Page:     parseIntQuery(c, "page", 1),
		PerPage:  parseIntQuery(c, "perPage", 25),
		OrderBy:  c.QueryParam("orderBy"),
		Order:    c.QueryParam("order"),
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 25
	}

	records, total, err := h.service.ListRequests(c.Request().Context(), q)
	if err != nil {
		return writeServiceError(c, err)
	}

	items := make([]requestResponse, 0, len(records))
	for _, record := range records {
		items = append(items, toRequestResponse(&record))
	}
	return c.JSON(http.StatusOK, requestListResponse{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

func (h *RequestHandler) Counts(c echo.Context) error {
	counts, err := h.service.CountByStatus(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

func (h *RequestHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	record, err := h.service.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(record))
}

func (h *RequestHandler) ToggleBlock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	blocked, counts, err := h.service.ToggleBlock(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toggleBlockResponse{ID: id, Blocked: blocked, Counts: counts})
}

func (h *RequestHandler) SetRateLimit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	var req rateLimitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.SetRateLimit(c.Request().Context(), id, req.IntervalSeconds, req.Calls); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RequestHandler) BulkAction(c echo.Context) error {
	var req bulkActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	counts, err := h.service.BulkAction(c.Request().Context(), req.IDs, req.Action, actorFrom(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, bulkActionResponse{Counts: counts})
}

func (h *RequestHandler) ClearLogs(c echo.Context) error {
	var req clearLogsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	counts, err := h.service.ClearLogs(c.Request().Context(), req.Mode, actorFrom(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, bulkActionResponse{Counts: counts})
}

func actorFrom(c echo.Context) string {
	if actor := c.Request().Header.Get(actorHeader); actor != "" {
		return actor
	}
	return "admin"
}

func toRequestResponse(record *model.RequestRecord) requestResponse {
	return requestResponse{
		ID:                record.ID,
		Host:              record.Host,
		Method:            record.Method,
		ExampleURL:        record.ExampleURL,
		URLHistory:        record.URLHistory,
		ResponseCode:      record.ResponseCode,
		RequestSize:       record.RequestSize,
		ResponseTime:      record.ResponseTime,
		ResponseBody:      record.ResponseBody,
		SourceComponent:   record.SourceComponent,
		SourceDetail:      record.SourceDetail,
		RequestCount:      record.RequestCount,
		FirstSeenAt:       record.FirstSeenAt.UTC().Format(time.RFC3339),
		LastSeenAt:        record.LastSeenAt.UTC().Format(time.RFC3339),
		IsBlocked:         record.IsBlocked,
		RateLimitInterval: record.RateLimitInterval,
		RateLimitCalls:    record.RateLimitCalls,
	}
}
