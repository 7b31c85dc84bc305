package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"egressguard/internal/handler"
	"egressguard/internal/service"

	"github.com/stretchr/testify/require"
)

func TestWriteServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected string
	}{
		{name: "invalid", err: service.ErrInvalid, status: http.StatusBadRequest, expected: "invalid request"},
		{name: "not_found", err: service.ErrNotFound, status: http.StatusNotFound, expected: "resource not found"},
		{name: "default", err: errors.New("boom"), status: http.StatusInternalServerError, expected: "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			req := newJSONRequest(http.MethodGet, "/", nil)
			c, rec := newTestContext(e, req)

			err := handler.WriteServiceError(c, tc.err)
			require.NoError(t, err)

			var resp map[string]string
			assertJSONResponse(t, rec, tc.status, &resp)
			require.Equal(t, tc.expected, resp["error"])
		})
	}
}
