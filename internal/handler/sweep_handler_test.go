package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"egressguard/internal/handler"
	"egressguard/internal/service"
	"egressguard/internal/service/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSweepHandler_Run_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockRetentionService(ctrl)
	h := handler.NewSweepHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/sweep", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		RunDailySweep(gomock.Any()).
		Return(service.SweepStats{SoftDeleted: 3, HardDeleted: 1}, nil)

	err := h.Run(c)
	require.NoError(t, err)

	var resp service.SweepStats
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, int64(3), resp.SoftDeleted)
	require.Equal(t, int64(1), resp.HardDeleted)
}

func TestSweepHandler_Run_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockRetentionService(ctrl)
	h := handler.NewSweepHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/sweep", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		RunDailySweep(gomock.Any()).
		Return(service.SweepStats{}, errors.New("boom"))

	err := h.Run(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
