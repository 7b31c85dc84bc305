package scheduler_test

import (
	"testing"
	"time"

	"egressguard/internal/scheduler"
	"egressguard/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"egressguard/internal/service/mock"
)

func TestScheduler_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRetention := mock.NewMockRetentionService(ctrl)
	mockRetention.EXPECT().RunDailySweep(gomock.Any()).Return(service.SweepStats{}, nil).AnyTimes()

	// Every-second schedule so the job actually fires during the test.
	s := scheduler.New(mockRetention, "@every 1s")
	require.NoError(t, s.Start())

	time.Sleep(1500 * time.Millisecond)

	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := scheduler.New(mock.NewMockRetentionService(ctrl), "not a schedule")
	require.Error(t, s.Start())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := scheduler.New(mock.NewMockRetentionService(ctrl), "@daily")
	s.Stop()
}
