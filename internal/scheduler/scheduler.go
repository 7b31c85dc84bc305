// Package scheduler runs the retention sweep on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"egressguard/internal/service"
	"egressguard/pkg/logger"
)

// sweepTimeout bounds one sweep run; a stuck database must not pile up
// overlapping sweeps.
const sweepTimeout = time.Hour

type Scheduler struct {
	retention service.RetentionService
	schedule  string
	cron      *cron.Cron
}

// New creates a scheduler. The schedule uses standard cron syntax and
// accepts descriptors like @daily.
func New(retention service.RetentionService, schedule string) *Scheduler {
	return &Scheduler{retention: retention, schedule: schedule}
}

func (s *Scheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.retention.RunDailySweep(ctx); err != nil {
		logger.Error("scheduled retention sweep", "error", err)
	}
}
