//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"egressguard/internal/config"
	"egressguard/internal/model"
	"egressguard/internal/repository"
	"egressguard/pkg/logger"
)

// sweepActor labels audit entries written by the automatic sweep.
const sweepActor = "auto-clean"

// SweepStats summarizes one retention sweep run.
type SweepStats struct {
	SoftDeleted int64 `json:"softDeleted"`
	HardDeleted int64 `json:"hardDeleted"`
}

// RetentionService ages out stale request records in two phases: records
// unseen for RetentionDays are soft-deleted; records that stay soft-deleted
// past the same age are audited and removed for good. Both phases are
// idempotent, so the sweep may run any number of times per day.
type RetentionService interface {
	RunDailySweep(ctx context.Context) (SweepStats, error)
}

type retentionService struct {
	repo    repository.RequestRepository
	deleted repository.DeletedRequestRepository
	limiter *RateLimiter
	cfg     config.Config
}

// NewRetentionService creates the retention sweeper.
func NewRetentionService(repo repository.RequestRepository, deleted repository.DeletedRequestRepository, limiter *RateLimiter, cfg config.Config) RetentionService {
	return &retentionService{repo: repo, deleted: deleted, limiter: limiter, cfg: cfg}
}

func (s *retentionService) RunDailySweep(ctx context.Context) (SweepStats, error) {
	if !s.cfg.AutoClean || s.cfg.RetentionDays <= 0 {
		return SweepStats{}, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.RetentionDays)

	soft, err := s.repo.SoftDeleteOlderThan(ctx, cutoff)
	if err != nil {
		return SweepStats{}, err
	}

	// Hard phase: age is measured from last activity, not from soft-delete
	// time. Records soft-deleted earlier by an admin keep their limbo until
	// they cross the cutoff; records past the cutoff go in one sweep.
	expired, err := s.repo.ListExpired(ctx, cutoff)
	if err != nil {
		return SweepStats{SoftDeleted: soft}, err
	}

	var hard int64
	for _, record := range expired {
		if err := s.deleted.Insert(ctx, &model.DeletedRequest{
			Host:       record.Host,
			ExampleURL: record.ExampleURL,
			WasBlocked: record.IsBlocked,
			DeletedAt:  time.Now().UTC(),
			DeletedBy:  sweepActor,
		}); err != nil {
			return SweepStats{SoftDeleted: soft, HardDeleted: hard}, err
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return SweepStats{SoftDeleted: soft, HardDeleted: hard}, err
		}
		s.limiter.Forget(record.Host)
		hard++
	}

	if soft > 0 || hard > 0 {
		logger.Info("retention sweep completed", "softDeleted", soft, "hardDeleted", hard, "retentionDays", s.cfg.RetentionDays)
	}
	return SweepStats{SoftDeleted: soft, HardDeleted: hard}, nil
}
