//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"egressguard/internal/model"
	"egressguard/internal/repository"
	"egressguard/pkg/logger"
)

// Bulk actions accepted by BulkAction.
const (
	BulkBlock   = "block"
	BulkUnblock = "unblock"
	BulkDelete  = "delete"
	BulkRestore = "restore"
)

// Clear modes accepted by ClearLogs.
const (
	ClearAll           = "all"
	ClearExceptBlocked = "except_blocked"
)

// AdminService is the command surface consumed by the admin API. Callers
// are responsible for authorization.
type AdminService interface {
	ToggleBlock(ctx context.Context, id int64) (bool, model.StatusCounts, error)
	BulkAction(ctx context.Context, ids []int64, action, actor string) (model.StatusCounts, error)
	SetRateLimit(ctx context.Context, id int64, intervalSeconds, calls int) error
	ClearLogs(ctx context.Context, mode, actor string) (model.StatusCounts, error)

	GetDetail(ctx context.Context, id int64) (*model.RequestRecord, error)
	ListRequests(ctx context.Context, q repository.ListQuery) ([]model.RequestRecord, int, error)
	CountByStatus(ctx context.Context) (model.StatusCounts, error)
}

type adminService struct {
	repo    repository.RequestRepository
	deleted repository.DeletedRequestRepository
	limiter *RateLimiter
}

// NewAdminService creates the admin command service.
func NewAdminService(repo repository.RequestRepository, deleted repository.DeletedRequestRepository, limiter *RateLimiter) AdminService {
	return &adminService{repo: repo, deleted: deleted, limiter: limiter}
}

func (s *adminService) ToggleBlock(ctx context.Context, id int64) (bool, model.StatusCounts, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, model.StatusCounts{}, err
	}
	if record == nil || record.IsDeleted {
		return false, model.StatusCounts{}, ErrNotFound
	}

	blocked := !record.IsBlocked
	if err := s.repo.SetBlocked(ctx, id, blocked); err != nil {
		return false, model.StatusCounts{}, err
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return blocked, model.StatusCounts{}, err
	}
	return blocked, counts, nil
}

func (s *adminService) BulkAction(ctx context.Context, ids []int64, action, actor string) (model.StatusCounts, error) {
	if len(ids) == 0 {
		return model.StatusCounts{}, ErrInvalid
	}

	switch action {
	case BulkBlock, BulkUnblock:
		blocked := action == BulkBlock
		for _, id := range ids {
			if err := s.repo.SetBlocked(ctx, id, blocked); err != nil && !errors.Is(err, sql.ErrNoRows) {
				return model.StatusCounts{}, err
			}
		}
	case BulkRestore:
		for _, id := range ids {
			if err := s.repo.SetDeleted(ctx, id, false); err != nil && !errors.Is(err, sql.ErrNoRows) {
				return model.StatusCounts{}, err
			}
		}
	case BulkDelete:
		for _, id := range ids {
			if err := s.hardDelete(ctx, id, actor); err != nil {
				return model.StatusCounts{}, err
			}
		}
	default:
		return model.StatusCounts{}, ErrInvalid
	}

	return s.repo.CountByStatus(ctx)
}

// hardDelete clears any block and rate limit state on the record, writes
// the audit entry and removes the row. Missing ids are skipped.
func (s *adminService) hardDelete(ctx context.Context, id int64, actor string) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	if err := s.repo.SetRateLimit(ctx, id, 0, 0); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err := s.repo.SetBlocked(ctx, id, false); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	s.limiter.Forget(record.Host)

	if err := s.deleted.Insert(ctx, &model.DeletedRequest{
		Host:       record.Host,
		ExampleURL: record.ExampleURL,
		WasBlocked: record.IsBlocked,
		DeletedAt:  time.Now().UTC(),
		DeletedBy:  actor,
	}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return nil
}

func (s *adminService) SetRateLimit(ctx context.Context, id int64, intervalSeconds, calls int) error {
	if intervalSeconds < 0 {
		intervalSeconds = 0
	}
	if calls < 0 {
		calls = 0
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}

	if err := s.repo.SetRateLimit(ctx, id, intervalSeconds, calls); err != nil {
		return err
	}

	// Reconfiguring drops the live window so the new interval takes effect
	// immediately.
	s.limiter.Forget(record.Host)
	return nil
}

func (s *adminService) ClearLogs(ctx context.Context, mode, actor string) (model.StatusCounts, error) {
	var exceptBlocked bool
	switch mode {
	case ClearAll:
		exceptBlocked = false
	case ClearExceptBlocked:
		exceptBlocked = true
	default:
		return model.StatusCounts{}, ErrInvalid
	}

	// Snapshot before force-unblocking so audit entries keep the original
	// blocked state.
	records, err := s.repo.ListForClear(ctx, exceptBlocked)
	if err != nil {
		return model.StatusCounts{}, err
	}

	if !exceptBlocked {
		if err := s.repo.UnblockAll(ctx); err != nil {
			return model.StatusCounts{}, err
		}
	}

	for _, record := range records {
		if err := s.deleted.Insert(ctx, &model.DeletedRequest{
			Host:       record.Host,
			ExampleURL: record.ExampleURL,
			WasBlocked: record.IsBlocked,
			DeletedAt:  time.Now().UTC(),
			DeletedBy:  actor,
		}); err != nil {
			return model.StatusCounts{}, err
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return model.StatusCounts{}, err
		}
		s.limiter.Forget(record.Host)
	}

	logger.Info("request logs cleared", "mode", mode, "removed", len(records), "actor", actor)
	return s.repo.CountByStatus(ctx)
}

func (s *adminService) GetDetail(ctx context.Context, id int64) (*model.RequestRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil || record.IsDeleted {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *adminService) ListRequests(ctx context.Context, q repository.ListQuery) ([]model.RequestRecord, int, error) {
	switch q.Filter {
	case "", "all", "blocked", "allowed":
	default:
		return nil, 0, ErrInvalid
	}
	return s.repo.List(ctx, q)
}

func (s *adminService) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}
