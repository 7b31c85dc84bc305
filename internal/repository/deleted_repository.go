//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"egressguard/internal/model"
	"egressguard/pkg/snowflake"
)

// DeletedRequestRepository is the append-only audit trail of hard-deleted
// request records. Rows are never mutated after insertion.
type DeletedRequestRepository interface {
	Insert(ctx context.Context, entry *model.DeletedRequest) error
	List(ctx context.Context, limit int) ([]model.DeletedRequest, error)
	CountByHost(ctx context.Context, host string) (int, error)
}

type deletedRequestRepository struct {
	db *sql.DB
}

// NewDeletedRequestRepository creates an audit repository backed by SQLite.
func NewDeletedRequestRepository(db *sql.DB) DeletedRequestRepository {
	return &deletedRequestRepository{db: db}
}

func (r *deletedRequestRepository) Insert(ctx context.Context, entry *model.DeletedRequest) error {
	if entry.ID == 0 {
		entry.ID = snowflake.NextID()
	}
	if entry.DeletedAt.IsZero() {
		entry.DeletedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deleted_requests (id, host, url_example, was_blocked, deleted_timestamp, deleted_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Host, entry.ExampleURL, boolToInt(entry.WasBlocked),
		formatTime(entry.DeletedAt), entry.DeletedBy)
	if err != nil {
		return fmt.Errorf("insert deleted request: %w", err)
	}
	return nil
}

func (r *deletedRequestRepository) List(ctx context.Context, limit int) ([]model.DeletedRequest, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, host, url_example, was_blocked, deleted_timestamp, deleted_by
		FROM deleted_requests ORDER BY deleted_timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list deleted requests: %w", err)
	}
	defer rows.Close()

	var entries []model.DeletedRequest
	for rows.Next() {
		var (
			entry      model.DeletedRequest
			urlExample sql.NullString
			wasBlocked int
			deletedAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.Host, &urlExample, &wasBlocked, &deletedAt, &entry.DeletedBy); err != nil {
			return nil, err
		}
		entry.ExampleURL = urlExample.String
		entry.WasBlocked = wasBlocked != 0
		entry.DeletedAt, _ = parseTime(deletedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *deletedRequestRepository) CountByHost(ctx context.Context, host string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deleted_requests WHERE host = ?`, host).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count deleted requests: %w", err)
	}
	return count, nil
}
