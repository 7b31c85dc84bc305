//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"egressguard/internal/model"
	"egressguard/pkg/snowflake"
)

// ListQuery describes a paginated, filtered listing of request records.
type ListQuery struct {
	// Filter is one of "all", "blocked", "allowed".
	Filter string
	// Search matches host, example URL or source attribution; SearchBy
	// narrows it to "host", "url" or "source". Empty SearchBy searches all.
	Search   string
	SearchBy string
	Page     int
	PerPage  int
	// OrderBy is one of "request_count", "last_timestamp",
	// "first_timestamp", "host". Order is "ASC" or "DESC".
	OrderBy string
	Order   string
}

// HitUpdate carries the per-attempt mutations applied to an existing record.
type HitUpdate struct {
	SeenAt      time.Time
	ExampleURL  string
	RequestSize int64
	// SourceComponent/SourceDetail fill attribution only when the stored
	// value is still NULL (first writer wins).
	SourceComponent *string
	SourceDetail    *string
	// URLHistory replaces the stored history when non-nil.
	URLHistory []string
	SetHistory bool
}

// RequestRepository is the host policy store: per-(host, method) aggregation
// buckets with block and rate-limit policy.
type RequestRepository interface {
	Create(ctx context.Context, record *model.RequestRecord) error
	GetByID(ctx context.Context, id int64) (*model.RequestRecord, error)
	// FindByHostMethod returns the bucket regardless of its soft-delete
	// flag so a reappearing host resurrects its record.
	FindByHostMethod(ctx context.Context, host, method string) (*model.RequestRecord, error)
	// RecordHit applies an atomic in-place increment plus the given field
	// updates. It also clears the soft-delete flag.
	RecordHit(ctx context.Context, id int64, hit HitUpdate) error

	// HostBlocked reports whether any non-deleted bucket for host is
	// blocked. Block status is host-scoped, not method-scoped.
	HostBlocked(ctx context.Context, host string) (bool, error)
	// HostRateLimitInterval returns the largest configured cooldown
	// interval across the host's non-deleted buckets, 0 when none.
	HostRateLimitInterval(ctx context.Context, host string) (int, error)
	// BlockHost flips is_blocked on every bucket of the host.
	BlockHost(ctx context.Context, host string) error

	SetBlocked(ctx context.Context, id int64, blocked bool) error
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	SetRateLimit(ctx context.Context, id int64, intervalSeconds, calls int) error
	UpdateResponse(ctx context.Context, id int64, code int, elapsedSeconds float64, body *string) error

	List(ctx context.Context, q ListQuery) ([]model.RequestRecord, int, error)
	CountByStatus(ctx context.Context) (model.StatusCounts, error)

	Delete(ctx context.Context, id int64) error
	// SoftDeleteOlderThan marks every live record last seen before cutoff
	// as deleted and returns the number of rows affected.
	SoftDeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// ListExpired returns soft-deleted records last seen before cutoff.
	ListExpired(ctx context.Context, cutoff time.Time) ([]model.RequestRecord, error)
	// ListForClear returns the non-deleted records eligible for a bulk
	// clear; exceptBlocked skips blocked ones.
	ListForClear(ctx context.Context, exceptBlocked bool) ([]model.RequestRecord, error)
	UnblockAll(ctx context.Context) error
}

type requestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a request repository backed by SQLite.
func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

const recordColumns = `id, host, request_method, url_example, urls_log, response_code,
	request_size, response_time, response_body, source_component, source_detail,
	request_count, first_timestamp, last_timestamp, is_blocked, is_deleted,
	rate_limit_interval, rate_limit_calls`

func (r *requestRepository) Create(ctx context.Context, record *model.RequestRecord) error {
	if record.ID == 0 {
		record.ID = snowflake.NextID()
	}
	if record.Method == "" {
		record.Method = "GET"
	}
	if record.RequestCount == 0 {
		record.RequestCount = 1
	}

	var urlsLog interface{}
	if len(record.URLHistory) > 0 {
		urlsLog = joinURLs(record.URLHistory)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO requests (
			id, host, request_method, url_example, urls_log, request_size,
			source_component, source_detail, request_count,
			first_timestamp, last_timestamp, is_blocked, is_deleted,
			rate_limit_interval, rate_limit_calls
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID, record.Host, record.Method, record.ExampleURL, urlsLog,
		record.RequestSize, nullableString(record.SourceComponent),
		nullableString(record.SourceDetail), record.RequestCount,
		formatTime(record.FirstSeenAt), formatTime(record.LastSeenAt),
		boolToInt(record.IsBlocked), boolToInt(record.IsDeleted),
		record.RateLimitInterval, record.RateLimitCalls,
	)
	if err != nil {
		return fmt.Errorf("insert request record: %w", err)
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*model.RequestRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM requests WHERE id = ?`, id)
	return scanRecord(row)
}

func (r *requestRepository) FindByHostMethod(ctx context.Context, host, method string) (*model.RequestRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM requests WHERE host = ? AND request_method = ?`,
		host, method)
	return scanRecord(row)
}

func (r *requestRepository) RecordHit(ctx context.Context, id int64, hit HitUpdate) error {
	query := `UPDATE requests SET
		request_count = request_count + 1,
		last_timestamp = ?,
		url_example = ?,
		request_size = ?,
		is_deleted = 0,
		source_component = COALESCE(source_component, ?),
		source_detail = COALESCE(source_detail, ?)`
	args := []interface{}{
		formatTime(hit.SeenAt), hit.ExampleURL, hit.RequestSize,
		nullableString(hit.SourceComponent), nullableString(hit.SourceDetail),
	}

	if hit.SetHistory {
		query += `, urls_log = ?`
		args = append(args, joinURLs(hit.URLHistory))
	}

	query += ` WHERE id = ?`
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record hit: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *requestRepository) HostBlocked(ctx context.Context, host string) (bool, error) {
	var blocked int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM requests WHERE host = ? AND is_deleted = 0 AND is_blocked = 1
	`, host).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("host blocked lookup: %w", err)
	}
	return blocked > 0, nil
}

func (r *requestRepository) HostRateLimitInterval(ctx context.Context, host string) (int, error) {
	var interval sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(rate_limit_interval) FROM requests WHERE host = ? AND is_deleted = 0
	`, host).Scan(&interval)
	if err != nil {
		return 0, fmt.Errorf("host rate limit lookup: %w", err)
	}
	if !interval.Valid {
		return 0, nil
	}
	return int(interval.Int64), nil
}

func (r *requestRepository) BlockHost(ctx context.Context, host string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE requests SET is_blocked = 1 WHERE host = ?`, host); err != nil {
		return fmt.Errorf("block host: %w", err)
	}
	return nil
}

func (r *requestRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return r.updateByID(ctx, id, `UPDATE requests SET is_blocked = ? WHERE id = ?`, boolToInt(blocked))
}

func (r *requestRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	return r.updateByID(ctx, id, `UPDATE requests SET is_deleted = ? WHERE id = ?`, boolToInt(deleted))
}

func (r *requestRepository) SetRateLimit(ctx context.Context, id int64, intervalSeconds, calls int) error {
	return r.updateByID(ctx, id,
		`UPDATE requests SET rate_limit_interval = ?, rate_limit_calls = ? WHERE id = ?`,
		intervalSeconds, calls)
}

func (r *requestRepository) UpdateResponse(ctx context.Context, id int64, code int, elapsedSeconds float64, body *string) error {
	query := `UPDATE requests SET response_code = ?, response_time = ?`
	args := []interface{}{code, elapsedSeconds}
	if body != nil {
		query += `, response_body = ?`
		args = append(args, *body)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update response: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var orderColumns = map[string]string{
	"request_count":   "request_count",
	"last_timestamp":  "last_timestamp",
	"first_timestamp": "first_timestamp",
	"host":            "host",
}

func (r *requestRepository) List(ctx context.Context, q ListQuery) ([]model.RequestRecord, int, error) {
	where := []string{"is_deleted = 0"}
	var args []interface{}

	switch q.Filter {
	case "blocked":
		where = append(where, "is_blocked = 1")
	case "allowed":
		where = append(where, "is_blocked = 0")
	}

	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		switch q.SearchBy {
		case "host":
			where = append(where, `host LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		case "url":
			where = append(where, `url_example LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		case "source":
			where = append(where, `(source_component LIKE ? ESCAPE '\' OR source_detail LIKE ? ESCAPE '\')`)
			args = append(args, pattern, pattern)
		default:
			where = append(where, `(host LIKE ? ESCAPE '\' OR url_example LIKE ? ESCAPE '\' OR source_component LIKE ? ESCAPE '\' OR source_detail LIKE ? ESCAPE '\')`)
			args = append(args, pattern, pattern, pattern, pattern)
		}
	}

	whereSQL := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	orderBy, ok := orderColumns[q.OrderBy]
	if !ok {
		orderBy = "request_count"
	}
	order := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		order = "ASC"
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	listArgs := append(append([]interface{}{}, args...), perPage, offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM requests WHERE `+whereSQL+
			` ORDER BY `+orderBy+` `+order+` LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var records []model.RequestRecord
	for rows.Next() {
		record, err := scanRecordRows(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}
	return records, total, rows.Err()
}

func (r *requestRepository) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	var counts model.StatusCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(is_blocked), 0),
		       COALESCE(SUM(1 - is_blocked), 0)
		FROM requests WHERE is_deleted = 0
	`).Scan(&counts.Total, &counts.Blocked, &counts.Allowed)
	if err != nil {
		return model.StatusCounts{}, fmt.Errorf("count by status: %w", err)
	}
	return counts, nil
}

func (r *requestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete request record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *requestRepository) SoftDeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE requests SET is_deleted = 1 WHERE is_deleted = 0 AND last_timestamp < ?
	`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("soft delete old records: %w", err)
	}
	return result.RowsAffected()
}

func (r *requestRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]model.RequestRecord, error) {
	return r.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM requests WHERE is_deleted = 1 AND last_timestamp < ?`,
		formatTime(cutoff))
}

func (r *requestRepository) ListForClear(ctx context.Context, exceptBlocked bool) ([]model.RequestRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM requests WHERE is_deleted = 0`
	if exceptBlocked {
		query += ` AND is_blocked = 0`
	}
	return r.queryRecords(ctx, query)
}

func (r *requestRepository) UnblockAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE requests SET is_blocked = 0 WHERE is_deleted = 0`); err != nil {
		return fmt.Errorf("unblock all: %w", err)
	}
	return nil
}

func (r *requestRepository) updateByID(ctx context.Context, id int64, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return fmt.Errorf("update request record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *requestRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]model.RequestRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request records: %w", err)
	}
	defer rows.Close()

	var records []model.RequestRecord
	for rows.Next() {
		record, err := scanRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row *sql.Row) (*model.RequestRecord, error) {
	record, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

func scanRecordRows(rows *sql.Rows) (*model.RequestRecord, error) {
	return scanInto(rows)
}

func scanInto(scanner rowScanner) (*model.RequestRecord, error) {
	var (
		record       model.RequestRecord
		urlsLog      sql.NullString
		responseCode sql.NullInt64
		responseTime sql.NullFloat64
		responseBody sql.NullString
		sourceComp   sql.NullString
		sourceDetail sql.NullString
		firstSeen    string
		lastSeen     string
		isBlocked    int
		isDeleted    int
	)

	err := scanner.Scan(
		&record.ID, &record.Host, &record.Method, &record.ExampleURL,
		&urlsLog, &responseCode, &record.RequestSize, &responseTime,
		&responseBody, &sourceComp, &sourceDetail, &record.RequestCount,
		&firstSeen, &lastSeen, &isBlocked, &isDeleted,
		&record.RateLimitInterval, &record.RateLimitCalls,
	)
	if err != nil {
		return nil, err
	}

	if urlsLog.Valid {
		record.URLHistory = splitURLs(urlsLog.String)
	}
	if responseCode.Valid {
		code := int(responseCode.Int64)
		record.ResponseCode = &code
	}
	if responseTime.Valid {
		rt := responseTime.Float64
		record.ResponseTime = &rt
	}
	if responseBody.Valid {
		body := responseBody.String
		record.ResponseBody = &body
	}
	if sourceComp.Valid {
		record.SourceComponent = &sourceComp.String
	}
	if sourceDetail.Valid {
		record.SourceDetail = &sourceDetail.String
	}
	record.FirstSeenAt, _ = parseTime(firstSeen)
	record.LastSeenAt, _ = parseTime(lastSeen)
	record.IsBlocked = isBlocked != 0
	record.IsDeleted = isDeleted != 0

	return &record, nil
}

func nullableString(value *string) interface{} {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
