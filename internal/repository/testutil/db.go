// Package testutil provides shared helpers for repository tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"egressguard/internal/db"
	"egressguard/internal/model"
	"egressguard/pkg/snowflake"

	_ "modernc.org/sqlite"
)

var snowflakeOnce sync.Once

// NewTestDB creates a migrated in-memory SQLite database. Shared-cache mode
// is required so concurrent connections in a single test see the same data;
// a unique name per test avoids cross-test interference.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SeedRequest inserts a request record row and returns its ID. Zero-value
// fields get sensible defaults (method GET, count 1, timestamps now).
func SeedRequest(t *testing.T, database *sql.DB, record model.RequestRecord) int64 {
	t.Helper()

	if record.ID == 0 {
		record.ID = snowflake.NextID()
	}
	if record.Method == "" {
		record.Method = "GET"
	}
	if record.RequestCount == 0 {
		record.RequestCount = 1
	}
	now := time.Now().UTC()
	if record.FirstSeenAt.IsZero() {
		record.FirstSeenAt = now
	}
	if record.LastSeenAt.IsZero() {
		record.LastSeenAt = now
	}

	var sourceComponent, sourceDetail interface{}
	if record.SourceComponent != nil {
		sourceComponent = *record.SourceComponent
	}
	if record.SourceDetail != nil {
		sourceDetail = *record.SourceDetail
	}

	_, err := database.ExecContext(
		context.Background(),
		`INSERT INTO requests (id, host, request_method, url_example, request_size,
		   source_component, source_detail, request_count, first_timestamp, last_timestamp,
		   is_blocked, is_deleted, rate_limit_interval, rate_limit_calls)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Host, record.Method, record.ExampleURL, record.RequestSize,
		sourceComponent, sourceDetail, record.RequestCount,
		record.FirstSeenAt.UTC().Format(time.RFC3339Nano),
		record.LastSeenAt.UTC().Format(time.RFC3339Nano),
		boolToInt(record.IsBlocked), boolToInt(record.IsDeleted),
		record.RateLimitInterval, record.RateLimitCalls,
	)
	if err != nil {
		t.Fatalf("failed to seed request record: %v", err)
	}

	return record.ID
}
