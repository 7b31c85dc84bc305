package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS requests (
  id INTEGER PRIMARY KEY,
  host TEXT NOT NULL,
  request_method TEXT NOT NULL DEFAULT 'GET',
  url_example TEXT NOT NULL,
  urls_log TEXT,
  response_code INTEGER,
  request_size INTEGER NOT NULL DEFAULT 0,
  response_time REAL,
  response_body TEXT,
  source_component TEXT,
  source_detail TEXT,
  request_count INTEGER NOT NULL DEFAULT 1,
  first_timestamp TEXT NOT NULL,
  last_timestamp TEXT NOT NULL,
  is_blocked INTEGER NOT NULL DEFAULT 0,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  rate_limit_interval INTEGER NOT NULL DEFAULT 0,
  UNIQUE (host, request_method)
);

CREATE INDEX IF NOT EXISTS idx_requests_host ON requests(host);
CREATE INDEX IF NOT EXISTS idx_requests_is_blocked ON requests(is_blocked);
CREATE INDEX IF NOT EXISTS idx_requests_is_deleted ON requests(is_deleted);
CREATE INDEX IF NOT EXISTS idx_requests_last_timestamp ON requests(last_timestamp);
CREATE INDEX IF NOT EXISTS idx_requests_request_count ON requests(request_count);

CREATE TABLE IF NOT EXISTS deleted_requests (
  id INTEGER PRIMARY KEY,
  host TEXT NOT NULL,
  url_example TEXT,
  was_blocked INTEGER NOT NULL DEFAULT 0,
  deleted_timestamp TEXT NOT NULL,
  deleted_by TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_deleted_requests_host ON deleted_requests(host);
CREATE INDEX IF NOT EXISTS idx_deleted_requests_timestamp ON deleted_requests(deleted_timestamp);
`

// Migrate applies the base schema and any incremental migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: add rate_limit_calls column if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('requests') WHERE name = 'rate_limit_calls'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check rate_limit_calls column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE requests ADD COLUMN rate_limit_calls INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add rate_limit_calls column: %w", err)
		}
	}

	return nil
}
