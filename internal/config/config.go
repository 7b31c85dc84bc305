// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/robfig/cron/v3"
)

// Config is the explicit configuration surface of the service. It is built
// once at startup and passed into constructors; nothing reads the
// environment after Load returns.
type Config struct {
	Addr     string
	DataDir  string
	DBPath   string
	LogLevel string

	// SelfHost is the hostname this application serves under. Outbound
	// calls to it (and to localhost/127.0.0.1) are never policed or logged.
	SelfHost string

	// AuthToken guards the admin API when set; empty leaves it open and
	// authorization up to the deployment.
	AuthToken string

	// SweepSchedule is a cron expression for the retention sweep.
	SweepSchedule string

	RetentionDays int
	AutoClean     bool

	TrackAllURLs  bool
	MaxURLsLogged int

	TrackResponse bool
	// MaxResponseBodyLength caps stored response bodies in bytes.
	// 0 disables body capture entirely.
	MaxResponseBodyLength int
}

// Load reads configuration from EGRESSGUARD_* environment variables,
// falling back to defaults for anything unset or unparseable.
func Load() Config {
	dataDir := envString("EGRESSGUARD_DATA_DIR", "data")
	dbPath := os.Getenv("EGRESSGUARD_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "egressguard.db")
	}

	schedule := envString("EGRESSGUARD_SWEEP_SCHEDULE", "@daily")
	if _, err := cron.ParseStandard(schedule); err != nil {
		schedule = "@daily"
	}

	maxURLs := envInt("EGRESSGUARD_MAX_URLS_LOGGED", 10)
	if maxURLs <= 0 {
		maxURLs = 10
	}

	return Config{
		Addr:     envString("EGRESSGUARD_ADDR", ":8080"),
		DataDir:  dataDir,
		DBPath:   filepath.Clean(dbPath),
		LogLevel: envString("EGRESSGUARD_LOG_LEVEL", "info"),

		SelfHost:      os.Getenv("EGRESSGUARD_SELF_HOST"),
		AuthToken:     os.Getenv("EGRESSGUARD_AUTH_TOKEN"),
		SweepSchedule: schedule,

		RetentionDays: envInt("EGRESSGUARD_RETENTION_DAYS", 30),
		AutoClean:     envBool("EGRESSGUARD_AUTO_CLEAN", true),

		TrackAllURLs:  envBool("EGRESSGUARD_TRACK_ALL_URLS", false),
		MaxURLsLogged: maxURLs,

		TrackResponse:         envBool("EGRESSGUARD_TRACK_RESPONSE", true),
		MaxResponseBodyLength: envInt("EGRESSGUARD_MAX_RESPONSE_BODY_LENGTH", 65536),
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
