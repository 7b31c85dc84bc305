package config_test

import (
	"os"
	"testing"

	"egressguard/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	os.Setenv("EGRESSGUARD_ADDR", ":9999")
	os.Setenv("EGRESSGUARD_DATA_DIR", "/tmp/egressguard")
	os.Setenv("EGRESSGUARD_LOG_LEVEL", "debug")
	os.Setenv("EGRESSGUARD_SELF_HOST", "app.internal")
	os.Setenv("EGRESSGUARD_RETENTION_DAYS", "7")
	os.Setenv("EGRESSGUARD_TRACK_ALL_URLS", "true")
	os.Setenv("EGRESSGUARD_MAX_RESPONSE_BODY_LENGTH", "0")
	defer func() {
		os.Unsetenv("EGRESSGUARD_ADDR")
		os.Unsetenv("EGRESSGUARD_DATA_DIR")
		os.Unsetenv("EGRESSGUARD_LOG_LEVEL")
		os.Unsetenv("EGRESSGUARD_SELF_HOST")
		os.Unsetenv("EGRESSGUARD_RETENTION_DAYS")
		os.Unsetenv("EGRESSGUARD_TRACK_ALL_URLS")
		os.Unsetenv("EGRESSGUARD_MAX_RESPONSE_BODY_LENGTH")
	}()

	cfg := config.Load()
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "/tmp/egressguard", cfg.DataDir)
	require.Contains(t, cfg.DBPath, "/tmp/egressguard/egressguard.db")
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "app.internal", cfg.SelfHost)
	require.Equal(t, 7, cfg.RetentionDays)
	require.True(t, cfg.TrackAllURLs)
	require.Equal(t, 0, cfg.MaxResponseBodyLength)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("EGRESSGUARD_ADDR")
	os.Unsetenv("EGRESSGUARD_DATA_DIR")
	os.Unsetenv("EGRESSGUARD_DB_PATH")
	os.Unsetenv("EGRESSGUARD_LOG_LEVEL")
	os.Unsetenv("EGRESSGUARD_SWEEP_SCHEDULE")

	cfg := config.Load()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "data", cfg.DataDir)
	require.Contains(t, cfg.DBPath, "egressguard.db")
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "@daily", cfg.SweepSchedule)
	require.Equal(t, 30, cfg.RetentionDays)
	require.True(t, cfg.AutoClean)
	require.False(t, cfg.TrackAllURLs)
	require.Equal(t, 10, cfg.MaxURLsLogged)
	require.True(t, cfg.TrackResponse)
	require.Equal(t, 65536, cfg.MaxResponseBodyLength)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	os.Setenv("EGRESSGUARD_RETENTION_DAYS", "not-a-number")
	os.Setenv("EGRESSGUARD_AUTO_CLEAN", "maybe")
	os.Setenv("EGRESSGUARD_SWEEP_SCHEDULE", "not a cron expr")
	os.Setenv("EGRESSGUARD_MAX_URLS_LOGGED", "-3")
	defer func() {
		os.Unsetenv("EGRESSGUARD_RETENTION_DAYS")
		os.Unsetenv("EGRESSGUARD_AUTO_CLEAN")
		os.Unsetenv("EGRESSGUARD_SWEEP_SCHEDULE")
		os.Unsetenv("EGRESSGUARD_MAX_URLS_LOGGED")
	}()

	cfg := config.Load()
	require.Equal(t, 30, cfg.RetentionDays)
	require.True(t, cfg.AutoClean)
	require.Equal(t, "@daily", cfg.SweepSchedule)
	require.Equal(t, 10, cfg.MaxURLsLogged, "a non-positive cap is unusable and falls back to the default")
}
