package egress_test

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"egressguard/internal/db"
	"egressguard/internal/repository"
	"egressguard/pkg/egress"

	"github.com/stretchr/testify/require"
)

// stubRoundTripper fakes the network so tests can use real external
// hostnames; local addresses are exempt from policing.
type stubRoundTripper struct {
	status int
	body   string
}

func (s stubRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func openGuard(t *testing.T, opts egress.Options) (*egress.Guard, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "egress.db")
	guard, err := egress.Open(dbPath, opts)
	require.NoError(t, err)
	t.Cleanup(func() { guard.Close() })
	return guard, dbPath
}

func TestGuard_AllowedCallRecorded(t *testing.T) {
	guard, dbPath := openGuard(t, egress.Options{TrackResponse: true, MaxResponseBodyLength: 1024})

	transport := guard.Transport(stubRoundTripper{status: http.StatusOK, body: "ok"},
		egress.Attribution{Component: "sync", Detail: "inventory-sync"})
	client := &http.Client{Transport: transport}

	resp, err := client.Get("https://api.example.com/v1/items")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "ok", string(body))

	transport.Flush()

	// A second connection to the same store sees the aggregated record.
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	record, err := repository.NewRequestRepository(database).
		FindByHostMethod(context.Background(), "api.example.com", "GET")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, int64(1), record.RequestCount)
	require.NotNil(t, record.SourceComponent)
	require.Equal(t, "sync", *record.SourceComponent)
	require.NotNil(t, record.ResponseCode)
	require.Equal(t, http.StatusOK, *record.ResponseCode)
}

func TestGuard_BlockedHostFailsBeforeDispatch(t *testing.T) {
	guard, dbPath := openGuard(t, egress.Options{})

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	repo := repository.NewRequestRepository(database)

	transport := guard.Transport(stubRoundTripper{status: http.StatusOK, body: "ok"}, egress.Attribution{})
	client := &http.Client{Transport: transport}

	resp, err := client.Get("https://bad.example.com/x")
	require.NoError(t, err, "an unknown host is allowed")
	resp.Body.Close()
	transport.Flush()

	record, err := repo.FindByHostMethod(context.Background(), "bad.example.com", "GET")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NoError(t, repo.SetBlocked(context.Background(), record.ID, true))

	_, err = client.Get("https://bad.example.com/x")
	require.ErrorIs(t, err, egress.ErrHostBlocked)
}

func TestGuard_RateLimitEscalatesToBlock(t *testing.T) {
	guard, dbPath := openGuard(t, egress.Options{})

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	repo := repository.NewRequestRepository(database)

	transport := guard.Transport(stubRoundTripper{status: http.StatusOK, body: "ok"}, egress.Attribution{})
	client := &http.Client{Transport: transport}

	resp, err := client.Get("https://api.example.com/v1")
	require.NoError(t, err)
	resp.Body.Close()
	transport.Flush()

	record, err := repo.FindByHostMethod(context.Background(), "api.example.com", "GET")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NoError(t, repo.SetRateLimit(context.Background(), record.ID, 3600, 1))

	// First call inside the fresh window is allowed, the second violates
	// the cooldown and trips the persistent auto-block.
	resp, err = client.Get("https://api.example.com/v1")
	require.NoError(t, err)
	resp.Body.Close()

	_, err = client.Get("https://api.example.com/v1")
	require.ErrorIs(t, err, egress.ErrRateLimited)

	blocked, err := repo.HostBlocked(context.Background(), "api.example.com")
	require.NoError(t, err)
	require.True(t, blocked)

	_, err = client.Get("https://api.example.com/v1")
	require.ErrorIs(t, err, egress.ErrHostBlocked)
	transport.Flush()
}

func TestGuard_ClientConvenience(t *testing.T) {
	guard, _ := openGuard(t, egress.Options{})

	client := guard.Client(5*time.Second, egress.Attribution{Component: "webhooks"})
	require.NotNil(t, client)
	require.Equal(t, 5*time.Second, client.Timeout)
	require.IsType(t, &egress.Transport{}, client.Transport)
}
