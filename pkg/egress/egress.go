// Package egress is the embeddable surface of the request guard. A host
// application opens a Guard over the policy store and routes its outbound
// HTTP traffic through the transports the Guard hands out; blocked and
// rate-limited destinations then fail before dispatch and allowed calls
// are aggregated into the request log.
package egress

import (
	"database/sql"
	"net/http"
	"time"

	"egressguard/internal/config"
	"egressguard/internal/db"
	"egressguard/internal/network"
	"egressguard/internal/repository"
	"egressguard/internal/service"
	"egressguard/pkg/snowflake"
)

// Aliases so hosts can name the integration types without reaching into
// internal packages.
type (
	// Attribution labels which part of the host application owns a client.
	Attribution = network.Attribution
	// Transport is the policy-enforcing http.RoundTripper.
	Transport = network.PolicyTransport
)

// Errors returned by a policed transport before dispatch.
var (
	ErrHostBlocked = service.ErrHostBlocked
	ErrRateLimited = service.ErrRateLimited
)

// Options tunes a Guard. The zero value polices and counts calls without
// capturing URL histories or response bodies.
type Options struct {
	// SelfHost is the hostname the embedding application serves under.
	// Calls to it (and to localhost) are never policed or logged.
	SelfHost string

	TrackAllURLs  bool
	MaxURLsLogged int

	TrackResponse bool
	// MaxResponseBodyLength caps stored response bodies in bytes.
	MaxResponseBodyLength int
}

// Guard owns the policy store and the per-host rate limit state shared by
// every transport it hands out.
type Guard struct {
	db          *sql.DB
	limiter     *service.RateLimiter
	interceptor service.InterceptorService
	recorder    service.RecorderService
	cfg         config.Config
}

// Open opens (creating if needed) the policy database at dbPath and
// returns a ready Guard.
func Open(dbPath string, opts Options) (*Guard, error) {
	if err := snowflake.Init(0); err != nil {
		return nil, err
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	cfg := config.Config{
		DBPath:                dbPath,
		SelfHost:              opts.SelfHost,
		TrackAllURLs:          opts.TrackAllURLs,
		MaxURLsLogged:         opts.MaxURLsLogged,
		TrackResponse:         opts.TrackResponse,
		MaxResponseBodyLength: opts.MaxResponseBodyLength,
	}

	repo := repository.NewRequestRepository(database)
	limiter := service.NewRateLimiter()

	return &Guard{
		db:          database,
		limiter:     limiter,
		interceptor: service.NewInterceptorService(repo, limiter, cfg),
		recorder:    service.NewRecorderService(repo, cfg),
		cfg:         cfg,
	}, nil
}

// Transport wraps base with policy enforcement and logging. A nil base
// falls back to http.DefaultTransport.
func (g *Guard) Transport(base http.RoundTripper, attribution Attribution) *Transport {
	return network.NewPolicyTransport(base, g.interceptor, g.recorder, g.cfg, attribution)
}

// Client is a convenience for hosts that do not manage their own client.
func (g *Guard) Client(timeout time.Duration, attribution Attribution) *http.Client {
	return &http.Client{Timeout: timeout, Transport: g.Transport(nil, attribution)}
}

// Close releases the underlying database.
func (g *Guard) Close() error {
	return g.db.Close()
}
