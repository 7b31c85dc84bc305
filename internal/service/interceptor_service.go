//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"egressguard/internal/config"
	"egressguard/internal/repository"
	"egressguard/pkg/logger"
)

// Action is the outcome of a policy decision.
type Action string

const (
	ActionAllow       Action = "allow"
	ActionBlock       Action = "block"
	ActionRateLimited Action = "rate_limited"
)

// Decision is the result of evaluating an outbound call against policy.
// Host is the normalized destination; it is empty when the call should not
// be logged at all (self-calls, unparseable URLs, store failures).
type Decision struct {
	Action Action
	Reason string
	Host   string
}

// Allowed reports whether the outbound call may proceed.
func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

// InterceptorService is the synchronous gate evaluated before every
// outbound call.
type InterceptorService interface {
	Decide(ctx context.Context, rawURL, method string) Decision
}

type interceptorService struct {
	repo     repository.RequestRepository
	limiter  *RateLimiter
	selfHost string
}

// NewInterceptorService creates the decision pipeline.
func NewInterceptorService(repo repository.RequestRepository, limiter *RateLimiter, cfg config.Config) InterceptorService {
	return &interceptorService{
		repo:     repo,
		limiter:  limiter,
		selfHost: normalizeHost(cfg.SelfHost),
	}
}

// Decide never fails closed: any internal error resolves to Allow so that
// enforcement problems cannot take down the host application's networking.
func (s *interceptorService) Decide(ctx context.Context, rawURL, method string) Decision {
	host := hostFromURL(rawURL)
	if host == "" {
		return Decision{Action: ActionAllow}
	}

	if host == s.selfHost || host == "localhost" || host == "127.0.0.1" {
		return Decision{Action: ActionAllow}
	}

	blocked, err := s.repo.HostBlocked(ctx, host)
	if err != nil {
		logger.Warn("block lookup failed, failing open", "host", host, "error", err)
		return Decision{Action: ActionAllow}
	}
	if blocked {
		return Decision{Action: ActionBlock, Reason: "host blocked by policy", Host: host}
	}

	interval, err := s.repo.HostRateLimitInterval(ctx, host)
	if err != nil {
		logger.Warn("rate limit lookup failed, failing open", "host", host, "error", err)
		return Decision{Action: ActionAllow}
	}

	if s.limiter.CheckAndAdvance(host, interval) {
		// A single violation escalates to a persistent block; only an
		// operator unblock lifts it.
		if err := s.repo.BlockHost(ctx, host); err != nil {
			logger.Error("auto-block after rate limit violation failed", "host", host, "error", err)
		} else {
			logger.Info("host auto-blocked after rate limit violation", "host", host, "interval", interval)
		}
		return Decision{Action: ActionRateLimited, Reason: "rate limit exceeded, host blocked", Host: host}
	}

	return Decision{Action: ActionAllow, Host: host}
}

// hostFromURL extracts and normalizes the destination host. Returns "" for
// anything unparseable; such calls are allowed without logging.
func hostFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return normalizeHost(parsed.Hostname())
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return host
}
