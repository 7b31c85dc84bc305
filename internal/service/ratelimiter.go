package service

import (
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/time/rate"
)

// RateLimiter keeps transient per-host cooldown state: a burst-1 token
// bucket per host refilling once per configured interval. State lives only
// in memory; losing it on restart just resets the window.
type RateLimiter struct {
	hosts *xsync.Map[string, *hostLimiter]
}

type hostLimiter struct {
	intervalSeconds int
	limiter         *rate.Limiter
}

// NewRateLimiter creates an empty rate limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{hosts: xsync.NewMap[string, *hostLimiter]()}
}

// CheckAndAdvance reports whether a call to host right now violates the
// configured cooldown. A first check for a host (or a check after the
// interval changed) consumes the window and allows. The check is atomic per
// host: two concurrent calls cannot both observe "not yet limited".
func (l *RateLimiter) CheckAndAdvance(host string, intervalSeconds int) bool {
	if intervalSeconds <= 0 {
		l.hosts.Delete(host)
		return false
	}

	violation := false
	l.hosts.Compute(host, func(old *hostLimiter, loaded bool) (*hostLimiter, xsync.ComputeOp) {
		if loaded && old.intervalSeconds == intervalSeconds {
			violation = !old.limiter.Allow()
			return old, xsync.CancelOp
		}

		limiter := rate.NewLimiter(rate.Every(time.Duration(intervalSeconds)*time.Second), 1)
		limiter.Allow() // consume the initial token; this call is the one permitted
		return &hostLimiter{intervalSeconds: intervalSeconds, limiter: limiter}, xsync.UpdateOp
	})
	return violation
}

// Forget drops any stored window for host. Used when a record is deleted or
// its rate limit reconfigured.
func (l *RateLimiter) Forget(host string) {
	l.hosts.Delete(host)
}
