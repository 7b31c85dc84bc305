package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")

	// ErrHostBlocked and ErrRateLimited are returned by the outbound
	// transport when a call is rejected before dispatch.
	ErrHostBlocked = errors.New("host blocked by egress policy")
	ErrRateLimited = errors.New("rate limit exceeded, host blocked")
)
