package model

import "time"

// RequestRecord is one aggregation bucket of outbound requests: a single
// row per (host, method) pair holding policy flags and counters.
type RequestRecord struct {
	ID         int64
	Host       string
	Method     string
	ExampleURL string

	// URLHistory is a bounded, ordered list of distinct URLs seen for this
	// bucket. Only populated when URL tracking is enabled.
	URLHistory []string

	ResponseCode    *int
	RequestSize     int64
	ResponseTime    *float64
	ResponseBody    *string
	SourceComponent *string
	SourceDetail    *string

	RequestCount int64
	FirstSeenAt  time.Time
	LastSeenAt   time.Time

	IsBlocked bool
	IsDeleted bool

	// RateLimitInterval is the cooldown window in seconds; 0 disables.
	RateLimitInterval int
	RateLimitCalls    int
}

// DeletedRequest is an append-only audit entry written when a record is
// hard-deleted.
type DeletedRequest struct {
	ID         int64
	Host       string
	ExampleURL string
	WasBlocked bool
	DeletedAt  time.Time
	DeletedBy  string
}

// StatusCounts summarizes non-deleted records by block status.
type StatusCounts struct {
	Total   int `json:"total"`
	Blocked int `json:"blocked"`
	Allowed int `json:"allowed"`
}
