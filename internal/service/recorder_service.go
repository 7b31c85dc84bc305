//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"egressguard/internal/config"
	"egressguard/internal/model"
	"egressguard/internal/repository"
	"egressguard/pkg/logger"
)

// Attempt describes one allowed outbound call to be aggregated. Attribution
// is supplied by the caller; the recorder never infers it.
type Attempt struct {
	Host        string
	Method      string
	URL         string
	RequestSize int64

	SourceComponent string
	SourceDetail    string
}

// AttemptHandle correlates an attempt with its later response. It is issued
// per call, so concurrent calls to the same (host, method) bucket cannot
// clobber each other's response data.
type AttemptHandle struct {
	Token    string
	RecordID int64
}

// Valid reports whether the handle refers to a stored record.
func (h AttemptHandle) Valid() bool {
	return h.RecordID != 0
}

// RecorderService aggregates outbound call attempts and their responses
// into per-(host, method) records. All operations are best-effort: store
// failures are logged and swallowed, never surfaced to the caller.
type RecorderService interface {
	RecordAttempt(ctx context.Context, attempt Attempt) AttemptHandle
	RecordResponse(ctx context.Context, handle AttemptHandle, code int, body string, elapsedSeconds float64)
}

type recorderService struct {
	repo repository.RequestRepository
	cfg  config.Config
}

// defaultMaxURLs bounds the history when the configured cap is unusable.
const defaultMaxURLs = 10

// NewRecorderService creates the aggregation service.
func NewRecorderService(repo repository.RequestRepository, cfg config.Config) RecorderService {
	if cfg.TrackAllURLs && cfg.MaxURLsLogged <= 0 {
		cfg.MaxURLsLogged = defaultMaxURLs
	}
	return &recorderService{repo: repo, cfg: cfg}
}

func (s *recorderService) RecordAttempt(ctx context.Context, attempt Attempt) AttemptHandle {
	if attempt.Host == "" {
		return AttemptHandle{}
	}
	if attempt.Method == "" {
		attempt.Method = "GET"
	}
	// Buckets are keyed case-sensitively in the store; canonicalize so
	// "get" and "GET" aggregate together.
	attempt.Method = strings.ToUpper(attempt.Method)

	id, err := s.upsertAttempt(ctx, attempt)
	if err != nil {
		logger.Warn("record attempt failed", "host", attempt.Host, "method", attempt.Method, "error", err)
		return AttemptHandle{}
	}
	return AttemptHandle{Token: uuid.NewString(), RecordID: id}
}

func (s *recorderService) upsertAttempt(ctx context.Context, attempt Attempt) (int64, error) {
	existing, err := s.repo.FindByHostMethod(ctx, attempt.Host, attempt.Method)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		return existing.ID, s.repo.RecordHit(ctx, existing.ID, s.hitUpdate(attempt, existing))
	}

	now := time.Now().UTC()
	record := &model.RequestRecord{
		Host:            attempt.Host,
		Method:          attempt.Method,
		ExampleURL:      attempt.URL,
		RequestSize:     attempt.RequestSize,
		SourceComponent: optional(attempt.SourceComponent),
		SourceDetail:    optional(attempt.SourceDetail),
		RequestCount:    1,
		FirstSeenAt:     now,
		LastSeenAt:      now,
	}
	if s.cfg.TrackAllURLs && attempt.URL != "" {
		record.URLHistory = []string{attempt.URL}
	}

	if err := s.repo.Create(ctx, record); err == nil {
		return record.ID, nil
	}

	// Lost a create race against a concurrent attempt for the same bucket;
	// the unique index guarantees a row exists now, so fall back to a hit.
	existing, err = s.repo.FindByHostMethod(ctx, attempt.Host, attempt.Method)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, ErrNotFound
	}
	return existing.ID, s.repo.RecordHit(ctx, existing.ID, s.hitUpdate(attempt, existing))
}

func (s *recorderService) hitUpdate(attempt Attempt, existing *model.RequestRecord) repository.HitUpdate {
	hit := repository.HitUpdate{
		SeenAt:          time.Now().UTC(),
		ExampleURL:      attempt.URL,
		RequestSize:     attempt.RequestSize,
		SourceComponent: optional(attempt.SourceComponent),
		SourceDetail:    optional(attempt.SourceDetail),
	}
	if s.cfg.TrackAllURLs {
		hit.URLHistory = appendURL(existing.URLHistory, attempt.URL, s.cfg.MaxURLsLogged)
		hit.SetHistory = true
	}
	return hit
}

func (s *recorderService) RecordResponse(ctx context.Context, handle AttemptHandle, code int, body string, elapsedSeconds float64) {
	if !handle.Valid() || !s.cfg.TrackResponse {
		return
	}

	var stored *string
	if s.cfg.MaxResponseBodyLength > 0 && body != "" {
		truncated := truncateBody(body, s.cfg.MaxResponseBodyLength)
		stored = &truncated
	}

	if err := s.repo.UpdateResponse(ctx, handle.RecordID, code, elapsedSeconds, stored); err != nil {
		logger.Warn("record response failed", "token", handle.Token, "error", err)
	}
}

// appendURL applies the bounded-history rule: duplicates are not re-added,
// order is preserved, and the oldest entry is dropped past capacity.
func appendURL(history []string, url string, capacity int) []string {
	if url == "" {
		return history
	}
	for _, seen := range history {
		if seen == url {
			return history
		}
	}
	history = append(append([]string(nil), history...), url)
	if capacity > 0 && len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	return history
}

// truncateBody cuts body to at most maxBytes, avoiding a split inside a
// multibyte rune, and appends a marker when anything was cut.
func truncateBody(body string, maxBytes int) string {
	if len(body) <= maxBytes {
		return body
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "\n..."
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
