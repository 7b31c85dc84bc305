// Package network provides the outbound HTTP integration point: an
// http.RoundTripper that enforces egress policy and feeds the request log.
package network

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"egressguard/internal/config"
	"egressguard/internal/service"
)

// Attribution labels which part of the host application owns a client.
type Attribution struct {
	Component string
	Detail    string
}

// PolicyTransport wraps a base transport with policy enforcement and
// logging. Blocked and rate-limited destinations fail before dispatch;
// allowed calls are recorded without adding latency to the request path.
type PolicyTransport struct {
	base        http.RoundTripper
	interceptor service.InterceptorService
	recorder    service.RecorderService
	attribution Attribution
	cfg         config.Config

	wg sync.WaitGroup
}

// NewPolicyTransport creates a policy-enforcing transport. A nil base
// falls back to http.DefaultTransport.
func NewPolicyTransport(base http.RoundTripper, interceptor service.InterceptorService, recorder service.RecorderService, cfg config.Config, attribution Attribution) *PolicyTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &PolicyTransport{
		base:        base,
		interceptor: interceptor,
		recorder:    recorder,
		attribution: attribution,
		cfg:         cfg,
	}
}

func (t *PolicyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	decision := t.interceptor.Decide(ctx, req.URL.String(), req.Method)
	switch decision.Action {
	case service.ActionBlock:
		return nil, service.ErrHostBlocked
	case service.ActionRateLimited:
		return nil, service.ErrRateLimited
	}

	// An empty host means the call is not logged (self calls, store
	// failures); dispatch it untouched.
	var handleCh chan service.AttemptHandle
	if decision.Host != "" {
		handleCh = make(chan service.AttemptHandle, 1)
		attempt := service.Attempt{
			Host:            decision.Host,
			Method:          req.Method,
			URL:             req.URL.String(),
			SourceComponent: t.attribution.Component,
			SourceDetail:    t.attribution.Detail,
		}
		if req.ContentLength > 0 {
			attempt.RequestSize = req.ContentLength
		}
		recordCtx := context.WithoutCancel(ctx)
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			handleCh <- t.recorder.RecordAttempt(recordCtx, attempt)
		}()
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start).Seconds()

	if handleCh == nil {
		return resp, err
	}
	if err != nil {
		t.finish(handleCh, 0, "", elapsed)
		return nil, err
	}

	var body string
	if t.cfg.TrackResponse && t.cfg.MaxResponseBodyLength > 0 && resp.Body != nil {
		// Capture one byte past the limit so the stored body gets its
		// truncation marker, then hand the caller an untouched stream.
		peek, readErr := io.ReadAll(io.LimitReader(resp.Body, int64(t.cfg.MaxResponseBodyLength)+1))
		if readErr == nil {
			body = string(peek)
			resp.Body = replayBody{
				Reader: io.MultiReader(bytes.NewReader(peek), resp.Body),
				Closer: resp.Body,
			}
		}
	}

	t.finish(handleCh, resp.StatusCode, body, elapsed)
	return resp, nil
}

func (t *PolicyTransport) finish(handleCh <-chan service.AttemptHandle, code int, body string, elapsed float64) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		handle := <-handleCh
		t.recorder.RecordResponse(context.Background(), handle, code, body, elapsed)
	}()
}

// Flush blocks until all in-flight recording goroutines have finished.
func (t *PolicyTransport) Flush() {
	t.wg.Wait()
}

type replayBody struct {
	io.Reader
	io.Closer
}
