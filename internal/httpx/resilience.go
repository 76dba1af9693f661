// Package httpx wraps outbound platform requests with a shared timeout and
// retry policy so a slow or flaky API cannot stall the ranking run.
package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/failsafe-go/failsafe-go/timeout"
)

// Doer is the minimal HTTP client surface the adapters depend on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ExecutorConfig configures the resilience wrapper around one adapter.
type ExecutorConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Timeout    time.Duration
}

// DefaultExecutorConfig returns the policy every platform adapter starts
// from: two retries with backoff under a per-attempt timeout.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxRetries: 2,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Timeout:    10 * time.Second,
	}
}

// NewExecutor builds a failsafe executor combining retry and timeout.
func NewExecutor(cfg ExecutorConfig) failsafe.Executor[*http.Response] {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	retry := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		HandleIf(shouldRetry).
		Build()
	perAttempt := timeout.New[*http.Response](cfg.Timeout)

	return failsafe.With(retry, perAttempt)
}

// Do runs one request through the executor. When retries are exhausted the
// last response is handed back so callers can map its status to a domain
// error instead of a generic retries-exceeded failure.
func Do(ctx context.Context, executor failsafe.Executor[*http.Response], client Doer, req *http.Request) (*http.Response, error) {
	resp, err := executor.WithContext(ctx).Get(func() (*http.Response, error) {
		return client.Do(req)
	})
	if err != nil {
		var exceeded retrypolicy.ExceededError
		if errors.As(err, &exceeded) {
			if last, ok := exceeded.LastResult.(*http.Response); ok && last != nil {
				return last, nil
			}
			if exceeded.LastError != nil {
				return nil, exceeded.LastError
			}
		}
		return nil, err
	}
	return resp, nil
}

// shouldRetry retries transport errors, server errors and rate limits.
// Client errors (bad credentials, bad request) never succeed on retry.
func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}
