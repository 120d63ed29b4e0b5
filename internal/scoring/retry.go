package scoring

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

// RetryClient is a decorator that retries transport errors with
// exponential backoff and jitter. Contract errors are returned at once.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		a, err := r.inner.Score(ctx, sub)
		if err == nil {
			return a, nil
		}
		lastErr = err

		// A per-request timeout is retried; the caller's deadline is not.
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(err, ctxErr) {
				return nil, err
			}
			return nil, ctxErr
		}
		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt, no point sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *RetryClient) Name() string {
	return r.inner.Name()
}

func shouldRetry(err error) bool {
	// An open circuit will not close within our backoff window.
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}
	return IsTransport(err)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryClient) backoff(attempt int, err error) time.Duration {
	var te *TransportError
	if errors.As(err, &te) && te.RetryAfter > 0 {
		return min(te.RetryAfter, r.config.MaxWait)
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
