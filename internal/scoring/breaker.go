package scoring

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

// BreakerClient stops calling the scoring service after repeated
// transport failures and fails fast with ErrCircuitOpen until the
// breaker half-opens again.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps a Client with a circuit breaker.
func WithBreaker(c Client, cfg BreakerConfig, logger *zap.Logger) *BreakerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "scoring:" + c.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Contract errors mean the service is up; only transport
		// failures count against it.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransport(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &BreakerClient{inner: c, cb: cb}
}

func (b *BreakerClient) Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Score(ctx, sub)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &TransportError{Err: errors.Join(ErrCircuitOpen, err)}
	}
	if err != nil {
		return nil, err
	}
	return res.(*risk.Assessment), nil
}

func (b *BreakerClient) Name() string {
	return b.inner.Name()
}

// State returns the breaker state ("closed", "half-open" or "open").
func (b *BreakerClient) State() string {
	return b.cb.State().String()
}
