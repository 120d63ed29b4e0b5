package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/store"
)

// LoggingClient is a decorator that records every scoring call in the
// event history and the structured log. Answers are never logged.
type LoggingClient struct {
	inner     Client
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Client with event logging. repo may be nil.
func WithLogging(c Client, repo store.EventRepo, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingClient{inner: c, eventRepo: repo, logger: logger.Named("scoring")}
}

func (l *LoggingClient) Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	start := time.Now()
	a, err := l.inner.Score(ctx, sub)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("scorer", l.inner.Name()),
		zap.String("session_id", sub.SessionID),
		zap.String("submission_id", sub.ID),
		zap.Int("attempt", sub.Attempt),
		zap.Duration("latency", latency),
	}
	if err != nil {
		l.logger.Warn("scoring failed", append(fields, zap.String("kind", Kind(err)), zap.Error(err))...)
	} else {
		l.logger.Info("scoring succeeded", append(fields, zap.String("tier", string(a.Tier)))...)
	}

	if l.eventRepo == nil {
		return a, err
	}

	data := store.SubmissionEventData{
		SessionID:    sub.SessionID,
		SubmissionID: sub.ID,
		Attempt:      sub.Attempt,
		Scorer:       l.inner.Name(),
		LatencyMs:    latency.Milliseconds(),
		Success:      err == nil,
		ErrorKind:    Kind(err),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// History is best effort; never fail the submission over it.
	if logErr := l.eventRepo.AppendSubmissionEvent(ctx, data); logErr != nil {
		l.logger.Warn("failed to record submission event", zap.Error(logErr))
	}

	return a, err
}

func (l *LoggingClient) Name() string {
	return l.inner.Name()
}
