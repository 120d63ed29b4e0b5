package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// SubmissionEventData captures one attempt to reach the scorer.
// Answers are never stored.
type SubmissionEventData struct {
	SessionID    string
	SubmissionID string
	Attempt      int
	Scorer       string
	LatencyMs    int64
	Success      bool
	ErrorKind    string // "transport", "contract", "other" or empty
	ErrorMessage string
}

// SubmissionEventRecord is a stored submission event.
type SubmissionEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SubmissionEventData
}

// ResultEventData captures a classification that was shown to the user.
type ResultEventData struct {
	SessionID       string
	SubmissionID    string
	Score           int
	Tier            string
	Source          string
	Emergency       bool
	SafetyTriggered bool
}

// ResultEventRecord is a stored result event.
type ResultEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	ResultEventData
}

// Stats aggregates the local history.
type Stats struct {
	Submissions    int
	FailedAttempts int
	AvgLatencyMs   float64
	Results        int
	AvgScore       float64
	EmergencyShown int
	ResultsByTier  map[string]int
	FailuresByKind map[string]int
}

// EventRepo provides append and query access to history events.
type EventRepo interface {
	// AppendSubmissionEvent records a scorer call.
	AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error

	// AppendResultEvent records a displayed classification.
	AppendResultEvent(ctx context.Context, data ResultEventData) error

	// QuerySubmissionEvents returns submission events, newest first.
	QuerySubmissionEvents(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error)

	// QueryResultEvents returns result events, newest first.
	QueryResultEvents(ctx context.Context, opts QueryOpts) ([]ResultEventRecord, error)

	// Stats summarizes all stored events.
	Stats(ctx context.Context) (*Stats, error)

	// Purge deletes every event and rewinds the sequence.
	Purge(ctx context.Context) error
}
