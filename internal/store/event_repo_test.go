package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndQuerySubmissionEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{
		SessionID: "s1", SubmissionID: "sub1", Attempt: 1, Scorer: "http",
		LatencyMs: 120, Success: false, ErrorKind: "transport", ErrorMessage: "connection refused",
	}))
	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{
		SessionID: "s1", SubmissionID: "sub1", Attempt: 2, Scorer: "http",
		LatencyMs: 80, Success: true,
	}))

	events, err := repo.QuerySubmissionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// newest first
	assert.Equal(t, 2, events[0].Attempt)
	assert.True(t, events[0].Success)
	assert.Equal(t, 1, events[1].Attempt)
	assert.False(t, events[1].Success)
	assert.Equal(t, "transport", events[1].ErrorKind)
	assert.Equal(t, "connection refused", events[1].ErrorMessage)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)
}

func TestQueryResultEventsOptions(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for i, tier := range []string{"low", "moderate", "higher_risk", "low"} {
		require.NoError(t, repo.AppendResultEvent(ctx, ResultEventData{
			SessionID: "s", SubmissionID: "sub", Score: i * 5, Tier: tier, Source: "remote",
			Emergency: tier == "higher_risk",
		}))
	}

	all, err := repo.QueryResultEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 15, all[0].Score)
	assert.True(t, all[1].Emergency)

	limited, err := repo.QueryResultEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, all[0].Sequence, limited[0].Sequence)

	after, err := repo.QueryResultEvents(ctx, QueryOpts{After: all[2].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	future, err := repo.QueryResultEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	past, err := repo.QueryResultEvents(ctx, QueryOpts{To: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{SessionID: "s", SubmissionID: "a", Attempt: 1, Scorer: "http", Success: true}))
	require.NoError(t, repo.AppendResultEvent(ctx, ResultEventData{SessionID: "s", SubmissionID: "a", Score: 3, Tier: "low", Source: "remote"}))

	subs, err := repo.QuerySubmissionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	results, err := repo.QueryResultEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), subs[0].Sequence)
	assert.Equal(t, int64(2), results[0].Sequence)
}

func TestStats(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Submissions)
	assert.Zero(t, empty.Results)
	assert.Empty(t, empty.ResultsByTier)

	subs := []SubmissionEventData{
		{SessionID: "s", SubmissionID: "a", Attempt: 1, Scorer: "http", LatencyMs: 100, ErrorKind: "transport"},
		{SessionID: "s", SubmissionID: "a", Attempt: 2, Scorer: "http", LatencyMs: 200, ErrorKind: "contract"},
		{SessionID: "s", SubmissionID: "a", Attempt: 3, Scorer: "http", LatencyMs: 300, Success: true},
	}
	for _, d := range subs {
		require.NoError(t, repo.AppendSubmissionEvent(ctx, d))
	}
	results := []ResultEventData{
		{SessionID: "s", SubmissionID: "a", Score: 8, Tier: "low", Source: "remote"},
		{SessionID: "t", SubmissionID: "b", Score: 20, Tier: "higher_risk", Source: "local", Emergency: true},
	}
	for _, d := range results {
		require.NoError(t, repo.AppendResultEvent(ctx, d))
	}

	st, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Submissions)
	assert.Equal(t, 2, st.FailedAttempts)
	assert.InDelta(t, 200.0, st.AvgLatencyMs, 0.001)
	assert.Equal(t, map[string]int{"transport": 1, "contract": 1}, st.FailuresByKind)
	assert.Equal(t, 2, st.Results)
	assert.InDelta(t, 14.0, st.AvgScore, 0.001)
	assert.Equal(t, 1, st.EmergencyShown)
	assert.Equal(t, map[string]int{"low": 1, "higher_risk": 1}, st.ResultsByTier)
}

func TestPurge(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSubmissionEvent(ctx, SubmissionEventData{SessionID: "s", SubmissionID: "a", Attempt: 1, Scorer: "http", Success: true}))
	require.NoError(t, repo.AppendResultEvent(ctx, ResultEventData{SessionID: "s", SubmissionID: "a", Score: 1, Tier: "low", Source: "remote"}))

	require.NoError(t, repo.Purge(ctx))

	subs, err := repo.QuerySubmissionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, subs)
	results, err := repo.QueryResultEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, results)

	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}
