package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{
		ResultsByTier:  make(map[string]int),
		FailuresByKind: make(map[string]int),
	}

	query, args := sqlite().
		Select(entsql.Count("*"), "COALESCE(AVG(latency_ms), 0)").
		From(entsql.Table(tableSubmissionEvents)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Submissions, &st.AvgLatencyMs); err != nil {
		return nil, fmt.Errorf("submission totals: %w", err)
	}

	query, args = sqlite().
		Select("error_kind", entsql.Count("*")).
		From(entsql.Table(tableSubmissionEvents)).
		Where(entsql.EQ("success", false)).
		GroupBy("error_kind").
		Query()
	if err := r.groupCounts(ctx, query, args, st.FailuresByKind); err != nil {
		return nil, fmt.Errorf("failures by kind: %w", err)
	}
	for _, n := range st.FailuresByKind {
		st.FailedAttempts += n
	}

	query, args = sqlite().
		Select(entsql.Count("*"), "COALESCE(AVG(score), 0)", "COALESCE(SUM(emergency), 0)").
		From(entsql.Table(tableResultEvents)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Results, &st.AvgScore, &st.EmergencyShown); err != nil {
		return nil, fmt.Errorf("result totals: %w", err)
	}

	query, args = sqlite().
		Select("tier", entsql.Count("*")).
		From(entsql.Table(tableResultEvents)).
		GroupBy("tier").
		Query()
	if err := r.groupCounts(ctx, query, args, st.ResultsByTier); err != nil {
		return nil, fmt.Errorf("results by tier: %w", err)
	}

	return st, nil
}

func (r *eventRepo) groupCounts(ctx context.Context, query string, args []any, into map[string]int) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key.String] = n
	}
	return rows.Err()
}
