package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var submissionColumns = []string{
	"id", "sequence", "timestamp", "session_id", "submission_id", "attempt",
	"scorer", "latency_ms", "success", "error_kind", "error_message",
}

var resultColumns = []string{
	"id", "sequence", "timestamp", "session_id", "submission_id", "score",
	"tier", "source", "emergency", "safety_triggered",
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tableSubmissionEvents).
		Columns(submissionColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.SessionID,
			data.SubmissionID,
			data.Attempt,
			data.Scorer,
			data.LatencyMs,
			data.Success,
			data.ErrorKind,
			data.ErrorMessage,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendResultEvent(ctx context.Context, data ResultEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tableResultEvents).
		Columns(resultColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.SessionID,
			data.SubmissionID,
			data.Score,
			data.Tier,
			data.Source,
			data.Emergency,
			data.SafetyTriggered,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save result event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySubmissionEvents(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error) {
	sel := sqlite().Select(submissionColumns...).From(entsql.Table(tableSubmissionEvents))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submission events: %w", err)
	}
	defer rows.Close()

	var records []SubmissionEventRecord
	for rows.Next() {
		var rec SubmissionEventRecord
		var ts int64
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.SubmissionID,
			&rec.Attempt, &rec.Scorer, &rec.LatencyMs, &rec.Success,
			&rec.ErrorKind, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan submission event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QueryResultEvents(ctx context.Context, opts QueryOpts) ([]ResultEventRecord, error) {
	sel := sqlite().Select(resultColumns...).From(entsql.Table(tableResultEvents))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result events: %w", err)
	}
	defer rows.Close()

	var records []ResultEventRecord
	for rows.Next() {
		var rec ResultEventRecord
		var ts int64
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.SubmissionID,
			&rec.Score, &rec.Tier, &rec.Source, &rec.Emergency, &rec.SafetyTriggered,
		); err != nil {
			return nil, fmt.Errorf("scan result event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) Purge(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{tableSubmissionEvents, tableResultEvents} {
		query, args := sqlite().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	if err := r.seq.reset(ctx, tx); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return tx.Commit()
}

// applyOpts adds filters, newest-first ordering and the limit.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}
