package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var stepEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "topic", "iteration",
	"action", "concept", "reason", "success", "error_message", "progress",
}

func (r *eventRepo) AppendStep(ctx context.Context, data StepEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableStepEvents).
		Columns(stepEventColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.SessionID, data.Topic, data.Iteration,
			data.Action, data.Concept, data.Reason, data.Success, data.ErrorMessage, data.Progress,
		).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save step event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionSteps(ctx context.Context, sessionID string) ([]StepEvent, error) {
	b := builder()
	query, args := b.Select(stepEventColumns...).
		From(b.Table(tableStepEvents)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("iteration", "sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session steps: %w", err)
	}
	defer rows.Close()

	var steps []StepEvent
	for rows.Next() {
		var (
			e  StepEvent
			ts int64
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Topic, &e.Iteration,
			&e.Action, &e.Concept, &e.Reason, &e.Success, &e.ErrorMessage, &e.Progress,
		)
		if err != nil {
			return nil, fmt.Errorf("scan step event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		steps = append(steps, e)
	}
	return steps, rows.Err()
}

func (r *eventRepo) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	b := builder()
	sel := b.Select(
		"session_id",
		entsql.As(entsql.Max("topic"), "topic"),
		entsql.As(entsql.Count("*"), "steps"),
		entsql.As(entsql.Min("timestamp"), "started_at"),
		entsql.As(entsql.Max("timestamp"), "last_step_at"),
		entsql.As(entsql.Max("progress"), "last_progress"),
	).
		From(b.Table(tableStepEvents)).
		GroupBy("session_id").
		OrderBy(entsql.Desc("last_step_at"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var (
			s             SessionSummary
			first, latest int64
		)
		if err := rows.Scan(&s.SessionID, &s.Topic, &s.Steps, &first, &latest, &s.LastProgress); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		s.StartedAt = time.UnixMilli(first)
		s.LastStepAt = time.UnixMilli(latest)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
