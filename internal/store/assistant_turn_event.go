package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var assistantTurnColumns = []string{
	"id", "sequence", "timestamp", "session_id", "course_id", "rule",
	"tone", "resource_count", "latency_ms",
}

func (r *eventRepo) AppendAssistantTurn(ctx context.Context, data AssistantTurnEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert("assistant_turn_events").
		Columns(assistantTurnColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC().UnixMilli(),
			data.SessionID,
			data.CourseID,
			data.Rule,
			data.Tone,
			data.ResourceCount,
			data.LatencyMs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assistant turn event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssistantTurns(ctx context.Context, opts QueryOpts) ([]AssistantTurnEvent, error) {
	sel := builder.Select(assistantTurnColumns...).
		From(entsql.Table("assistant_turn_events"))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assistant turn events: %w", err)
	}
	defer rows.Close()

	var events []AssistantTurnEvent
	for rows.Next() {
		var e AssistantTurnEvent
		var ts int64
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.CourseID, &e.Rule,
			&e.Tone, &e.ResourceCount, &e.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan assistant turn event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
