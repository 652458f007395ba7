package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by SQLite and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var videoSearchColumns = []string{
	"id", "sequence", "timestamp", "provider", "query", "max_results",
	"result_count", "latency_ms", "success", "error_message",
}

func (r *eventRepo) AppendVideoSearch(ctx context.Context, data VideoSearchEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert("video_search_events").
		Columns(videoSearchColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC().UnixMilli(),
			data.Provider,
			data.Query,
			data.MaxResults,
			data.ResultCount,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save video search event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryVideoSearches(ctx context.Context, opts QueryOpts) ([]VideoSearchEvent, error) {
	sel := builder.Select(videoSearchColumns...).
		From(entsql.Table("video_search_events"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query video search events: %w", err)
	}
	defer rows.Close()

	var events []VideoSearchEvent
	for rows.Next() {
		var e VideoSearchEvent
		var ts int64
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.Provider, &e.Query, &e.MaxResults,
			&e.ResultCount, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan video search event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// applyQueryOpts adds the common filters and newest-first ordering.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC().UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
