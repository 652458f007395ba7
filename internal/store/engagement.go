package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// engagementRepo implements EngagementRepo. One row per UTC day.
type engagementRepo struct {
	db *sql.DB
}

func (r *engagementRepo) Record(ctx context.Context, t time.Time) error {
	day := t.UTC().Format(time.DateOnly)
	query, args := builder.Insert("engagement_days").
		Columns("day", "recorded_at").
		Values(day, time.Now().UTC().UnixMilli()).
		OnConflict(entsql.ConflictColumns("day"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record engagement: %w", err)
	}
	return nil
}

func (r *engagementRepo) Days(ctx context.Context) ([]time.Time, error) {
	query, args := builder.Select("day").
		From(entsql.Table("engagement_days")).
		OrderBy("day").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query engagement days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan engagement day: %w", err)
		}
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("parse engagement day %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
