package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// profileRepo implements ProfileRepo. The table holds at most one row.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Save(ctx context.Context, p learner.Profile) error {
	interests, err := json.Marshal(orEmpty(p.Interests))
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}
	goals, err := json.Marshal(orEmpty(p.Goals))
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}

	query, args := builder.Insert("profiles").
		Columns("id", "name", "email", "interests", "goals", "learning_style", "skill_level", "updated_at").
		Values(1, p.Name, p.Email, string(interests), string(goals), p.LearningStyle, p.SkillLevel, time.Now().UTC().UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context) (*learner.Profile, error) {
	query, args := builder.Select("name", "email", "interests", "goals", "learning_style", "skill_level", "updated_at").
		From(entsql.Table("profiles")).
		Where(entsql.EQ("id", 1)).
		Query()

	var (
		p                learner.Profile
		interests, goals string
		updated          int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.Name, &p.Email, &interests, &goals, &p.LearningStyle, &p.SkillLevel, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	if err := json.Unmarshal([]byte(interests), &p.Interests); err != nil {
		return nil, fmt.Errorf("decode interests: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	p.UpdatedAt = time.UnixMilli(updated).UTC()
	return &p, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
