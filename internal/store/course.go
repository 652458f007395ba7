package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// courseRepo implements CourseRepo. List-valued fields are stored as JSON.
type courseRepo struct {
	db *sql.DB
}

var courseColumns = []string{
	"id", "title", "description", "difficulty", "credits",
	"recommended_for", "materials", "videos", "questions",
}

func (r *courseRepo) Upsert(ctx context.Context, c learner.Course) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("course id is required")
	}

	encoded := make([]any, 0, 4)
	for _, v := range []any{orEmpty(c.RecommendedFor), orEmpty(c.Materials), orEmpty(c.Videos), orEmpty(c.Questions)} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode course %q: %w", c.ID, err)
		}
		encoded = append(encoded, string(b))
	}

	values := append([]any{c.ID, c.Title, c.Description, c.Difficulty, c.Credits}, encoded...)
	values = append(values, time.Now().UTC().UnixMilli())

	query, args := builder.Insert("courses").
		Columns(append(courseColumns, "updated_at")...).
		Values(values...).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save course %q: %w", c.ID, err)
	}
	return nil
}

func (r *courseRepo) Get(ctx context.Context, id string) (*learner.Course, error) {
	courses, err := r.query(ctx, entsql.EQ("id", id))
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return &courses[0], nil
}

func (r *courseRepo) List(ctx context.Context) ([]learner.Course, error) {
	return r.query(ctx, nil)
}

func (r *courseRepo) Search(ctx context.Context, term string) ([]learner.Course, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	return r.query(ctx, entsql.Or(
		entsql.ContainsFold("title", term),
		entsql.ContainsFold("description", term),
	))
}

func (r *courseRepo) SearchVideos(ctx context.Context, term string, limit int) ([]learner.Video, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(term))
	var out []learner.Video
	for _, c := range courses {
		for _, v := range c.Videos {
			if !matchesAny(strings.ToLower(c.Title+" "+v.Title+" "+v.Description), terms) {
				continue
			}
			out = append(out, v)
			if limit > 0 && len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// matchesAny reports whether haystack contains at least one of the terms.
// An empty term list matches everything.
func matchesAny(haystack string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func (r *courseRepo) query(ctx context.Context, where *entsql.Predicate) ([]learner.Course, error) {
	sel := builder.Select(courseColumns...).
		From(entsql.Table("courses")).
		OrderBy("title")
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []learner.Course
	for rows.Next() {
		var c learner.Course
		var recommended, materials, videos, questions string
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Credits,
			&recommended, &materials, &videos, &questions); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		for _, f := range []struct {
			raw string
			dst any
		}{
			{recommended, &c.RecommendedFor},
			{materials, &c.Materials},
			{videos, &c.Videos},
			{questions, &c.Questions},
		} {
			if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
				return nil, fmt.Errorf("decode course %q: %w", c.ID, err)
			}
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

const catalogVersionKey = "catalog_version"

func (r *courseRepo) CatalogVersion(ctx context.Context) (string, error) {
	query, args := builder.Select("value").
		From(entsql.Table("catalog_meta")).
		Where(entsql.EQ("key", catalogVersionKey)).
		Query()
	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query catalog version: %w", err)
	}
	return v, nil
}

func (r *courseRepo) SetCatalogVersion(ctx context.Context, version string) error {
	query, args := builder.Insert("catalog_meta").
		Columns("key", "value").
		Values(catalogVersionKey, version).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save catalog version: %w", err)
	}
	return nil
}
