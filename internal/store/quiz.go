package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// PassPercentage is the minimum score that earns a star and the course credits.
const PassPercentage = 60

// ScorePercentage returns round(correct/total*100), or 0 for an empty quiz.
func ScorePercentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	correct = min(max(correct, 0), total)
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// StarsFor maps a percentage to the star award: 90%+ three, 70-89 two,
// 60-69 one, otherwise none.
func StarsFor(percentage int) int {
	switch {
	case percentage >= 90:
		return 3
	case percentage >= 70:
		return 2
	case percentage >= PassPercentage:
		return 1
	default:
		return 0
	}
}

// quizRepo implements QuizRepo.
type quizRepo struct {
	db *sql.DB
}

var quizColumns = []string{"id", "course_id", "correct", "total", "percentage", "stars", "credits", "completed_at"}

func (r *quizRepo) Record(ctx context.Context, courseID string, correct, total int) (*QuizResult, error) {
	if total <= 0 {
		return nil, fmt.Errorf("quiz for %q has no questions", courseID)
	}
	if correct < 0 || correct > total {
		return nil, fmt.Errorf("correct answers %d out of range 0..%d", correct, total)
	}

	courseCredits, err := r.courseCredits(ctx, courseID)
	if err != nil {
		return nil, err
	}

	res := &QuizResult{
		CourseID:    courseID,
		Correct:     correct,
		Total:       total,
		Percentage:  ScorePercentage(correct, total),
		CompletedAt: time.Now().UTC(),
	}
	res.Stars = StarsFor(res.Percentage)
	if res.Percentage >= PassPercentage {
		res.Credits = courseCredits
	}

	query, args := builder.Insert("quiz_results").
		Columns(quizColumns[1:]...).
		Values(res.CourseID, res.Correct, res.Total, res.Percentage, res.Stars, res.Credits, res.CompletedAt.UnixMilli()).
		Query()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		res.ID = int(id)
	}
	return res, nil
}

func (r *quizRepo) courseCredits(ctx context.Context, courseID string) (int, error) {
	query, args := builder.Select("credits").
		From(entsql.Table("courses")).
		Where(entsql.EQ("id", courseID)).
		Query()
	var credits int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&credits)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("course %q not found", courseID)
	}
	if err != nil {
		return 0, fmt.Errorf("query course credits: %w", err)
	}
	return credits, nil
}

func (r *quizRepo) Stats(ctx context.Context) (*learner.PerformanceStats, error) {
	query, args := builder.Select(
		entsql.Count("*"),
		entsql.Avg("percentage"),
		entsql.Sum("stars"),
		entsql.Sum("credits"),
	).From(entsql.Table("quiz_results")).Query()

	var (
		count          int
		avg            sql.NullFloat64
		stars, credits sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count, &avg, &stars, &credits); err != nil {
		return nil, fmt.Errorf("aggregate quiz results: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	query, args = builder.Select(entsql.Count("*")).
		From(entsql.Table("quiz_results")).
		Where(entsql.GTE("percentage", PassPercentage)).
		Query()
	var passed int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&passed); err != nil {
		return nil, fmt.Errorf("count passed quizzes: %w", err)
	}

	return &learner.PerformanceStats{
		AverageScore: int(math.Round(avg.Float64)),
		TotalQuizzes: count,
		SuccessRate:  int(math.Round(float64(passed) / float64(count) * 100)),
		Stars:        int(stars.Int64),
		TotalCredits: int(credits.Int64),
	}, nil
}

func (r *quizRepo) Recent(ctx context.Context, limit int) ([]QuizResult, error) {
	sel := builder.Select(quizColumns...).
		From(entsql.Table("quiz_results")).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var results []QuizResult
	for rows.Next() {
		var q QuizResult
		var completed int64
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Correct, &q.Total, &q.Percentage, &q.Stars, &q.Credits, &completed); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		q.CompletedAt = time.UnixMilli(completed).UTC()
		results = append(results, q)
	}
	return results, rows.Err()
}
