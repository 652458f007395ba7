package store

import (
	"context"
	"log/slog"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// ContextSource reads the current collaborator values for the assistant.
// Read failures are logged and reported as missing data; the aggregator
// fills in defaults.
type ContextSource struct {
	Profiles    ProfileRepo
	Quizzes     QuizRepo
	Engagements EngagementRepo
	Courses     CourseRepo
}

// ContextSource returns a ContextSource backed by this store.
func (s *Store) ContextSource() *ContextSource {
	return &ContextSource{
		Profiles:    s.ProfileRepo(),
		Quizzes:     s.QuizRepo(),
		Engagements: s.EngagementRepo(),
		Courses:     s.CourseRepo(),
	}
}

// Inputs loads the profile, performance, engagement days and, when courseID
// is non-empty, the focused course.
func (c *ContextSource) Inputs(ctx context.Context, courseID string) learner.Inputs {
	var in learner.Inputs

	if p, err := c.Profiles.Get(ctx); err != nil {
		slog.Warn("Failed to load learner profile", "error", err)
	} else {
		in.Profile = p
	}

	if s, err := c.Quizzes.Stats(ctx); err != nil {
		slog.Warn("Failed to load performance stats", "error", err)
	} else {
		in.Performance = s
	}

	if days, err := c.Engagements.Days(ctx); err != nil {
		slog.Warn("Failed to load engagement days", "error", err)
	} else {
		in.EngagementDays = days
	}

	if courseID != "" {
		if course, err := c.Courses.Get(ctx, courseID); err != nil {
			slog.Warn("Failed to load course", "course_id", courseID, "error", err)
		} else {
			in.Course = course
		}
	}

	return in
}
