package store

import (
	"context"
	"time"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // assistant turns only
}

// VideoSearchEventData captures a single call to the video search provider.
type VideoSearchEventData struct {
	Provider     string
	Query        string
	MaxResults   int
	ResultCount  int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// VideoSearchEvent is a persisted VideoSearchEventData.
type VideoSearchEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	VideoSearchEventData
}

// AssistantTurnEventData captures one completed assistant response.
type AssistantTurnEventData struct {
	SessionID     string
	CourseID      string
	Rule          string
	Tone          string
	ResourceCount int
	LatencyMs     int64
}

// AssistantTurnEvent is a persisted AssistantTurnEventData.
type AssistantTurnEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssistantTurnEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendVideoSearch records a video search provider call.
	AppendVideoSearch(ctx context.Context, data VideoSearchEventData) error

	// AppendAssistantTurn records a completed assistant response.
	AppendAssistantTurn(ctx context.Context, data AssistantTurnEventData) error

	// QueryVideoSearches returns search events, newest first.
	QueryVideoSearches(ctx context.Context, opts QueryOpts) ([]VideoSearchEvent, error)

	// QueryAssistantTurns returns turn events, newest first.
	QueryAssistantTurns(ctx context.Context, opts QueryOpts) ([]AssistantTurnEvent, error)
}

// ProfileRepo manages the single learner profile.
type ProfileRepo interface {
	// Save creates or replaces the profile.
	Save(ctx context.Context, p learner.Profile) error

	// Get returns the profile, or nil if onboarding has not happened.
	Get(ctx context.Context) (*learner.Profile, error)
}

// QuizResult is a scored quiz attempt.
type QuizResult struct {
	ID          int
	CourseID    string
	Correct     int
	Total       int
	Percentage  int
	Stars       int
	Credits     int
	CompletedAt time.Time
}

// QuizRepo records quiz attempts and aggregates performance.
type QuizRepo interface {
	// Record scores and stores an attempt. Credits are taken from the course.
	Record(ctx context.Context, courseID string, correct, total int) (*QuizResult, error)

	// Stats aggregates all attempts. Returns nil when there are none.
	Stats(ctx context.Context) (*learner.PerformanceStats, error)

	// Recent returns the latest attempts, newest first.
	Recent(ctx context.Context, limit int) ([]QuizResult, error)
}

// EngagementRepo tracks the days a learner was active.
type EngagementRepo interface {
	// Record marks the UTC day of t as active. Recording twice is a no-op.
	Record(ctx context.Context, t time.Time) error

	// Days returns all active days in ascending order.
	Days(ctx context.Context) ([]time.Time, error)
}

// CourseRepo manages the course catalog.
type CourseRepo interface {
	// Upsert creates or replaces a course by ID.
	Upsert(ctx context.Context, c learner.Course) error

	// Get returns the course, or nil if it does not exist.
	Get(ctx context.Context, id string) (*learner.Course, error)

	// List returns all courses ordered by title.
	List(ctx context.Context) ([]learner.Course, error)

	// Search returns courses whose title or description contains term,
	// case-insensitively.
	Search(ctx context.Context, term string) ([]learner.Course, error)

	// SearchVideos returns course videos whose title or description contains
	// term, case-insensitively, up to limit.
	SearchVideos(ctx context.Context, term string, limit int) ([]learner.Video, error)

	// CatalogVersion returns the version of the last imported catalog, or "".
	CatalogVersion(ctx context.Context) (string, error)

	// SetCatalogVersion stores the version of the imported catalog.
	SetCatalogVersion(ctx context.Context, version string) error
}
