package learner

import "time"

// Learning styles recognised by the assistant. Anything else is treated as
// a mixed learner when tailoring study paths.
const (
	StyleVisual   = "visual"
	StyleReading  = "reading"
	StyleAdaptive = "adaptive"
)

// DefaultName is used when the learner has not told us their name.
const DefaultName = "there"

// Profile is the learner's onboarding record as held by the profile store.
type Profile struct {
	Name          string
	Email         string
	Interests     []string
	Goals         []string
	LearningStyle string
	SkillLevel    int // 1-5
	UpdatedAt     time.Time
}

// PerformanceStats is the analytics store's aggregate over quiz results.
type PerformanceStats struct {
	AverageScore int // 0-100, rounded
	TotalQuizzes int
	SuccessRate  int // percent of quizzes passed
	Stars        int
	TotalCredits int
}

// Material is a piece of reading content attached to a course.
type Material struct {
	Title   string
	Content string
}

// Video is an embedded tutorial video.
type Video struct {
	Title       string
	Description string
	URL         string
}

// Question is a single quiz question of a course.
type Question struct {
	Text    string
	Options []string
	Answer  int
}

// Course is the course store's full record, including content.
type Course struct {
	ID             string
	Title          string
	Description    string
	Difficulty     int // 0-5
	Credits        int
	RecommendedFor []string
	Materials      []Material
	Videos         []Video
	Questions      []Question
}

// Inputs carries whatever the collaborators currently hold. Nil fields mean
// "not loaded yet" and are replaced by defaults during aggregation.
type Inputs struct {
	Profile        *Profile
	Performance    *PerformanceStats
	EngagementDays []time.Time
	Course         *Course
}

// LearnerSnapshot is the per-request view of the learner profile.
type LearnerSnapshot struct {
	Name          string
	LearningStyle string
	Goals         []string
	Interests     []string
	SkillLevel    int
}

// PerformanceSnapshot is the per-request view of quiz performance.
type PerformanceSnapshot struct {
	AverageScore int
	TotalQuizzes int
	TotalCredits int
	Stars        int
}

// ConsistencySnapshot is the per-request view of engagement history.
type ConsistencySnapshot struct {
	ActiveDayCount int
}

// CourseFocus is the course the session is scoped to, if any.
type CourseFocus struct {
	Title          string
	Description    string
	Difficulty     int
	Credits        int
	RecommendedFor []string
	Materials      []Material
	Videos         []Video
	QuestionCount  int
}

// DecisionContext is everything the synthesizer knows about the learner for
// one response. Course is nil when the session is not scoped to a course.
type DecisionContext struct {
	Learner     LearnerSnapshot
	Performance PerformanceSnapshot
	Consistency ConsistencySnapshot
	Course      *CourseFocus
}
