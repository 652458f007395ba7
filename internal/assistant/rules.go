package assistant

import (
	"context"

	"github.com/abhisek/coursebuddy/internal/tone"
)

// Rule names, in evaluation order.
const (
	RuleProgress       = "progress"
	RuleVideo          = "video"
	RuleConsistency    = "consistency"
	RuleCourseOverview = "course_overview"
	RuleCourseMaterial = "course_materials"
	RuleCourseQuiz     = "course_quiz"
	RuleStudyStrategy  = "study_strategy"
	RuleStruggle       = "struggle"
	RuleGoals          = "goals"
	RuleRecommendation = "recommendation"
	RuleGratitude      = "gratitude"
	RuleDefault        = "default"
)

var (
	progressKeywords       = []string{"how am i doing", "progress", "performance", "stats"}
	videoKeywords          = []string{"video", "watch", "tutorial", "youtube"}
	consistencyKeywords    = []string{"consistency", "streak", "engagement"}
	courseOverviewKeywords = []string{"explain", "what is", "how does"}
	materialKeywords       = []string{"material", "resource", "reading"}
	quizKeywords           = []string{"quiz", "test", "question"}
	strategyKeywords       = []string{"how to learn", "study tips", "learn better", "improve"}
	goalKeywords           = []string{"goal", "achieve", "want to learn"}
	recommendKeywords      = []string{"recommend", "suggest", "should i", "what next"}
	gratitudeKeywords      = []string{"thank", "thanks", "appreciate"}
)

type rule struct {
	name    string
	match   func(t *turn) bool
	respond func(ctx context.Context, s *Synthesizer, t *turn) ResponsePayload
}

// rules is evaluated top to bottom. The last entry always matches.
var rules = []rule{
	{RuleProgress, keywords(progressKeywords), static(respondProgress)},
	{RuleVideo, keywords(videoKeywords), respondVideo},
	{RuleConsistency, keywords(consistencyKeywords), static(respondConsistency)},
	{RuleCourseOverview, courseKeywords(courseOverviewKeywords), static(respondCourseOverview)},
	{RuleCourseMaterial, courseKeywords(materialKeywords), static(respondCourseMaterials)},
	{RuleCourseQuiz, courseKeywords(quizKeywords), static(respondCourseQuiz)},
	{RuleStudyStrategy, keywords(strategyKeywords), static(respondStudyStrategy)},
	{RuleStruggle, keywords(tone.StruggleKeywords), static(respondStruggle)},
	{RuleGoals, keywords(goalKeywords), static(respondGoals)},
	{RuleRecommendation, keywords(recommendKeywords), static(respondRecommendation)},
	{RuleGratitude, keywords(gratitudeKeywords), static(respondGratitude)},
	{RuleDefault, func(*turn) bool { return true }, static(respondDefault)},
}

// static adapts a template that needs no I/O.
func static(fn func(t *turn) ResponsePayload) func(context.Context, *Synthesizer, *turn) ResponsePayload {
	return func(_ context.Context, _ *Synthesizer, t *turn) ResponsePayload { return fn(t) }
}

func keywords(kw []string) func(t *turn) bool {
	return func(t *turn) bool { return t.has(kw) }
}

// courseKeywords matches only when the session is scoped to a course.
func courseKeywords(kw []string) func(t *turn) bool {
	return func(t *turn) bool { return t.dc.Course != nil && t.has(kw) }
}

// RuleNames lists the rule names in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
