package tone

import (
	"strings"

	"github.com/abhisek/coursebuddy/internal/learner"
)

// Tone is the rhetorical register of an assistant response.
type Tone string

const (
	Motivational Tone = "motivational"
	Explanatory  Tone = "explanatory"
	Guiding      Tone = "guiding"
)

// LowScoreThreshold is the average score under which a learner with at least
// one quiz is treated as needing encouragement.
const LowScoreThreshold = 60

// StruggleKeywords signal frustration or difficulty.
var StruggleKeywords = []string{
	"stuck", "difficult", "hard", "struggling", "confused", "give up", "frustrated",
}

// ExplanatoryCues signal a definitional or conceptual question.
var ExplanatoryCues = []string{
	"what is", "how does", "explain", "why", "understand", "concept", "mean", "definition",
}

// Label returns the display name for the tone.
func (t Tone) Label() string {
	switch t {
	case Motivational:
		return "Motivational"
	case Explanatory:
		return "Explanatory"
	case Guiding:
		return "Guiding"
	default:
		return "Response"
	}
}

// Valid reports whether t is one of the known tones.
func (t Tone) Valid() bool {
	return t == Motivational || t == Explanatory || t == Guiding
}

// Classify picks the tone for a message. Rules are evaluated in order and the
// first match wins: struggle keywords, then a low quiz average, then
// explanatory cues, else guiding.
func Classify(message string, perf learner.PerformanceSnapshot) Tone {
	lower := strings.ToLower(message)

	if ContainsAny(lower, StruggleKeywords) {
		return Motivational
	}
	if perf.TotalQuizzes > 0 && perf.AverageScore < LowScoreThreshold {
		return Motivational
	}
	if ContainsAny(lower, ExplanatoryCues) {
		return Explanatory
	}
	return Guiding
}

// ContainsAny reports whether s contains any of the substrings.
// Callers lower-case s first.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
