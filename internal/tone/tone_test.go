package tone

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/abhisek/coursebuddy/internal/learner"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		perf learner.PerformanceSnapshot
		want Tone
	}{
		{"struggle keyword", "I'm stuck on this", learner.PerformanceSnapshot{}, Motivational},
		{"struggle keyword uppercase", "This is DIFFICULT", learner.PerformanceSnapshot{}, Motivational},
		{"give up phrase", "I want to give up", learner.PerformanceSnapshot{AverageScore: 95, TotalQuizzes: 3}, Motivational},
		{"low average with quizzes", "show me something", learner.PerformanceSnapshot{AverageScore: 40, TotalQuizzes: 2}, Motivational},
		{"low average beats explanatory cue", "what is a closure", learner.PerformanceSnapshot{AverageScore: 59, TotalQuizzes: 1}, Motivational},
		{"low average without quizzes", "hello", learner.PerformanceSnapshot{AverageScore: 0, TotalQuizzes: 0}, Guiding},
		{"score at threshold", "hello", learner.PerformanceSnapshot{AverageScore: 60, TotalQuizzes: 4}, Guiding},
		{"explanatory cue", "What is recursion?", learner.PerformanceSnapshot{}, Explanatory},
		{"definition cue", "give me the definition", learner.PerformanceSnapshot{AverageScore: 80, TotalQuizzes: 2}, Explanatory},
		{"default guiding", "recommend a course", learner.PerformanceSnapshot{AverageScore: 85, TotalQuizzes: 2}, Guiding},
		{"empty message", "", learner.PerformanceSnapshot{}, Guiding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.msg, tt.perf); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}

func TestClassify_StruggleAlwaysMotivational(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.String().Draw(t, "prefix")
		suffix := rapid.String().Draw(t, "suffix")
		kw := rapid.SampledFrom(StruggleKeywords).Draw(t, "keyword")
		if rapid.Bool().Draw(t, "upper") {
			kw = strings.ToUpper(kw)
		}
		perf := learner.PerformanceSnapshot{
			AverageScore: rapid.IntRange(0, 100).Draw(t, "avg"),
			TotalQuizzes: rapid.IntRange(0, 50).Draw(t, "quizzes"),
		}

		if got := Classify(prefix+kw+suffix, perf); got != Motivational {
			t.Fatalf("Classify with keyword %q = %q, want motivational", kw, got)
		}
	})
}

func TestClassify_AlwaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := rapid.String().Draw(t, "msg")
		perf := learner.PerformanceSnapshot{
			AverageScore: rapid.IntRange(0, 100).Draw(t, "avg"),
			TotalQuizzes: rapid.IntRange(0, 50).Draw(t, "quizzes"),
		}
		if got := Classify(msg, perf); !got.Valid() {
			t.Fatalf("Classify(%q) returned invalid tone %q", msg, got)
		}
	})
}

func TestToneLabel(t *testing.T) {
	if Motivational.Label() != "Motivational" || Explanatory.Label() != "Explanatory" || Guiding.Label() != "Guiding" {
		t.Error("unexpected tone labels")
	}
	if Tone("other").Label() != "Response" {
		t.Error("unknown tone should label as Response")
	}
}
