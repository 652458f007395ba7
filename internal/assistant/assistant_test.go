package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

type fakeSearcher struct {
	results []resources.ResourceItem
	queries []string
	limits  []int
}

func (f *fakeSearcher) SearchVideos(_ context.Context, query string, limit int) []resources.ResourceItem {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.results
}

func baseContext() learner.DecisionContext {
	return learner.Aggregate(learner.Inputs{
		Profile: &learner.Profile{
			Name:          "Ada",
			Interests:     []string{"go", "rust", "sql"},
			LearningStyle: "visual",
		},
	})
}

func withPerf(dc learner.DecisionContext, avg, quizzes int) learner.DecisionContext {
	dc.Performance.AverageScore = avg
	dc.Performance.TotalQuizzes = quizzes
	return dc
}

func sampleCourse() *learner.CourseFocus {
	return &learner.CourseFocus{
		Title:          "Recursion 101",
		Description:    "Functions that call themselves.",
		Difficulty:     1,
		Credits:        10,
		RecommendedFor: []string{"beginners"},
		Materials:      []learner.Material{{Title: "Base cases"}, {Title: "Call stacks"}},
		Videos: []learner.Video{
			{Title: "v1", Description: "d1", URL: "u1"},
			{Title: "v2", Description: "d2", URL: "u2"},
			{Title: "v3", Description: "d3", URL: "u3"},
			{Title: "v4", Description: "d4", URL: "u4"},
		},
		QuestionCount: 5,
	}
}

func synth(msg string, dc learner.DecisionContext) ResponsePayload {
	return NewSynthesizer(&fakeSearcher{}).Synthesize(context.Background(), msg, dc)
}

func TestScenario_StuckLowScore(t *testing.T) {
	p := synth("I'm stuck on this", withPerf(baseContext(), 40, 5))

	assert.Equal(t, RuleStruggle, p.Rule)
	assert.Equal(t, tone.Motivational, p.Tone)
	assert.Empty(t, p.Resources)
	assert.Contains(t, p.Text, "5 quizzes")
}

func TestScenario_WhatIsWithCourse(t *testing.T) {
	dc := baseContext()
	dc.Course = sampleCourse()

	p := synth("what is recursion", dc)

	assert.Equal(t, RuleCourseOverview, p.Rule)
	assert.Equal(t, tone.Explanatory, p.Tone)
	assert.NotEmpty(t, p.Resources)
	assert.Contains(t, p.Text, "Beginner")
	assert.Contains(t, p.Text, "Start with the video tutorials")
}

func TestScenario_VideosEmptyProviderNoCourse(t *testing.T) {
	s := &fakeSearcher{}
	p := NewSynthesizer(s).Synthesize(context.Background(), "show me python videos", baseContext())

	assert.Equal(t, RuleVideo, p.Rule)
	assert.Equal(t, tone.Guiding, p.Tone)
	assert.Contains(t, p.Text, "What would you like to learn about?")
	assert.Empty(t, p.Resources)
	require.Len(t, s.queries, 1)
	assert.Equal(t, "python tutorial programming", s.queries[0])
	assert.Equal(t, videoSearchLimit, s.limits[0])
}

func TestVideoTopicPriority(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		course bool
		want   string
	}{
		{"course title wins", "python video please", true, "Recursion 101 tutorial programming"},
		{"keyword", "any rust tutorial?", false, "rust tutorial programming"},
		{"first keyword in list order", "javascript or python video", false, "python tutorial programming"},
		{"first interest", "show me a video", false, "go tutorial programming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := baseContext()
			if tt.course {
				dc.Course = sampleCourse()
			}
			s := &fakeSearcher{}
			NewSynthesizer(s).Synthesize(context.Background(), tt.msg, dc)
			require.Len(t, s.queries, 1)
			assert.Equal(t, tt.want, s.queries[0])
		})
	}
}

func TestVideo_NoTopicSkipsSearch(t *testing.T) {
	dc := learner.Aggregate(learner.Inputs{})
	s := &fakeSearcher{}
	p := NewSynthesizer(s).Synthesize(context.Background(), "I want to watch something", dc)

	assert.Empty(t, s.queries)
	assert.Equal(t, tone.Guiding, p.Tone)
}

func TestVideo_ResultsCappedAtThree(t *testing.T) {
	long := strings.Repeat("x", 150)
	s := &fakeSearcher{results: []resources.ResourceItem{
		{Kind: resources.KindVideo, Title: "a", Description: long},
		{Kind: resources.KindVideo, Title: "b"},
		{Kind: resources.KindVideo, Title: "c"},
		{Kind: resources.KindVideo, Title: "d"},
	}}
	p := NewSynthesizer(s).Synthesize(context.Background(), "go tutorial", baseContext())

	assert.Equal(t, tone.Explanatory, p.Tone)
	require.Len(t, p.Resources, 3)
	assert.Equal(t, "c", p.Resources[2].Title)
	assert.Contains(t, p.Text, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, p.Text, strings.Repeat("x", 101))
}

func TestVideo_FallsBackToCourseVideos(t *testing.T) {
	dc := baseContext()
	dc.Course = sampleCourse()

	p := synth("any videos?", dc)

	assert.Equal(t, tone.Explanatory, p.Tone)
	require.Len(t, p.Resources, 3)
	assert.Equal(t, "u1", p.Resources[0].URL)
}

func TestVideo_NilSearcher(t *testing.T) {
	p := NewSynthesizer(nil).Synthesize(context.Background(), "python video", baseContext())
	assert.Equal(t, tone.Guiding, p.Tone)
}

func TestProgress_OnboardingWhenNoQuizzes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dc := withPerf(baseContext(), rapid.IntRange(0, 100).Draw(rt, "avg"), 0)
		p := synth("how am i doing?", dc)
		if p.Rule != RuleProgress || p.Tone != tone.Guiding {
			rt.Fatalf("got rule %q tone %q", p.Rule, p.Tone)
		}
		if !strings.Contains(p.Text, "Welcome to your learning journey") {
			rt.Fatalf("expected onboarding variant, got %q", p.Text)
		}
	})
}

func TestScoreBandsExhaustive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		avg := rapid.IntRange(0, 100).Draw(rt, "avg")
		b := ScoreBandFor(avg)
		matches := 0
		if avg < 60 && b == BandEncouragement {
			matches++
		}
		if avg >= 60 && avg <= 74 && b == BandDeveloping {
			matches++
		}
		if avg >= 75 && avg <= 89 && b == BandStrong {
			matches++
		}
		if avg >= 90 && b == BandMastery {
			matches++
		}
		if matches != 1 {
			rt.Fatalf("avg %d mapped to %s", avg, b)
		}
	})
}

func TestProgress_BandCopy(t *testing.T) {
	tests := []struct {
		avg       int
		heading   string
		resources int
	}{
		{95, "Outstanding work", 1},
		{90, "Outstanding work", 1},
		{89, "Great progress", 2},
		{75, "Great progress", 2},
		{74, "Solid effort", 3},
		{60, "Solid effort", 3},
		{59, "Every expert started here", 2},
		{0, "Every expert started here", 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.avg), func(t *testing.T) {
			p := synth("show my stats", withPerf(baseContext(), tt.avg, 3))
			assert.Equal(t, tone.Motivational, p.Tone)
			assert.Contains(t, p.Text, tt.heading)
			assert.Contains(t, p.Text, fmt.Sprintf("**%d%%**", tt.avg))
			assert.Len(t, p.Resources, tt.resources)
		})
	}
}

func TestConsistencyBands(t *testing.T) {
	tests := []struct {
		days    int
		band    StreakBand
		heading string
	}{
		{0, StreakNone, "let's build your learning consistency"},
		{1, StreakStarting, "Starting strong"},
		{6, StreakStarting, "Starting strong"},
		{7, StreakBuilding, "Building momentum"},
		{13, StreakBuilding, "Building momentum"},
		{14, StreakSteady, "Great momentum"},
		{29, StreakSteady, "Great momentum"},
		{30, StreakMaster, "Incredible dedication"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.days), func(t *testing.T) {
			assert.Equal(t, tt.band, StreakBandFor(tt.days))
			dc := baseContext()
			dc.Consistency.ActiveDayCount = tt.days
			p := synth("what's my streak", dc)
			assert.Equal(t, RuleConsistency, p.Rule)
			assert.Equal(t, tone.Motivational, p.Tone)
			assert.Contains(t, p.Text, tt.heading)
		})
	}
}

func TestCourseRulesRequireFocus(t *testing.T) {
	p := synth("list the reading material", baseContext())
	assert.NotEqual(t, RuleCourseMaterial, p.Rule)

	p = synth("quiz me", baseContext())
	assert.NotEqual(t, RuleCourseQuiz, p.Rule)
}

func TestCourseMaterials(t *testing.T) {
	dc := baseContext()
	dc.Course = sampleCourse()

	p := synth("show the reading material", dc)
	assert.Equal(t, RuleCourseMaterial, p.Rule)
	assert.Equal(t, tone.Explanatory, p.Tone)
	assert.Contains(t, p.Text, "1. **Base cases**")
	require.Len(t, p.Resources, 2)
	assert.Equal(t, resources.KindMaterial, p.Resources[0].Kind)

	dc.Course.Materials = nil
	p = synth("show the reading material", dc)
	assert.Equal(t, tone.Guiding, p.Tone)
	assert.Contains(t, p.Text, "still being prepared")
	assert.Empty(t, p.Resources)
}

func TestCourseQuiz(t *testing.T) {
	dc := baseContext()
	dc.Course = sampleCourse()

	p := synth("quiz time", dc)
	assert.Equal(t, RuleCourseQuiz, p.Rule)
	assert.Contains(t, p.Text, "**5 questions**")
	require.Len(t, p.Resources, 1)
	assert.Equal(t, resources.KindQuiz, p.Resources[0].Kind)

	dc.Course.QuestionCount = 0
	p = synth("quiz time", dc)
	assert.Contains(t, p.Text, "quiz is still being prepared")
	assert.Empty(t, p.Resources)
}

func TestStudyPathVariants(t *testing.T) {
	for style, want := range map[string]string{
		"visual":   "Start with the video tutorials",
		"reading":  "Begin with the course materials",
		"adaptive": "Combine videos and materials",
		"kinetic":  "Combine videos and materials",

		"reading/writing": "Begin with the course materials",
		"Visual learner":  "Start with the video tutorials",
	} {
		dc := baseContext()
		dc.Learner.LearningStyle = style
		dc.Course = sampleCourse()
		p := synth("explain this", dc)
		assert.Contains(t, p.Text, want, style)
	}
}

func TestStudyStrategyUsesTwoInterests(t *testing.T) {
	p := synth("give me study tips", baseContext())
	assert.Equal(t, RuleStudyStrategy, p.Rule)
	assert.Contains(t, p.Text, "Concentrate on: go and rust")
	assert.NotContains(t, p.Text, "sql")
}

func TestGoals(t *testing.T) {
	p := synth("help me set a goal", baseContext())
	assert.Equal(t, RuleGoals, p.Rule)
	assert.Contains(t, p.Text, "SMART")

	dc := baseContext()
	dc.Learner.Goals = []string{"ship a CLI", "learn SQL"}
	p = synth("my goal", dc)
	assert.Contains(t, p.Text, "1. ship a CLI")
	assert.Contains(t, p.Text, "2. learn SQL")
	assert.Contains(t, p.Text, "Just starting")
}

func TestRecommendationTiers(t *testing.T) {
	tests := []struct {
		avg, quizzes int
		want         RecommendationTier
	}{
		{50, 2, TierReinforce},
		{69, 1, TierReinforce},
		{0, 0, TierBalance},
		{70, 3, TierBalance},
		{79, 3, TierBalance},
		{80, 3, TierAdvance},
		{100, 9, TierAdvance},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecommendationTierFor(tt.avg, tt.quizzes), "avg=%d quizzes=%d", tt.avg, tt.quizzes)
	}

	p := synth("what should i do next", withPerf(baseContext(), 85, 4))
	assert.Equal(t, RuleRecommendation, p.Rule)
	assert.Contains(t, p.Text, "advanced course")
	assert.Len(t, p.Resources, 2)
}

func TestGratitude(t *testing.T) {
	dc := baseContext()
	dc.Performance.Stars = 7
	p := synth("thanks!", dc)
	assert.Equal(t, RuleGratitude, p.Rule)
	assert.Contains(t, p.Text, "**7 stars**")
}

func TestDefault(t *testing.T) {
	p := synth("hello there", baseContext())
	assert.Equal(t, RuleDefault, p.Rule)
	assert.Equal(t, tone.Guiding, p.Tone)
	assert.Len(t, p.Resources, 3)
	assert.Contains(t, p.Text, "Ada")
	assert.Contains(t, p.Text, "Ready to start?")
}

func TestRuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		RuleProgress, RuleVideo, RuleConsistency, RuleCourseOverview, RuleCourseMaterial,
		RuleCourseQuiz, RuleStudyStrategy, RuleStruggle, RuleGoals, RuleRecommendation,
		RuleGratitude, RuleDefault,
	}, RuleNames())

	// Progress beats video, video beats struggle.
	assert.Equal(t, RuleProgress, synth("progress video", baseContext()).Rule)
	assert.Equal(t, RuleVideo, synth("this is hard, any video?", baseContext()).Rule)
}

func TestSynthesizeAlwaysValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		msg := rapid.String().Draw(rt, "msg")
		dc := withPerf(baseContext(), rapid.IntRange(0, 100).Draw(rt, "avg"), rapid.IntRange(0, 50).Draw(rt, "n"))
		p := synth(msg, dc)
		if !p.Tone.Valid() || p.Text == "" || p.Rule == "" || p.Resources == nil {
			rt.Fatalf("invalid payload %+v", p)
		}
	})
}

func TestFormat(t *testing.T) {
	in := "Title\n\n\n\n•item\n•   other  \n1.first\n2.   second\n3.5 hours"
	want := "Title\n\n• item\n• other\n1. first\n2. second\n3.5 hours"
	assert.Equal(t, want, Format(in))
}

func TestWelcome(t *testing.T) {
	w := Welcome("Ada")
	assert.Equal(t, tone.Guiding, w.Tone)
	assert.True(t, strings.HasPrefix(w.Text, "Hi Ada"))
}
