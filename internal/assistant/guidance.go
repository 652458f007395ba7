package assistant

import (
	"fmt"
	"strings"

	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

func respondStudyStrategy(t *turn) ResponsePayload {
	l := t.dc.Learner
	focus := "Explore the courses that interest you"
	if len(l.Interests) > 0 {
		focus = "Concentrate on: " + strings.Join(firstN(l.Interests, 2), " and ")
	}

	text := fmt.Sprintf(`🎓 **Learning strategy for %s**

Built around your **%s** learning style:

📚 **Daily routine (60 minutes):**

**1. Prepare (10 min)**
%s

**2. Learn actively (25 min)**
%s

**3. Reinforce (15 min)**
%s

**4. Practise (15 min)**
%s

**5. Reflect (5 min)**
%s

💡 **Techniques that work:**

**Pomodoro:** 25 minutes of focus, 5 minutes of rest, a longer break after four rounds.
**Active recall:** close the material and explain the idea from memory.
**Spaced repetition:** review after 1, 3, 7 and 30 days.

🎯 **Your focus:**
%s

Which area do you want to improve? 🚀`, t.name(), l.LearningStyle,
		bullets("Review the course objectives", "Set a goal for the session"),
		bullets("Watch 2-3 tutorials", "Pause and take notes", "Code along with the examples"),
		bullets("Read the course materials", "Summarise each concept"),
		bullets("Take a practice quiz", "Apply the concepts to a problem"),
		bullets("Note what you learned", "Plan the next session"),
		focus,
	)
	return ResponsePayload{Text: text, Tone: tone.Guiding}
}

// respondStruggle reports the classifier's tone, which is motivational for
// every message that reaches it.
func respondStruggle(t *turn) ResponsePayload {
	text := fmt.Sprintf(`%s, learning can be tough, and asking for help is exactly the right move! 💪

🌟 **Keep in mind:**
%s

💡 **Let's break it down together:**

**Step 1: Pin it down**
Tell me exactly which concept is giving you trouble.

**Step 2: Learn it another way**
I'll explain it differently and find videos on that exact topic.

**Step 3: Practise**
We'll work through examples until it clicks.

**Step 4: Build confidence**
Start with easier problems and step up gradually.

🎯 **Adjustments that help:**
%s

What concept should we tackle first? 🚀`, t.name(),
		bullets(
			"Every expert was once a beginner",
			"Mistakes mean you are trying",
			"Plateaus are a normal part of progress",
			fmt.Sprintf("You have already completed %d quizzes, that is real dedication!", t.dc.Performance.TotalQuizzes),
		),
		bullets(
			"Slow the videos down if needed",
			"Split the topic into smaller chunks",
			"Say \"I can't do this yet\"",
			"Ask questions without hesitation",
		))
	return ResponsePayload{Text: text, Tone: t.tone}
}

func respondGoals(t *turn) ResponsePayload {
	l := t.dc.Learner
	if len(l.Goals) == 0 {
		text := fmt.Sprintf(`🎯 **Setting clear goals, %s**

Clear goals are the first step to success!

💡 **Goal-setting framework:**

**1. Find your why**
%s

**2. Make it SMART**
%s

**3. Break it down**
%s

📚 **Example:**
**Long-term:** "Become a full-stack developer"
**Medium-term:** "Finish 5 web development courses"
**Short-term:** "Complete the JavaScript course this month"
**Daily:** "Watch 2 videos and take 1 quiz"

Once your goals are clear I can recommend courses, find tutorials and plan milestones.

What would you like to achieve? 🚀`, t.name(),
			bullets("What motivates you?", "What problem do you want to solve?", "Which career path interests you?"),
			bullets("**S**pecific", "**M**easurable", "**A**chievable", "**R**elevant", "**T**ime-bound"),
			bullets("Long-term (6-12 months)", "Medium-term (1-3 months)", "Short-term (1-4 weeks)", "Daily actions"),
		)
		return ResponsePayload{Text: text, Tone: tone.Guiding}
	}

	level := "Just starting"
	if t.dc.Performance.AverageScore > 0 {
		level = fmt.Sprintf("%d%% average", t.dc.Performance.AverageScore)
	}

	text := fmt.Sprintf(`🎯 **Your learning goals, %s**

**Your goals:**
%s

📊 **Where you are:**
%s

🚀 **Roadmap:**

**Phase 1: Foundation (weeks 1-2)**
%s

**Phase 2: Development (weeks 3-4)**
%s

**Phase 3: Mastery (week 5 onwards)**
%s

💡 **Start with courses in:** %s

Which goal should we plan in detail first? 🌟`, t.name(), numbered(l.Goals),
		bullets(
			"Skills in progress: "+joinOr(l.Interests, ", ", "multiple areas"),
			"Performance: "+level,
			fmt.Sprintf("Credits: %d", t.dc.Performance.TotalCredits),
			fmt.Sprintf("Active days: %d", t.dc.Consistency.ActiveDayCount),
		),
		bullets("Pick courses that match your goals", "Take 3 quizzes a week", "Build a daily habit"),
		bullets("Go deep on the core topics", "Reach 80%+ quiz scores", "Keep the daily rhythm"),
		bullets("Tackle advanced topics", "Apply what you know in a project", "Set the next goal"),
		joinOr(firstN(l.Interests, 2), " and ", "your areas of interest"),
	)
	return ResponsePayload{Text: text, Tone: tone.Guiding}
}

// RecommendationTier selects the recommendation list for a learner.
type RecommendationTier int

const (
	TierReinforce RecommendationTier = iota // average below 70 with at least one quiz
	TierBalance
	TierAdvance // average 80 and above
)

// RecommendationTierFor picks the tier from the quiz average and count.
func RecommendationTierFor(avg, quizzes int) RecommendationTier {
	switch {
	case avg < 70 && quizzes > 0:
		return TierReinforce
	case avg >= 80:
		return TierAdvance
	default:
		return TierBalance
	}
}

var recommendationLists = map[RecommendationTier][]string{
	TierReinforce: {
		"📚 Review the materials for the topics you found hardest",
		"🎥 Ask me for videos on the difficult concepts",
		"📝 Take practice quizzes to reinforce what you learned",
		"💡 Aim for understanding, not memorising",
	},
	TierAdvance: {
		"🚀 Take on an advanced course",
		"🎯 Explore a new topic in your interest areas",
		"⭐ Go for perfect scores to maximise credits",
		"👥 Teach a concept to someone else",
	},
	TierBalance: {
		"📖 Balance videos with reading",
		"✍️ Keep organised notes",
		"🔄 Revisit earlier quiz questions",
		"🎥 Watch videos at your own pace",
	},
}

func respondRecommendation(t *turn) ResponsePayload {
	perf := t.dc.Performance
	list := recommendationLists[RecommendationTierFor(perf.AverageScore, perf.TotalQuizzes)]

	streak := "learning consistency"
	if days := t.dc.Consistency.ActiveDayCount; days > 0 {
		streak = fmt.Sprintf("%d-day streak", days)
	}

	text := fmt.Sprintf(`🎓 **Recommendations for %s**

Based on your profile and results:

%s

💡 **Next steps:**

**Right now:**
%s

**This week:**
%s

🎯 **Today:** pick one course, watch two videos and take a quiz.

Which area would you like to explore? 🚀`, t.name(), numbered(list),
		bullets(
			"Explore courses in: "+joinOr(firstN(t.dc.Learner.Interests, 3), ", ", "your areas of interest"),
			"Keep up your "+streak,
			fmt.Sprintf("Aim for %d total credits", perf.TotalCredits+50),
		),
		bullets("Pick one course that excites you", "Watch 2-3 videos a day", "Take at least one quiz"),
	)

	return ResponsePayload{
		Text: text,
		Tone: tone.Guiding,
		Resources: []resources.ResourceItem{
			resources.Video("Recommended Video Tutorials", "Ask me for videos on any topic"),
			resources.Quiz("Practice Quizzes", "Test and improve"),
		},
	}
}

func respondGratitude(t *turn) ResponsePayload {
	stars := "🌱 Keep learning and growing!"
	if n := t.dc.Performance.Stars; n > 0 {
		stars = fmt.Sprintf("🌟 You've already earned **%d stars**, keep it up!", n)
	}

	text := fmt.Sprintf(`You're very welcome, %s! 😊

I'm always here to help you learn.

%s

Let's keep going! 🚀`, t.name(), stars)
	return ResponsePayload{Text: text, Tone: tone.Motivational}
}

func respondDefault(t *turn) ResponsePayload {
	perf := t.dc.Performance
	closing := "🚀 **Ready to start?** Pick a course and let's begin!"
	if perf.TotalQuizzes > 0 {
		closing = fmt.Sprintf("🌟 **By the way:** %d quizzes completed with a %d%% average. Nice work!",
			perf.TotalQuizzes, perf.AverageScore)
	}

	text := fmt.Sprintf(`Good question, %s! 🤔

Here is what I can help with:

🎥 **Video tutorials**
Name a topic and I'll find tutorials for it.

📚 **Course content**
Ask about a course's materials, videos or quiz.

📝 **Progress**
Ask how you're doing, about your streak or what to do next.

💡 **Try asking about:**
%s

%s

What would you like to explore? 📖`, t.name(), bullets(
		"Explaining a concept from your course",
		"Study strategies",
		"Your goals",
		"Recommendations",
	), closing)

	return ResponsePayload{
		Text: text,
		Tone: tone.Guiding,
		Resources: []resources.ResourceItem{
			resources.Video("Video Search", "Ask me for videos on any topic"),
			resources.Material("Course Materials", "Detailed study content"),
			resources.Quiz("Practice Quizzes", "Test your knowledge"),
		},
	}
}
