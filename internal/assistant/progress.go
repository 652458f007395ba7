package assistant

import (
	"fmt"

	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

// ScoreBand classifies a quiz average.
type ScoreBand int

const (
	BandEncouragement ScoreBand = iota // below 60
	BandDeveloping                     // 60-74
	BandStrong                         // 75-89
	BandMastery                        // 90 and above
)

// ScoreBandFor returns the band an average score falls in.
func ScoreBandFor(avg int) ScoreBand {
	switch {
	case avg >= 90:
		return BandMastery
	case avg >= 75:
		return BandStrong
	case avg >= 60:
		return BandDeveloping
	default:
		return BandEncouragement
	}
}

func (b ScoreBand) String() string {
	switch b {
	case BandMastery:
		return "mastery"
	case BandStrong:
		return "strong"
	case BandDeveloping:
		return "developing"
	default:
		return "encouragement"
	}
}

func respondProgress(t *turn) ResponsePayload {
	perf := t.dc.Performance
	if perf.TotalQuizzes == 0 {
		return progressOnboarding(t)
	}

	stats := fmt.Sprintf(`• Average score: **%d%%**
• Quizzes completed: **%d**
• Credits earned: **%d**
• Stars collected: **%d** ⭐
• Learning streak: **%d days**`,
		perf.AverageScore, perf.TotalQuizzes, perf.TotalCredits, perf.Stars, t.dc.Consistency.ActiveDayCount)

	var text string
	var items []resources.ResourceItem

	switch ScoreBandFor(perf.AverageScore) {
	case BandMastery:
		text = fmt.Sprintf(`🌟 **Outstanding work, %s!**

You are showing real mastery of what you have studied.

📊 **Where you stand:**
%s

💎 **What this tells us:**
Your results put you among the strongest learners here. You understand the material and you keep it.

🎯 **Keep stretching:**
%s

Keep pushing the boundaries! 🚀`, t.name(), stats, bullets(
			"Take on advanced topics",
			"Branch out into related subjects",
			"Explain what you know to someone else",
			"Set a new, more ambitious goal",
		))
		items = []resources.ResourceItem{
			resources.Quiz("Advanced Challenge Quizzes", "Test your mastery with harder questions"),
		}

	case BandStrong:
		text = fmt.Sprintf(`🎯 **Great progress, %s!**

You are moving quickly through your learning path.

📊 **Your numbers:**
%s

✨ **What this tells us:**
Your scores show a solid grasp of the core ideas. A few habits will take you to the next level.

💡 **Suggestions:**
%s

Excellence is within reach! 📈`, t.name(), stats, bullets(
			"Review course materials before each quiz",
			"Use the video tutorials to reinforce concepts",
			"Revisit topics where you scored under 80%",
			"Explain each concept in your own words",
		))
		items = []resources.ResourceItem{
			resources.Video("Course Video Tutorials", "Reinforce concepts with visual learning"),
			resources.Material("Course Materials", "Review key concepts and examples"),
		}

	case BandDeveloping:
		text = fmt.Sprintf(`💪 **Solid effort, %s!**

Your foundation is taking shape.

📊 **Your numbers:**
%s

🎓 **What this tells us:**
You have the fundamentals. Adjusting how you study will make the next steps easier.

🎯 **Study plan:**
%s

Every step forward counts! 📚`, t.name(), stats, bullets(
			"Spend extra time with the video tutorials",
			"Take detailed notes as you go",
			"Split large topics into smaller pieces",
			"Rewatch the videos on tricky concepts",
			"Warm up with easier quizzes first",
		))
		items = []resources.ResourceItem{
			resources.Video("Foundational Video Tutorials", "Build a strong understanding of the basics"),
			resources.Material("Study Materials", "Review and take detailed notes"),
			resources.Quiz("Practice Quizzes", "Reinforce learning with practice"),
		}

	default:
		text = fmt.Sprintf(`🌱 **Every expert started here, %s!**

Learning is a journey and you are already on the road.

📊 **Your numbers:**
%s

💡 **Your learning plan:**
Don't be discouraged. With practice and the right approach the scores will follow.

**Phase 1: Foundation**
%s

**Phase 2: Active practice**
%s

🎯 **Remember:**
%s

Which topic would you like to start with?`, t.name(), stats,
			numbered([]string{
				"Watch the course videos more than once",
				"Keep organised notes",
				"Start with easier quizzes to build confidence",
				"Ask me about any concept that is unclear",
			}),
			numbered([]string{
				"Explain concepts out loud",
				"Write a small example for each topic",
				"Review materials for 15-20 minutes a day",
				"Celebrate small wins",
			}),
			bullets(
				"Progress beats perfection",
				"Mistakes are part of learning",
				"Consistency beats intensity",
				"You've got this! 🚀",
			))
		items = []resources.ResourceItem{
			resources.Video("Beginner-Friendly Tutorials", "Start with the fundamentals"),
			resources.Material("Basic Course Materials", "Build your foundation"),
		}
	}

	return ResponsePayload{Text: text, Tone: tone.Motivational, Resources: items}
}

func progressOnboarding(t *turn) ResponsePayload {
	l := t.dc.Learner
	text := fmt.Sprintf(`Welcome to your learning journey, %s! 🎓

You haven't taken a quiz yet, so let's set you up.

🎯 **Your learning profile:**
%s

📚 **Getting started:**

**Step 1: Explore**
Browse the courses that match your interests and goals.

**Step 2: Learn**
Watch the video tutorials and read the materials.

**Step 3: Practice**
Take quizzes to track your progress and earn rewards.

**Step 4: Grow**
Collect stars and credits as you advance.

💡 **Tip:** Start with a topic you enjoy. Enthusiasm keeps you going.

What would you like to learn first?`, t.name(), bullets(
		"Interests: "+joinOr(l.Interests, ", ", "explore various topics"),
		"Learning style: "+l.LearningStyle,
		"Goals: "+joinOr(l.Goals, ", ", "set your goals in your profile"),
	))

	return ResponsePayload{
		Text: text,
		Tone: tone.Guiding,
		Resources: []resources.ResourceItem{
			resources.Video("Getting Started Videos", "Begin your learning journey"),
		},
	}
}
