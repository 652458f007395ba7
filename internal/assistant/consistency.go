package assistant

import (
	"fmt"

	"github.com/abhisek/coursebuddy/internal/tone"
)

// StreakBand classifies the number of active learning days.
type StreakBand int

const (
	StreakNone     StreakBand = iota // 0
	StreakStarting                   // 1-6
	StreakBuilding                   // 7-13
	StreakSteady                     // 14-29
	StreakMaster                     // 30 and above
)

// StreakBandFor returns the band a day count falls in.
func StreakBandFor(days int) StreakBand {
	switch {
	case days >= 30:
		return StreakMaster
	case days >= 14:
		return StreakSteady
	case days >= 7:
		return StreakBuilding
	case days >= 1:
		return StreakStarting
	default:
		return StreakNone
	}
}

func respondConsistency(t *turn) ResponsePayload {
	days := t.dc.Consistency.ActiveDayCount
	var text string

	switch StreakBandFor(days) {
	case StreakMaster:
		text = fmt.Sprintf(`🔥 **Incredible dedication, %s!**

You have learned on **%d days**.

🏆 **Consistency master**

Learners who keep this kind of rhythm:
%s

Keep the momentum going! 🌟`, t.name(), days, bullets(
			"remember more of what they study",
			"connect concepts faster",
			"turn learning into a lasting habit",
		))

	case StreakSteady:
		text = fmt.Sprintf(`⚡ **Great momentum, %s!**

You have learned on **%d days**.

🎯 **What you are building:**
Two weeks of regular practice shows real commitment.

📊 **What you gain:**
%s

💡 **Next milestone:**
Aim for 30 days. You are more than halfway there!

Keep up the excellent work! 💪`, t.name(), days, bullets(
			"Better retention",
			"Stronger links between concepts",
			"Sharper problem solving",
			"More confidence",
		))

	case StreakBuilding:
		text = fmt.Sprintf(`🎯 **Building momentum, %s!**

You have learned on **%d days**.

🌱 **Nice routine:**
A full week of practice is a strong start.

💡 **Tips:**
%s

🎯 **Challenge:**
Can you reach 14 days? 📚`, t.name(), days, bullets(
			"Study at the same time each day",
			"Set a small daily minimum (15 minutes)",
			"Track your progress",
			"Reward yourself at milestones",
		))

	case StreakStarting:
		text = fmt.Sprintf(`🌱 **Starting strong, %s!**

Active days so far: **%d**

💡 **Building the habit:**
%s

📊 **Why it matters:**
Short daily sessions beat occasional long ones. They bring better retention, faster progress and more stars and credits.

Let's grow your streak together! 🚀`, t.name(), days, bullets(
			"Start small: 10-15 minutes a day",
			"Pick a fixed time",
			"Make it non-negotiable",
			"Celebrate each day",
		))

	default:
		text = fmt.Sprintf(`%s, let's build your learning consistency! 📅

🎯 **Why daily practice works:**
%s

💡 **Your consistency plan:**

**Week 1: Foundation**
%s

**Week 2: Building**
%s

**Week 3 and beyond: Mastery**
%s

Start today with one quiz or one video. I'll help you keep track! 💪`, t.name(),
			bullets(
				"Better long-term memory",
				"Faster skill development",
				"Better quiz results and more credits",
			),
			bullets("10-15 minutes daily", "Same time each day", "One video or quiz"),
			bullets("20-30 minutes daily", "Mix videos and quizzes", "Track your progress"),
			bullets("30+ minutes daily", "Advanced topics", "Teach others"),
		)
	}

	return ResponsePayload{Text: text, Tone: tone.Motivational}
}
