package assistant

import (
	"fmt"
	"strings"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

// studyPath is the suggested learning order for a learning style.
func studyPath(style string) string {
	switch learner.NormalizeStyle(style) {
	case learner.StyleVisual:
		return `**Step 1:** Start with the video tutorials (your strength!)
**Step 2:** Read the course materials for detail
**Step 3:** Take notes while watching
**Step 4:** Check yourself with the quiz`
	case learner.StyleReading:
		return `**Step 1:** Begin with the course materials (your strength!)
**Step 2:** Watch the videos to reinforce
**Step 3:** Take detailed notes
**Step 4:** Practise with the quiz`
	default:
		return `**Step 1:** Combine videos and materials
**Step 2:** Alternate between watching and reading
**Step 3:** Keep thorough notes
**Step 4:** Practise with the quiz regularly`
	}
}

func respondCourseOverview(t *turn) ResponsePayload {
	c := t.dc.Course
	text := fmt.Sprintf(`📖 **Deep dive: %s**

%s

🎯 **Course overview:**
%s

💡 **Learning path for %s learners:**

%s

🎓 **Available resources:**
%s

Which part should I explain in more detail? 🤔`,
		c.Title, c.Description,
		bullets(
			"**Level:** "+capitalize(learner.DifficultyLabel(c.Difficulty)),
			fmt.Sprintf("**Credits:** %d 💎", c.Credits),
			"**Recommended for:** "+joinOr(c.RecommendedFor, ", ", "everyone"),
		),
		t.dc.Learner.LearningStyle, studyPath(t.dc.Learner.LearningStyle),
		bullets(
			fmt.Sprintf("%d video tutorials", len(c.Videos)),
			fmt.Sprintf("%d study materials", len(c.Materials)),
			fmt.Sprintf("%d practice questions", c.QuestionCount),
		))

	var items []resources.ResourceItem
	items = append(items, resources.FromVideos(firstN(c.Videos, videosShown))...)
	items = append(items, resources.FromMaterials(c.Materials)...)
	if c.QuestionCount > 0 {
		items = append(items, resources.Quiz(c.Title+" Quiz", "Test your knowledge"))
	}

	return ResponsePayload{Text: text, Tone: tone.Explanatory, Resources: items}
}

func respondCourseMaterials(t *turn) ResponsePayload {
	c := t.dc.Course
	if len(c.Materials) == 0 {
		text := fmt.Sprintf(`The %s materials are still being prepared!

🎥 **Meanwhile:**
The course videos cover every topic, and I can look up more tutorials for any concept.

💡 **I can also:**
%s

What would you like to explore? 🎓`, c.Title, bullets(
			"Find video tutorials",
			"Explain concepts",
			"Suggest study strategies",
			"Answer specific questions",
		))
		return ResponsePayload{Text: text, Tone: tone.Guiding}
	}

	titles := make([]string, len(c.Materials))
	for i, m := range c.Materials {
		titles[i] = "**" + m.Title + "**"
	}

	text := fmt.Sprintf(`📚 **%s study materials**

%s

🎯 **How to study them:**

**Phase 1: Preview (5 min)**
%s

**Phase 2: Active reading (20 min)**
%s

**Phase 3: Reinforcement (10 min)**
%s

**Phase 4: Assessment (10 min)**
%s

Which one would you like to start with? 📖`, c.Title, numbered(titles),
		bullets("Skim the section titles", "Spot the key topics", "Set a goal for the session"),
		bullets("Read one section at a time", "Highlight key concepts", "Write your own examples"),
		bullets("Watch the related videos", "Summarise in your own words"),
		bullets("Take the quiz", "Review your mistakes", "Ask me about anything unclear"),
	)

	items := make([]resources.ResourceItem, len(c.Materials))
	for i, m := range c.Materials {
		items[i] = resources.Material(m.Title, "Course material")
	}
	return ResponsePayload{Text: text, Tone: tone.Explanatory, Resources: items}
}

func respondCourseQuiz(t *turn) ResponsePayload {
	c := t.dc.Course
	if c.QuestionCount == 0 {
		text := fmt.Sprintf(`The %s quiz is still being prepared!

📚 **Focus on learning for now:**
%s

I'll be here when the quiz is ready! 🎓`, c.Title, bullets(
			"Watch the video tutorials",
			"Review the course materials",
			"Take notes",
			"Ask me questions",
		))
		return ResponsePayload{Text: text, Tone: tone.Guiding}
	}

	checklist := strings.Join([]string{
		"✅ Watch at least 2-3 course videos",
		"✅ Review the course materials",
		"✅ Note down the important points",
		"✅ Make sure the core concepts are clear",
	}, "\n")

	text := fmt.Sprintf(`📝 **%s quiz preparation**

The quiz has **%d questions** covering the key concepts.

🎯 **Before you start:**
%s

💡 **During the quiz:**
%s

**Afterwards:**
%s

🎓 **Scoring:**
%s

Ready? Good luck! 🎯`, c.Title, c.QuestionCount, checklist,
		bullets("Read each question carefully", "Take your time", "Review before submitting"),
		bullets("Go over the answers you missed", "Ask me about them", "Retake it to improve your score"),
		bullets("90%+: 3 stars ⭐⭐⭐", "70-89%: 2 stars ⭐⭐", "60-69%: 1 star ⭐"),
	)

	return ResponsePayload{
		Text: text,
		Tone: tone.Guiding,
		Resources: []resources.ResourceItem{
			resources.Quiz(c.Title+" Quiz", fmt.Sprintf("%d questions", c.QuestionCount)),
		},
	}
}
