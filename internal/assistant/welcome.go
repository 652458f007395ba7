package assistant

import (
	"fmt"

	"github.com/abhisek/coursebuddy/internal/tone"
)

// Welcome is the greeting that opens an empty conversation.
func Welcome(name string) ResponsePayload {
	text := fmt.Sprintf(`Hi %s, I'm your course buddy! ✨

🧠 **I know your courses**
Ask me to explain a course, list its materials or prepare you for its quiz.

🎯 **I follow your progress**
Ask how you're doing, about your streak or what to study next.

🎥 **I find tutorials**
Name a topic and I'll look up videos for it.

How can I help you today?`, name)
	return ResponsePayload{Text: Format(text), Tone: tone.Guiding, Rule: "welcome"}
}
