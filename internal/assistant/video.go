package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

const (
	// videoSearchLimit is how many results are requested from the provider.
	videoSearchLimit = 5
	// videosShown is how many videos a reply lists.
	videosShown = 3
	// videoDescriptionRunes bounds a listed video description.
	videoDescriptionRunes = 100
)

// TopicKeywords are the subjects recognised in a video request, in priority
// order.
var TopicKeywords = []string{
	"python", "javascript", "java", "c++", "rust", "go", "typescript", "react", "node",
	"machine learning", "ai", "data science", "web development", "programming",
	"blockchain", "cybersecurity",
}

// videoTopic picks the search topic: the focused course title, else the
// first topic keyword in the message, else the learner's first interest.
func videoTopic(t *turn) string {
	if t.dc.Course != nil && strings.TrimSpace(t.dc.Course.Title) != "" {
		return t.dc.Course.Title
	}
	for _, kw := range TopicKeywords {
		if strings.Contains(t.lower, kw) {
			return kw
		}
	}
	if len(t.dc.Learner.Interests) > 0 {
		return t.dc.Learner.Interests[0]
	}
	return ""
}

// VideoQuery builds the provider query for a topic.
func VideoQuery(topic string) string {
	return topic + " tutorial programming"
}

func respondVideo(ctx context.Context, s *Synthesizer, t *turn) ResponsePayload {
	if topic := videoTopic(t); topic != "" && s.videos != nil {
		found := firstN(s.videos.SearchVideos(ctx, VideoQuery(topic), videoSearchLimit), videosShown)
		if len(found) > 0 {
			listing := make([]string, len(found))
			for i, v := range found {
				listing[i] = fmt.Sprintf("**%d. %s**\n   %s", i+1, v.Title, truncate(v.Description, videoDescriptionRunes))
			}
			text := fmt.Sprintf(`🎥 **Video tutorials for %s**

Here is what I found for you:

%s

💡 **How to get the most out of them:**
%s

📚 When you're done, tell me what you learned or ask about anything that was unclear!`,
				topic, strings.Join(listing, "\n\n"), bullets(
					"Watch them in order",
					"Note down the key concepts",
					"Pause and code along with the instructor",
					"Rewatch the parts you find hard",
					"Ask me about any concept",
				))
			return ResponsePayload{Text: text, Tone: tone.Explanatory, Resources: found}
		}
	}

	if c := t.dc.Course; c != nil && len(c.Videos) > 0 {
		top := firstN(c.Videos, videosShown)
		listing := make([]string, len(top))
		for i, v := range top {
			listing[i] = fmt.Sprintf("**%d. %s**\n   %s", i+1, v.Title, v.Description)
		}
		text := fmt.Sprintf(`🎥 **Course videos for %s**

These tutorials come with your current course:

%s

💡 **Using them:**
%s

They were picked for this course's level. Ready to dive in? 📚`,
			c.Title, strings.Join(listing, "\n\n"), bullets(
				"Open the course to play them",
				"Go at your own pace",
				"Take notes on the important concepts",
				"Practice what you learn",
			))
		return ResponsePayload{Text: text, Tone: tone.Explanatory, Resources: resources.FromVideos(top)}
	}

	text := fmt.Sprintf(`🎥 **Video tutorial search**

I can find video tutorials for you. Just tell me:

%s

I'll look up tutorials that fit what you need! 🎓

What would you like to learn about?`, bullets(
		"The topic you want to learn (for example Python, JavaScript or Machine Learning)",
		"Your skill level (beginner, intermediate, advanced)",
		"Any specific concept you are interested in",
	))
	return ResponsePayload{Text: text, Tone: tone.Guiding}
}
