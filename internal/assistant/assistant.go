// Package assistant composes the assistant's replies. A message is matched
// against an ordered rule table; the first matching rule fills its template
// from the learner's decision context.
package assistant

import (
	"context"
	"strings"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/tone"
)

// ResponsePayload is a finished reply. It is never modified after Synthesize
// returns it.
type ResponsePayload struct {
	Text      string                   `json:"text"`
	Tone      tone.Tone                `json:"tone"`
	Resources []resources.ResourceItem `json:"resources"`

	// Rule names the rule that produced the reply.
	Rule string `json:"rule"`
}

// VideoSearcher finds tutorial videos. It never fails; problems surface as
// an empty result.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, limit int) []resources.ResourceItem
}

// Synthesizer turns a message and a decision context into a reply.
type Synthesizer struct {
	videos VideoSearcher
}

// NewSynthesizer creates a Synthesizer. A nil searcher disables live video
// search; course videos are still offered.
func NewSynthesizer(videos VideoSearcher) *Synthesizer {
	return &Synthesizer{videos: videos}
}

// turn is the per-message state shared by the rules.
type turn struct {
	lower string
	dc    learner.DecisionContext
	tone  tone.Tone
}

func (t *turn) has(keywords []string) bool {
	return tone.ContainsAny(t.lower, keywords)
}

func (t *turn) name() string {
	return t.dc.Learner.Name
}

// Synthesize runs the rule table and returns the first matching rule's reply.
// The final text is normalised by Format.
func (s *Synthesizer) Synthesize(ctx context.Context, message string, dc learner.DecisionContext) ResponsePayload {
	t := &turn{
		lower: strings.ToLower(message),
		dc:    dc,
		tone:  tone.Classify(message, dc.Performance),
	}

	for _, r := range rules {
		if !r.match(t) {
			continue
		}
		p := r.respond(ctx, s, t)
		p.Rule = r.name
		p.Text = Format(p.Text)
		if p.Resources == nil {
			p.Resources = []resources.ResourceItem{}
		}
		return p
	}

	// The default rule always matches.
	panic("assistant: rule table has no fallback")
}
