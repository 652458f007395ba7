package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/assistant"
	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/tone"
)

type staticContext struct{}

func (staticContext) Inputs(context.Context, string) learner.Inputs {
	return learner.Inputs{Profile: &learner.Profile{Name: "Ada"}}
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(
		session.Config{StreamTick: time.Millisecond, SettleDelay: time.Millisecond, IdleThreshold: 30},
		session.Deps{Context: staticContext{}, Synth: assistant.NewSynthesizer(nil)},
		"",
	)
	t.Cleanup(s.Close)
	return s
}

func typeText(c *ChatScreen, text string) {
	for _, r := range text {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestInit_OpensPanelAndTakesSeed(t *testing.T) {
	s := newSession(t)
	s.SeedQuestion("  What is recursion?  ", "")

	c := New(s, "Assistant")
	c.Init()

	assert.True(t, s.State().PanelOpen)
	assert.Equal(t, "What is recursion?", c.input.Value())
	_, ok := s.TakeSeed()
	assert.False(t, ok, "seed is consumed")

	c.OnExit()
	assert.False(t, s.State().PanelOpen)
}

func TestEnter_SubmitsAndClearsInput(t *testing.T) {
	s := newSession(t)
	c := New(s, "Assistant")
	c.Init()

	typeText(c, "thank you")
	c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Empty(t, c.input.Value())

	require.Eventually(t, func() bool {
		h := s.State().History
		return len(h) == 3 && h[2].Delivery == session.DeliveryComplete
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, "thank you", s.State().History[1].Text)
}

func TestEnter_BlankIsIgnored(t *testing.T) {
	s := newSession(t)
	c := New(s, "Assistant")
	c.Init()

	typeText(c, "   ")
	c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Len(t, s.State().History, 1)
	assert.Empty(t, c.errMsg)
}

func TestRenderHistory(t *testing.T) {
	out := RenderHistory([]session.Message{
		{Sender: session.SenderUser, Text: "find videos"},
		{
			Sender: session.SenderAssistant, Text: "Here you go", Tone: tone.Explanatory,
			Delivery:  session.DeliveryComplete,
			Resources: []resources.ResourceItem{{Kind: resources.KindVideo, Title: "Intro", URL: "https://v"}},
		},
		{Sender: session.SenderAssistant, Text: "Still typ", Tone: tone.Guiding, Delivery: session.DeliveryStreaming},
	}, 60)

	assert.Contains(t, out, "You: find videos")
	assert.Contains(t, out, "Explanatory")
	assert.Contains(t, out, "▶ Intro")
	assert.Contains(t, out, "Still typ▍")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "c\nd", tail("a\nb\nc\nd", 2))
	assert.Equal(t, "a", tail("a", 5))
	assert.Equal(t, 3, strings.Count(tail(strings.Repeat("x\n", 10), 4), "\n"))
}
