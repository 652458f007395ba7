package home

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/assistant"
	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/router"
	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/session"
)

type staticContext struct{}

func (staticContext) Inputs(context.Context, string) learner.Inputs { return learner.Inputs{} }

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(
		session.Config{StreamTick: time.Millisecond, IdleThreshold: 2, IdleTick: 10 * time.Millisecond},
		session.Deps{Context: staticContext{}, Synth: assistant.NewSynthesizer(nil)},
		"",
	)
	t.Cleanup(s.Close)
	return s
}

func loaded(t *testing.T, h *HomeScreen) {
	t.Helper()
	msg := h.Init()()
	h.Update(msg)
	require.True(t, h.loaded)
}

func staticLoader(data Data) Loader {
	return func(context.Context) (Data, error) { return data, nil }
}

var courses = []learner.Course{
	{ID: "go-101", Title: "Go Basics", Difficulty: 1, Credits: 10},
	{ID: "sql-201", Title: "SQL Joins", Difficulty: 3, Credits: 20},
}

func TestMenu_ListsCoursesThenActions(t *testing.T) {
	h := New(newSession(t), staticLoader(Data{Courses: courses}), func() screen.Screen { return stubScreen{} })
	loaded(t, h)

	require.Len(t, h.menu.Items, 5)
	assert.Equal(t, "Go Basics", h.menu.Items[0].Label)
	assert.Equal(t, "beginner · 10 credits", h.menu.Items[0].Hint)
	assert.Equal(t, "History", h.menu.Items[3].Label)
	assert.Equal(t, "Quit", h.menu.Items[4].Label)

	_, cmd := h.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "stub", push.Screen.Title())
}

type stubScreen struct{}

func (s stubScreen) Init() tea.Cmd                          { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s stubScreen) View(int, int) string                   { return "" }
func (s stubScreen) Title() string                          { return "stub" }

func TestEnter_FocusesCourseAndOpensChat(t *testing.T) {
	s := newSession(t)
	h := New(s, staticLoader(Data{Courses: courses}), nil)
	loaded(t, h)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "SQL Joins", push.Screen.Title())
	assert.Equal(t, "sql-201", s.State().CourseID)
}

func TestQuestionMark_SeedsOverview(t *testing.T) {
	s := newSession(t)
	h := New(s, staticLoader(Data{Courses: courses}), nil)
	loaded(t, h)

	_, cmd := h.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	require.NotNil(t, cmd)

	st := s.State()
	assert.True(t, st.PanelOpen)
	assert.Equal(t, "go-101", st.CourseID)
	assert.Equal(t, overviewQuestion, st.Seed)
}

func TestView_LoadErrorAndHelpBadge(t *testing.T) {
	s := newSession(t)
	h := New(s, func(context.Context) (Data, error) { return Data{}, errors.New("db locked") }, nil)
	loaded(t, h)
	assert.Contains(t, h.View(120, 40), "db locked")

	require.Eventually(t, s.NeedsHelp, 5*time.Second, 50*time.Millisecond)
	assert.Contains(t, h.View(120, 40), "Need help?")
}

func TestVariantFor(t *testing.T) {
	assert.Equal(t, MascotIdle, VariantFor(session.State{Mood: session.MoodIdle}))
	assert.Equal(t, MascotThinking, VariantFor(session.State{Mood: session.MoodThinking}))
	assert.Equal(t, MascotSpeaking, VariantFor(session.State{Mood: session.MoodSpeaking}))
	assert.Equal(t, MascotAlert, VariantFor(session.State{Mood: session.MoodSpeaking, NeedsHelp: true}))
}
