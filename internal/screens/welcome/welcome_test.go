package welcome

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/router"
	"github.com/abhisek/coursebuddy/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newWelcome(name string, save NameSaver) (*WelcomeScreen, *int) {
	calls := 0
	return New(name, save, func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestKeysIgnoredUntilReady(t *testing.T) {
	w, calls := newWelcome("Ada", nil)

	_, cmd := w.Update(key('x'))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, *calls)

	sendTicks(w, 12)
	_, cmd = w.Update(key('x'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, *calls)
}

func TestReturningLearnerGreeting(t *testing.T) {
	w, _ := newWelcome("Ada", nil)
	assert.NotContains(t, w.View(100, 30), "Welcome back")
	sendTicks(w, 12)
	assert.Contains(t, w.View(100, 30), "Welcome back, Ada!")
}

func TestOnboardingSavesName(t *testing.T) {
	var saved string
	w, calls := newWelcome("", func(name string) error { saved = name; return nil })
	assert.True(t, w.CapturesKeys())
	sendTicks(w, 12)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "blank name is rejected")
	assert.NotEmpty(t, w.errMsg)

	for _, r := range "Grace" {
		w.Update(key(r))
	}
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "Grace", saved)
	assert.Equal(t, 1, *calls)
	assert.False(t, w.CapturesKeys())
}

func TestOnboardingSaveError(t *testing.T) {
	w, calls := newWelcome("", func(string) error { return errors.New("disk full") })
	sendTicks(w, 12)
	for _, r := range "Lin" {
		w.Update(key(r))
	}
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, w.errMsg, "disk full")
	assert.Equal(t, 0, *calls)
}

func TestTransitionOnlyOnce(t *testing.T) {
	w, calls := newWelcome("Ada", nil)
	sendTicks(w, 12)
	w.Update(key('a'))
	_, cmd := w.Update(key('b'))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}
