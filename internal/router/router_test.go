package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursebuddy/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title  string
	inits  int
	exited bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) OnExit()                                 { s.exited = true }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "chat"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "chat" {
		t.Errorf("expected active 'chat', got %q", r.Active().Title())
	}
	if s2.inits != 1 {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop_ExitsAndReinitialises(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "chat"}
	r.Push(s2)
	r.Update(PopScreenMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if !s2.exited {
		t.Error("expected OnExit on popped screen")
	}
	if s1.inits != 1 {
		t.Errorf("expected uncovered screen to re-init once, got %d", s1.inits)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if s1.exited {
		t.Error("bottom screen must not exit")
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)
	r.Push(&stubScreen{title: "chat"})

	s3 := &stubScreen{title: "course"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "course" {
		t.Errorf("expected active 'course', got %q", r.Active().Title())
	}
	if s3.inits != 1 {
		t.Error("expected Init() to run on replacement")
	}
}
