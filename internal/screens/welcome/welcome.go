// Package welcome is the splash and onboarding screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/router"
	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/ui/components"
	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 500 * time.Millisecond
	readyAt      = 1200 * time.Millisecond
)

const mascotArt = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ </> │
└─────┘`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// NameSaver stores the learner's name.
type NameSaver func(name string) error

// WelcomeScreen greets the learner, asks for a name when none is known,
// then replaces itself with the home screen.
type WelcomeScreen struct {
	name         string
	save         NameSaver
	homeFactory  func() screen.Screen
	input        components.TextInput
	elapsed      time.Duration
	tickCount    int
	errMsg       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyCapturer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. An empty name switches on onboarding.
func New(name string, save NameSaver, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		name:        strings.TrimSpace(name),
		save:        save,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your name", 40),
	}
}

func (w *WelcomeScreen) onboarding() bool { return w.name == "" }

func (w *WelcomeScreen) CapturesKeys() bool { return w.onboarding() }

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.tick(), w.input.Init())
}

func (w *WelcomeScreen) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, w.tick()

	case tea.KeyPressMsg:
		if w.elapsed < readyAt {
			return w, nil
		}
		if !w.onboarding() {
			return w, w.transition()
		}
		if msg.String() == "enter" {
			return w, w.submitName()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) submitName() tea.Cmd {
	name := w.input.Take()
	if name == "" {
		w.errMsg = "Please tell me what to call you."
		return nil
	}
	if w.save != nil {
		if err := w.save(name); err != nil {
			w.errMsg = "Could not save your name: " + err.Error()
			return nil
		}
	}
	w.name = name
	return w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	// Sparkles on the sides of the mascot
	sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
	s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
	s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
	lines := strings.Split(rendered, "\n")
	lines[0] = s1 + "  " + lines[0] + "  " + s2
	lines[len(lines)-1] = s2 + "  " + lines[len(lines)-1] + "  " + s1
	sections := []string{strings.Join(lines, "\n")}

	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width), "")
	}

	if w.elapsed >= readyAt {
		bold := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if w.onboarding() {
			sections = append(sections,
				bold.Render("Hi! I'm Buddy, your course assistant. What should I call you?"),
				"",
				lipgloss.NewStyle().Width(44).Render(w.input.View()),
			)
			if w.errMsg != "" {
				sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
			}
		} else {
			sections = append(sections,
				bold.Render("Welcome back, "+w.name+"!"),
				"",
				theme.Hint.Render("press any key to continue"),
			)
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
