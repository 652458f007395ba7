package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursebuddy/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Exiter is an optional interface for screens that release state when
// they are popped.
type Exiter interface {
	OnExit()
}

// KeyCapturer is an optional interface for screens that consume printable
// keys, such as text entry, so global shortcuts must not fire.
type KeyCapturer interface {
	CapturesKeys() bool
}
