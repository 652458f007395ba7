package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/tone"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Highlight = lipgloss.Color("#FACC15") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Chat
var (
	LearnerLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Link = lipgloss.NewStyle().
		Foreground(TextDim).
		Underline(true)

	HelpBadge = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Highlight).
			Bold(true).
			Padding(0, 1)
)

// ToneColor returns the accent color for a response tone.
func ToneColor(t tone.Tone) color.Color {
	switch t {
	case tone.Motivational:
		return Accent
	case tone.Explanatory:
		return Secondary
	case tone.Guiding:
		return Primary
	default:
		return TextDim
	}
}

// ToneLabel renders the tone name in its color.
func ToneLabel(t tone.Tone) string {
	return lipgloss.NewStyle().
		Foreground(ToneColor(t)).
		Bold(true).
		Render(t.Label())
}
