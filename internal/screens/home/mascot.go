package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota
	MascotThinking               // reply being prepared
	MascotSpeaking               // reply being revealed
	MascotAlert                  // learner idle and may need help
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ </> │
└─────┘`

const mascotThinking = `┌─────┐ ∘
│ ◔ ◔ │°
│  ─  │
│ </> │
└─────┘`

const mascotSpeaking = `┌─────┐
│ ◉ ◉ │ ~
│  ○  │ ~
│ </> │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ ?
│  ▽  │
│ </> │
└─────┘`

// VariantFor picks the mascot for an assistant state. The help prompt wins
// over the mood.
func VariantFor(st session.State) MascotVariant {
	if st.NeedsHelp {
		return MascotAlert
	}
	switch st.Mood {
	case session.MoodThinking:
		return MascotThinking
	case session.MoodSpeaking:
		return MascotSpeaking
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotThinking:
		art, fg = mascotThinking, theme.TextDim
	case MascotSpeaking:
		art, fg = mascotSpeaking, theme.Secondary
	case MascotAlert:
		art, fg = mascotAlert, theme.Highlight
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
