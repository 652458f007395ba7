// Package chat is the assistant panel: conversation history, streamed
// replies and the learner's input line.
package chat

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/ui/components"
	"github.com/abhisek/coursebuddy/internal/ui/layout"
	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

const maxMessageLen = 500

// ChatScreen renders one assistant session as an open panel.
type ChatScreen struct {
	sess   *session.Session
	title  string
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Exiter = (*ChatScreen)(nil)
var _ screen.KeyCapturer = (*ChatScreen)(nil)

// New creates a chat panel for the session.
func New(sess *session.Session, title string) *ChatScreen {
	return &ChatScreen{
		sess:  sess,
		title: title,
		input: components.NewTextInput("Ask me about your courses, progress or videos...", maxMessageLen),
	}
}

// Init opens the panel and picks up a seeded question, if any.
func (c *ChatScreen) Init() tea.Cmd {
	c.sess.SetPanel(true)
	if seed, ok := c.sess.TakeSeed(); ok {
		c.input.SetValue(seed)
	}
	return c.input.Init()
}

// OnExit closes the panel.
func (c *ChatScreen) OnExit() {
	c.sess.SetPanel(false)
}

func (c *ChatScreen) CapturesKeys() bool { return true }

func (c *ChatScreen) Title() string {
	return c.title
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Close"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			c.send()
			return c, nil
		case "ctrl+l":
			c.sess.Clear()
			c.errMsg = ""
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() {
	text := c.input.Take()
	if text == "" {
		return
	}
	if err := c.sess.Submit(text); err != nil {
		c.errMsg = err.Error()
		return
	}
	c.errMsg = ""
}

func (c *ChatScreen) View(width, height int) string {
	w := max(width-4, 20)
	c.input.SetWidth(w - 4)
	st := c.sess.State()

	footer := []string{""}
	if st.Mood == session.MoodThinking {
		footer = append(footer, theme.Hint.Render("Buddy is thinking..."))
	}
	if c.errMsg != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Error).Render(c.errMsg))
	}
	footer = append(footer, c.input.View())
	footerText := strings.Join(footer, "\n")

	avail := max(height-lipgloss.Height(footerText)-1, 1)
	body := tail(RenderHistory(st.History, w), avail)

	return lipgloss.NewStyle().Padding(0, 2).Render(body + "\n" + footerText)
}

// RenderHistory renders the conversation wrapped to width.
func RenderHistory(history []session.Message, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var blocks []string
	for _, m := range history {
		if m.Sender == session.SenderUser {
			blocks = append(blocks, wrap.Render(theme.LearnerLabel.Render("You: ")+m.Text))
			continue
		}

		text := m.Text
		if m.Delivery == session.DeliveryStreaming {
			text += "▍"
		}
		block := theme.ToneLabel(m.Tone) + "\n" + wrap.Render(theme.Body.Render(text))
		if m.Delivery == session.DeliveryComplete && len(m.Resources) > 0 {
			block += "\n" + renderResources(m.Resources, width)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

func renderResources(items []resources.ResourceItem, width int) string {
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2)
	lines := make([]string, 0, len(items))
	for _, r := range items {
		line := fmt.Sprintf("%s %s", kindIcon(r.Kind), r.Title)
		if r.URL != "" {
			line += " " + theme.Link.Render(r.URL)
		}
		lines = append(lines, wrap.Render(line))
	}
	return strings.Join(lines, "\n")
}

func kindIcon(k resources.Kind) string {
	switch k {
	case resources.KindVideo:
		return "▶"
	case resources.KindQuiz:
		return "✎"
	default:
		return "≡"
	}
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
