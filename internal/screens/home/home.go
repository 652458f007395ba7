package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/router"
	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/screens/chat"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/ui/components"
	"github.com/abhisek/coursebuddy/internal/ui/layout"
	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

// Data is what the home screen shows besides the assistant state.
type Data struct {
	Courses []learner.Course
	Context learner.DecisionContext
}

// Loader fetches the home screen data.
type Loader func(ctx context.Context) (Data, error)

type dataMsg struct {
	data Data
	err  error
}

// overviewQuestion is seeded when the learner asks about a course.
const overviewQuestion = "Give me an overview of this course"

// HomeScreen lists the catalog and the learner's stats next to the
// assistant mascot.
type HomeScreen struct {
	sess    *session.Session
	load    Loader
	history func() screen.Screen
	data    Data
	loaded  bool
	err     error
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen for the assistant session. history builds the
// history screen; nil hides it.
func New(sess *session.Session, load Loader, history func() screen.Screen) *HomeScreen {
	h := &HomeScreen{sess: sess, load: load, history: history}
	h.menu = h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	load := h.load
	return func() tea.Msg {
		data, err := load(context.Background())
		return dataMsg{data: data, err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Courses"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open with assistant"},
		{Key: "?", Description: "Ask about course"},
		{Key: "A", Description: "Assistant"},
		{Key: "H", Description: "History"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataMsg:
		h.loaded = true
		h.err = msg.err
		if msg.err == nil {
			selected := h.menu.Selected
			h.data = msg.data
			h.menu = h.buildMenu()
			if selected < len(h.menu.Items) {
				h.menu.Selected = selected
			}
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return h, h.openChat("", "")
		case "h":
			return h, h.openHistory()
		case "?":
			if c, ok := h.selectedCourse(); ok {
				return h, h.openChat(c.ID, overviewQuestion)
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) selectedCourse() (learner.Course, bool) {
	if h.menu.Selected < len(h.data.Courses) {
		return h.data.Courses[h.menu.Selected], true
	}
	return learner.Course{}, false
}

// openChat focuses the assistant on courseID and pushes the chat panel.
// A non-empty seed pre-fills the learner's input.
func (h *HomeScreen) openChat(courseID, seed string) tea.Cmd {
	if seed != "" {
		h.sess.SeedQuestion(seed, courseID)
	} else if courseID != "" {
		h.sess.SetCourse(courseID)
	}
	title := "Assistant"
	for _, c := range h.data.Courses {
		if c.ID == courseID {
			title = c.Title
		}
	}
	sess := h.sess
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: chat.New(sess, title)}
	}
}

func (h *HomeScreen) openHistory() tea.Cmd {
	if h.history == nil {
		return nil
	}
	s := h.history()
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) buildMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(h.data.Courses)+2)
	for _, c := range h.data.Courses {
		id := c.ID
		items = append(items, components.MenuItem{
			Label:  c.Title,
			Hint:   fmt.Sprintf("%s · %d credits", learner.DifficultyLabel(c.Difficulty), c.Credits),
			Action: func() tea.Cmd { return h.openChat(id, "") },
		})
	}
	items = append(items, components.MenuItem{Label: "Ask the assistant", Action: func() tea.Cmd { return h.openChat("", "") }})
	if h.history != nil {
		items = append(items, components.MenuItem{Label: "History", Action: h.openHistory})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	return components.NewMenu(items)
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.ContentWidth(width)
	st := h.sess.State()

	var sections []string
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(VariantFor(st))))
	}
	if st.NeedsHelp {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.HelpBadge.Render("Need help? Press A to ask me anything")))
	}

	switch {
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Loading courses..."))
	case h.err != nil:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not load courses: "+h.err.Error()))
	default:
		sections = append(sections, components.Card(renderStats(h.data.Context, cw-4), cw))
		if len(h.data.Courses) == 0 {
			sections = append(sections, theme.Hint.Render("No courses yet. Import one with `coursebuddy catalog import`."))
		}
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View()))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderStats(dc learner.DecisionContext, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hi " + dc.Learner.Name + "!")
	p := dc.Performance
	if p.TotalQuizzes == 0 {
		return name + "\n" + theme.Hint.Render("Take your first quiz to see your progress here.")
	}
	line := fmt.Sprintf("%d quizzes · ★ %d · %d credits · %d active days",
		p.TotalQuizzes, p.Stars, p.TotalCredits, dc.Consistency.ActiveDayCount)
	return name + "\n" +
		components.ScoreBar("Average", p.AverageScore, width) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
}
