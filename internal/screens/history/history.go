// Package history shows the learner's recent quiz attempts and assistant
// conversations.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/store"
	"github.com/abhisek/coursebuddy/internal/tone"
	"github.com/abhisek/coursebuddy/internal/ui/layout"
	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

const listLimit = 20

type tab int

const (
	tabQuizzes tab = iota
	tabTurns
)

type historyLoadedMsg struct {
	Quizzes []store.QuizResult
	Turns   []store.AssistantTurnEvent
	Err     error
}

// HistoryScreen lists quiz attempts and assistant turns, newest first.
type HistoryScreen struct {
	quizzes  store.QuizRepo
	events   store.EventRepo
	quizList []store.QuizResult
	turnList []store.AssistantTurnEvent
	tab      tab
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(quizzes store.QuizRepo, events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{quizzes: quizzes, events: events}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		quizzes, err := s.quizzes.Recent(ctx, listLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		turns, err := s.events.QueryAssistantTurns(ctx, store.QueryOpts{Limit: listLimit})
		if err != nil {
			return historyLoadedMsg{Quizzes: quizzes, Err: err}
		}
		return historyLoadedMsg{Quizzes: quizzes, Turns: turns}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Quizzes / Conversations"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.quizList = msg.Quizzes
		s.turnList = msg.Turns
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.tab = (s.tab + 1) % 2
			s.offset = 0
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset = min(s.offset+1, max(s.rows()-1, 0))
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabQuizzes {
		return len(s.quizList)
	}
	return len(s.turnList)
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading..."))
	}

	var lines []string
	lines = append(lines, renderTabs(s.tab), "")
	if s.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), "")
	}

	var rows []string
	if s.tab == tabQuizzes {
		rows = quizRows(s.quizList)
	} else {
		rows = turnRows(s.turnList)
	}
	if len(rows) == 0 {
		rows = []string{theme.Hint.Render("Nothing here yet.")}
	}
	visible := max(height-len(lines)-1, 1)
	end := min(s.offset+visible, len(rows))
	lines = append(lines, rows[min(s.offset, len(rows)-1):end]...)

	return lipgloss.NewStyle().Padding(0, 2).Width(width).Render(strings.Join(lines, "\n"))
}

func renderTabs(active tab) string {
	on := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Underline(true)
	off := lipgloss.NewStyle().Foreground(theme.TextDim)
	q, c := off.Render("Quizzes"), off.Render("Conversations")
	if active == tabQuizzes {
		q = on.Render("Quizzes")
	} else {
		c = on.Render("Conversations")
	}
	return q + "   " + c
}

func quizRows(results []store.QuizResult) []string {
	rows := make([]string, len(results))
	for i, r := range results {
		score := lipgloss.NewStyle().Foreground(theme.Success)
		if r.Percentage < tone.LowScoreThreshold {
			score = score.Foreground(theme.Accent)
		}
		rows[i] = fmt.Sprintf("%s  %-16s %s  %d/%d  %s  +%d credits",
			r.CompletedAt.Local().Format("Jan 02 15:04"),
			r.CourseID,
			score.Render(fmt.Sprintf("%3d%%", r.Percentage)),
			r.Correct, r.Total,
			strings.Repeat("★", r.Stars)+strings.Repeat("☆", 3-r.Stars),
			r.Credits,
		)
	}
	return rows
}

func turnRows(turns []store.AssistantTurnEvent) []string {
	rows := make([]string, len(turns))
	for i, e := range turns {
		course := e.CourseID
		if course == "" {
			course = "-"
		}
		rows[i] = fmt.Sprintf("%s  %-18s %-12s %-16s %d resources  %dms",
			e.Timestamp.Local().Format("Jan 02 15:04"),
			e.Rule,
			theme.ToneLabel(tone.Tone(e.Tone)),
			course,
			e.ResourceCount,
			e.LatencyMs,
		)
	}
	return rows
}
