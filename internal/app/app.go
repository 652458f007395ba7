// Package app is the terminal shell around an assistant session.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/router"
	"github.com/abhisek/coursebuddy/internal/screen"
	"github.com/abhisek/coursebuddy/internal/screens/history"
	"github.com/abhisek/coursebuddy/internal/screens/home"
	"github.com/abhisek/coursebuddy/internal/screens/welcome"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/store"
	"github.com/abhisek/coursebuddy/internal/ui/layout"
)

// Options wires the shell to its session and store.
type Options struct {
	Session *session.Session
	Store   *store.Store
}

// stateMsg carries a session state change into the Bubble Tea loop.
type stateMsg struct {
	state session.State
	ok    bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	sess    *session.Session
	updates <-chan session.State
	state   session.State
	width   int
	height  int
}

// newAppModel builds the screen stack: welcome first, then home.
func newAppModel(ctx context.Context, opts Options) AppModel {
	st := opts.Store
	src := st.ContextSource()

	homeFactory := func() screen.Screen {
		load := func(ctx context.Context) (home.Data, error) {
			courses, err := st.CourseRepo().List(ctx)
			if err != nil {
				return home.Data{}, err
			}
			return home.Data{Courses: courses, Context: learner.Aggregate(src.Inputs(ctx, ""))}, nil
		}
		historyFactory := func() screen.Screen {
			return history.New(st.QuizRepo(), st.EventRepo())
		}
		return home.New(opts.Session, load, historyFactory)
	}

	var name string
	if p, err := st.ProfileRepo().Get(ctx); err == nil && p != nil {
		name = p.Name
	}
	saveName := func(name string) error {
		p, err := st.ProfileRepo().Get(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			p = &learner.Profile{}
		}
		p.Name = name
		return st.ProfileRepo().Save(ctx, *p)
	}

	return AppModel{
		router: router.New(welcome.New(name, saveName, homeFactory)),
		sess:   opts.Session,
		state:  opts.Session.State(),
	}
}

func (m *AppModel) subscribe() {
	m.updates, _ = m.sess.Subscribe()
}

func waitForState(ch <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		return stateMsg{state: st, ok: ok}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForState(m.updates))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		if !msg.ok {
			return m, nil
		}
		m.state = msg.state
		return m, waitForState(m.updates)

	case tea.KeyMsg:
		m.sess.Touch()
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if c, ok := m.router.Active().(screen.KeyCapturer); !ok || !c.CapturesKeys() {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.Status{
		Mood:      string(m.state.Mood),
		NeedsHelp: m.state.NeedsHelp,
	}, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			footerHints = hints
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-layout.HeaderHeight-layout.FooterHeight-2, 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	m.subscribe()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
