// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/screens/assessment"
	"github.com/abhisek/epds/internal/screens/home"
	"github.com/abhisek/epds/internal/screens/results"
	"github.com/abhisek/epds/internal/screens/welcome"
	"github.com/abhisek/epds/internal/scoring"
	"github.com/abhisek/epds/internal/store"
	"github.com/abhisek/epds/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Scorer    scoring.Client
	Events    store.EventRepo // nil disables history
	Logger    *zap.Logger
	SubjectID string

	// Budget bounds one submission including retries.
	Budget time.Duration

	// SkipSplash starts on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	engine *questionnaire.Engine
	status string
	width  int
	height int
}

// newAppModel creates the engine and the screen graph around it.
func newAppModel(opts Options) (AppModel, error) {
	if opts.Scorer == nil {
		return AppModel{}, fmt.Errorf("no scorer configured")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	engine, err := questionnaire.New(questionnaire.EPDS(), questionnaire.WithSubjectID(opts.SubjectID))
	if err != nil {
		return AppModel{}, err
	}

	var newAssessment func() screen.Screen
	newResults := func() screen.Screen {
		return results.New(engine, opts.Events, opts.Logger, newAssessment)
	}
	newAssessment = func() screen.Screen {
		return assessment.New(assessment.Deps{
			Engine:  engine,
			Scorer:  opts.Scorer,
			Logger:  opts.Logger,
			Budget:  opts.Budget,
			Results: newResults,
		})
	}
	startAssessment := func() screen.Screen {
		engine.Reset()
		return newAssessment()
	}

	homeFactory := func() screen.Screen { return home.New(startAssessment, opts.Events) }

	var initial screen.Screen
	if opts.SkipSplash {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}

	return AppModel{
		router: router.New(initial),
		engine: engine,
		status: "scorer: " + opts.Scorer.Name(),
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Leaving the check-in discards its answers and result.
				switch m.router.Active().(type) {
				case *assessment.AssessmentScreen, *results.ResultsScreen:
					m.engine.Reset()
				}
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
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
