// Package results shows a completed assessment.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/screens/placeholder"
	"github.com/abhisek/epds/internal/screens/resources"
	"github.com/abhisek/epds/internal/store"
	"github.com/abhisek/epds/internal/ui/layout"
	"github.com/abhisek/epds/internal/ui/theme"
)

type resultRecordedMsg struct {
	Err error
}

// ResultsScreen renders the engine's assessment once. Leaving it resets
// the engine.
type ResultsScreen struct {
	engine  *questionnaire.Engine
	events  store.EventRepo
	logger  *zap.Logger
	restart func() screen.Screen

	result       risk.Assessment
	hasResult    bool
	submissionID string
	supportTotal int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New snapshots the engine's result. events may be nil. restart builds
// the screen for a fresh assessment.
func New(engine *questionnaire.Engine, events store.EventRepo, logger *zap.Logger, restart func() screen.Screen) *ResultsScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ResultsScreen{
		engine:       engine,
		events:       events,
		logger:       logger,
		restart:      restart,
		supportTotal: engine.Demographics().SupportTotal(),
	}
	if a := engine.Result(); a != nil {
		s.result = *a
		s.hasResult = true
	}
	if sub, ok := engine.Pending(); ok {
		s.submissionID = sub.ID
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.events == nil || !s.hasResult {
		return nil
	}
	data := store.ResultEventData{
		SessionID:       s.engine.SessionID(),
		SubmissionID:    s.submissionID,
		Score:           s.result.Score,
		Tier:            string(s.result.Tier),
		Source:          string(s.result.Source),
		Emergency:       s.result.NeedsEmergency(),
		SafetyTriggered: s.result.SafetyTriggered,
	}
	events := s.events
	return func() tea.Msg {
		return resultRecordedMsg{Err: events.AppendResultEvent(context.Background(), data)}
	}
}

func (s *ResultsScreen) Title() string {
	return "Your Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Start over"},
		{Key: "P", Description: "Find a provider"},
		{Key: "H", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultRecordedMsg:
		if msg.Err != nil {
			s.logger.Warn("failed to record result event", zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			s.engine.Reset()
			if s.restart == nil {
				return s, func() tea.Msg { return router.PopToRootMsg{} }
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "h", "H":
			s.engine.Reset()
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "p", "P":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: placeholder.NewProviderDirectory()}
			}
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := min(width-4, 76)
	if !s.hasResult {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No result to show. Press S to start over."))
	}

	a := s.result
	treatment := risk.TreatmentFor(a.Tier)
	para := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)

	var sections []string

	if a.NeedsEmergency() {
		advice := a.EmergencyAdvice
		if advice == "" {
			advice = resources.Render(cw - 6)
		}
		sections = append(sections, theme.Alert.Width(cw).Render(
			theme.SeverityColor(3).Render("Please reach out now")+"\n\n"+advice))
	}

	score := fmt.Sprintf("Your score: %d/%d", a.Score, risk.MaxScore)
	badge := theme.SeverityColor(treatment.Severity).Render("● " + treatment.Label)
	sep := "   "
	if layout.IsCompactWidth(width) {
		sep = "\n"
	}
	sections = append(sections, theme.Body.Bold(true).Render(score)+sep+badge)

	if a.Title != "" {
		sections = append(sections, theme.SeverityColor(treatment.Severity).Width(cw).Render(a.Title))
	}
	if a.Message != "" {
		sections = append(sections, para.Render(a.Message))
	}
	if a.Recommendation != "" {
		sections = append(sections, para.Render(a.Recommendation))
	}

	var notes []string
	if a.Source == risk.SourceLocal {
		notes = append(notes, "Scored on this device with the standard EPDS thresholds.")
	}
	notes = append(notes, fmt.Sprintf("Support you reported: %d/%d.", s.supportTotal, 2*questionnaire.MaxSupport))
	notes = append(notes, "This screening is not a diagnosis.")
	sections = append(sections, theme.Hint.Width(cw).Render(strings.Join(notes, " ")))

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, resources.Render(cw))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
