// Package assessment is the screening wizard screen: demographic intake,
// the questions, submission and the retry affordance on failure.
package assessment

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/scoring"
	"github.com/abhisek/epds/internal/ui/components"
	"github.com/abhisek/epds/internal/ui/layout"
	"github.com/abhisek/epds/internal/ui/theme"
)

// Deps are the collaborators an assessment run needs.
type Deps struct {
	Engine *questionnaire.Engine
	Scorer scoring.Client
	Logger *zap.Logger

	// Budget bounds one submission including retries.
	Budget time.Duration

	// Results builds the screen shown once the engine completes.
	Results func() screen.Screen
}

// AssessmentScreen drives a questionnaire.Engine from key input.
type AssessmentScreen struct {
	deps    Deps
	form    demographicsForm
	options components.OptionList
	spinner spinner.Model
	notice  string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)

// New creates the screen at whatever phase the engine is in.
func New(deps Deps) *AssessmentScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Budget <= 0 {
		deps.Budget = scoring.DefaultConfig().Budget()
	}
	s := &AssessmentScreen{
		deps: deps,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(theme.Selected),
		),
	}
	s.sync()
	return s
}

func (s *AssessmentScreen) Init() tea.Cmd {
	if s.phase() == questionnaire.PhaseDemographics {
		return s.form.focusCmd()
	}
	return nil
}

func (s *AssessmentScreen) Title() string {
	return "Self-Assessment"
}

func (s *AssessmentScreen) phase() questionnaire.Phase {
	return s.deps.Engine.State().Phase
}

// sync rebuilds the widgets for the engine's current phase and position.
func (s *AssessmentScreen) sync() {
	e := s.deps.Engine
	switch e.State().Phase {
	case questionnaire.PhaseDemographics:
		s.form = newDemographicsForm(e.Demographics())
	case questionnaire.PhaseQuestioning:
		q, _ := e.Question()
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Label
		}
		chosen := -1
		if v, ok := e.Selected(); ok {
			chosen = q.OptionIndex(v)
		}
		s.options = components.NewOptionList(q.Prompt, labels, chosen)
	}
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch s.phase() {
	case questionnaire.PhaseDemographics:
		return []layout.KeyHint{
			{Key: "↑↓/Tab", Description: "Field"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Next field"},
			{Key: "Esc", Description: "Home"},
		}
	case questionnaire.PhaseQuestioning:
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Home"},
		}
	case questionnaire.PhaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "←", Description: "Review answers"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoredMsg:
		return s.handleScored(msg)

	case spinner.TickMsg:
		if s.phase() != questionnaire.PhaseSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase() == questionnaire.PhaseDemographics && s.form.focus == rowAge {
		var cmd tea.Cmd
		s.form.age, cmd = s.form.age.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase() {
	case questionnaire.PhaseDemographics:
		cmd, submit := s.form.update(msg)
		if !submit {
			return s, cmd
		}
		if err := s.form.commit(s.deps.Engine); err != nil {
			return s, s.form.focusCmd()
		}
		s.sync()
		return s, nil

	case questionnaire.PhaseQuestioning:
		return s.handleQuestionKey(msg)

	case questionnaire.PhaseFailed:
		switch msg.String() {
		case "r", "R", "enter":
			sub, err := s.deps.Engine.Retry()
			if err != nil {
				s.notice = err.Error()
				return s, nil
			}
			return s, s.submit(sub)
		case "left", "b", "backspace":
			if err := s.deps.Engine.Back(); err == nil {
				s.sync()
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *AssessmentScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	e := s.deps.Engine
	q, _ := e.Question()

	switch msg.String() {
	case "left", "b", "backspace":
		s.notice = ""
		if err := e.Back(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.sync()
		if s.phase() == questionnaire.PhaseDemographics {
			return s, s.form.focusCmd()
		}
		return s, nil
	}

	prev := s.options.Chosen
	s.options, _ = s.options.Update(msg)
	if s.options.HasChoice() && s.options.Chosen != prev {
		if err := e.Select(q.Options[s.options.Chosen].Value); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.notice = ""
	}

	if msg.String() != "enter" {
		return s, nil
	}

	sub, err := e.Next()
	if err != nil {
		var ve *questionnaire.ValidationError
		if errors.As(err, &ve) {
			s.notice = ve.Reason
		} else {
			s.notice = err.Error()
		}
		return s, nil
	}
	if sub == nil {
		s.sync()
		return s, nil
	}
	return s, s.submit(sub)
}

// submit starts one scoring attempt off the UI goroutine.
func (s *AssessmentScreen) submit(sub *questionnaire.Submission) tea.Cmd {
	s.notice = ""
	scorer, budget, logger := s.deps.Scorer, s.deps.Budget, s.deps.Logger
	logger.Debug("submitting questionnaire",
		zap.String("session_id", sub.SessionID),
		zap.String("submission_id", sub.ID),
		zap.Int("attempt", sub.Attempt),
	)
	score := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), budget)
		defer cancel()
		a, err := scorer.Score(ctx, *sub)
		return scoredMsg{
			Outcome:   questionnaire.Outcome{Attempt: sub.Attempt, Assessment: a, Err: err},
			SessionID: sub.SessionID,
		}
	}
	return tea.Batch(score, s.spinner.Tick)
}

func (s *AssessmentScreen) handleScored(msg scoredMsg) (screen.Screen, tea.Cmd) {
	e := s.deps.Engine
	if err := e.Resolve(msg.Outcome); err != nil {
		s.deps.Logger.Debug("dropping scoring outcome",
			zap.String("session_id", msg.SessionID),
			zap.Int("attempt", msg.Outcome.Attempt),
			zap.Error(err),
		)
		return s, nil
	}

	if s.phase() == questionnaire.PhaseFailed {
		s.deps.Logger.Warn("assessment submission failed",
			zap.String("session_id", msg.SessionID),
			zap.String("kind", scoring.Kind(e.LastError())),
			zap.Error(e.LastError()),
		)
		return s, nil
	}

	if s.deps.Results == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	results := s.deps.Results()
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
}
