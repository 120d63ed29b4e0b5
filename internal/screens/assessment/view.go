package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/scoring"
	"github.com/abhisek/epds/internal/ui/components"
	"github.com/abhisek/epds/internal/ui/layout"
	"github.com/abhisek/epds/internal/ui/theme"
)

const maxContentWidth = 76

func (s *AssessmentScreen) View(width, height int) string {
	cw := min(width-4, maxContentWidth)

	var body string
	switch s.phase() {
	case questionnaire.PhaseDemographics:
		body = s.form.view()
	case questionnaire.PhaseQuestioning:
		body = s.renderQuestion(cw, height)
	case questionnaire.PhaseSubmitting:
		body = s.spinner.View() + " " + theme.Body.Render("Scoring your responses...")
	case questionnaire.PhaseFailed:
		body = renderFailure(s.deps.Engine.LastError(), cw)
	case questionnaire.PhaseComplete:
		body = theme.Hint.Render("Preparing your results...")
	}

	if s.notice != "" {
		body += "\n\n" + theme.ErrorText.Render(s.notice)
	}

	block := lipgloss.NewStyle().Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

func (s *AssessmentScreen) renderQuestion(cw, height int) string {
	e := s.deps.Engine
	q, ok := e.Question()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(components.NewProgressBar(q.Position, e.Instrument().Len(), cw).View())
	b.WriteString("\n\n")
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		b.WriteString(theme.Hint.Render("In the past 7 days:"))
		b.WriteString("\n")
	}
	b.WriteString(s.options.View())
	return b.String()
}

// renderFailure explains what went wrong in terms of what the user can do.
func renderFailure(err error, width int) string {
	title, detail := describeFailure(err)

	var b strings.Builder
	b.WriteString(theme.SeverityColor(2).Render(title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(detail))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Your answers are kept. Press R to try again."))
	return b.String()
}

func describeFailure(err error) (title, detail string) {
	var (
		ve *questionnaire.ValidationError
		te *scoring.TransportError
		ce *scoring.ContractError
		ue *risk.UnknownTierError
		re *risk.ScoreRangeError
	)
	switch {
	case err == nil:
		return "Something went wrong", "The assessment could not be scored."
	case errors.As(err, &ve):
		return "Please check your answers", ve.Reason
	case errors.Is(err, scoring.ErrCircuitOpen):
		return "The scoring service is resting",
			"Several recent attempts failed, so we are pausing briefly before trying again. Please wait a moment."
	case errors.Is(err, context.DeadlineExceeded):
		return "The scoring service took too long", "No response arrived in time. Check your connection and try again."
	case errors.As(err, &te):
		if te.StatusCode != 0 {
			return "The scoring service is unavailable",
				fmt.Sprintf("The service answered with HTTP %d. This is usually temporary.", te.StatusCode)
		}
		return "Could not reach the scoring service", "Check your internet connection and try again."
	case errors.As(err, &ce):
		return "The scoring service sent an unexpected response",
			"This app and the scoring service may be out of date with each other (" + ce.Reason + "). " +
				"Trying again may not help; if it keeps happening, update the app."
	case errors.As(err, &ue), errors.As(err, &re):
		return "The scoring service sent an unexpected response", err.Error()
	default:
		return "Something went wrong", err.Error()
	}
}
