package assessment

import "github.com/abhisek/epds/internal/questionnaire"

// scoredMsg carries the outcome of one scoring attempt back to the screen.
type scoredMsg struct {
	Outcome   questionnaire.Outcome
	SessionID string
}
