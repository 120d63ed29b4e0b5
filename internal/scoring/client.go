// Package scoring is the client side of the external scoring service.
// It sends a finished questionnaire and turns the reply into a
// risk.Assessment, or into a TransportError or ContractError.
package scoring

import (
	"context"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

// Client scores a submission.
type Client interface {
	// Score sends one submission and returns the validated classification.
	// It never invents a score or tier when the service fails.
	Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error)

	// Name identifies the scorer in logs and history.
	Name() string
}
