package scoring

import (
	"context"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

// LocalClient classifies on this machine with the fixed threshold table.
// It is the offline scorer, chosen explicitly; it never stands in for a
// failed remote call.
type LocalClient struct{}

// NewLocalClient returns the offline scorer.
func NewLocalClient() *LocalClient { return &LocalClient{} }

// Name returns "local".
func (LocalClient) Name() string { return "local" }

func (LocalClient) Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return risk.Classify(sub.Total())
}
