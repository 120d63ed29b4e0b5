package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/epds/internal/risk"
)

func TestLocalClient_Thresholds(t *testing.T) {
	tests := []struct {
		values []int
		score  int
		tier   risk.Tier
	}{
		{[]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, 9, risk.TierLow},
		{[]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 10, risk.TierModerate},
		{[]int{2, 2, 1, 1, 1, 1, 1, 1, 1, 1}, 12, risk.TierModerate},
		{[]int{2, 2, 2, 1, 1, 1, 1, 1, 1, 1}, 13, risk.TierHigherRisk},
	}
	c := NewLocalClient()
	for _, tt := range tests {
		a, err := c.Score(context.Background(), testSubmission(tt.values...))
		require.NoError(t, err)
		assert.Equal(t, tt.score, a.Score)
		assert.Equal(t, tt.tier, a.Tier)
		assert.Equal(t, risk.SourceLocal, a.Source)
	}
}

func TestLocalClient_HigherRiskCarriesEmergencyAdvice(t *testing.T) {
	a, err := NewLocalClient().Score(context.Background(), testSubmission(3, 3, 3, 3, 3, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, a.EmergencyAdvice)
}

func TestLocalClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalClient().Score(ctx, testSubmission())
	assert.ErrorIs(t, err, context.Canceled)
}
