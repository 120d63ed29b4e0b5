package risk

import (
	"fmt"
)

// Tier is a named risk-severity bucket.
type Tier string

const (
	TierMinimal    Tier = "minimal"
	TierLow        Tier = "low"
	TierMild       Tier = "mild"
	TierModerate   Tier = "moderate"
	TierHigherRisk Tier = "higher_risk"
)

// Score bounds for the ten-item instrument (10 questions x max value 3).
const (
	MinScore = 0
	MaxScore = 30
)

// Local threshold table. A score at or below lowMax is low, at or below
// moderateMax is moderate, anything above is higher risk.
const (
	lowMax      = 9
	moderateMax = 12
)

// SelfHarmThreshold is the answer value on the self-harm item at which
// emergency guidance is shown regardless of the total score.
const SelfHarmThreshold = 2

var allTiers = []Tier{TierMinimal, TierLow, TierMild, TierModerate, TierHigherRisk}

// AllTiers returns the closed set of tier labels in increasing severity.
func AllTiers() []Tier {
	out := make([]Tier, len(allTiers))
	copy(out, allTiers)
	return out
}

// UnknownTierError is returned for a label outside the closed tier set.
type UnknownTierError struct {
	Label string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown risk tier %q", e.Label)
}

// ScoreRangeError is returned for a total score outside [MinScore, MaxScore].
type ScoreRangeError struct {
	Score int
}

func (e *ScoreRangeError) Error() string {
	return fmt.Sprintf("score %d outside [%d, %d]", e.Score, MinScore, MaxScore)
}

// ParseTier maps a backend label to a Tier.
func ParseTier(label string) (Tier, error) {
	for _, t := range allTiers {
		if string(t) == label {
			return t, nil
		}
	}
	return "", &UnknownTierError{Label: label}
}

// Valid reports whether t belongs to the closed tier set.
func (t Tier) Valid() bool {
	_, err := ParseTier(string(t))
	return err == nil
}

// DisplayName returns a human label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierMinimal:
		return "Minimal"
	case TierLow:
		return "Low"
	case TierMild:
		return "Mild"
	case TierModerate:
		return "Moderate"
	case TierHigherRisk:
		return "Higher risk"
	default:
		return string(t)
	}
}

// TierForScore applies the local threshold table.
func TierForScore(score int) (Tier, error) {
	switch {
	case score < MinScore || score > MaxScore:
		return "", &ScoreRangeError{Score: score}
	case score <= lowMax:
		return TierLow, nil
	case score <= moderateMax:
		return TierModerate, nil
	default:
		return TierHigherRisk, nil
	}
}

// Treatment is the visual treatment for a tier. Severity runs from 0
// (reassuring) to 3 (urgent) and is mapped to colors by the UI.
type Treatment struct {
	Severity int
	Label    string
}

// TreatmentFor looks up the presentation for a tier. The backend path does
// no scoring of its own; it only selects a treatment by label.
func TreatmentFor(t Tier) Treatment {
	switch t {
	case TierMinimal, TierLow:
		return Treatment{Severity: 0, Label: t.DisplayName()}
	case TierMild:
		return Treatment{Severity: 1, Label: t.DisplayName()}
	case TierModerate:
		return Treatment{Severity: 2, Label: t.DisplayName()}
	case TierHigherRisk:
		return Treatment{Severity: 3, Label: t.DisplayName()}
	default:
		return Treatment{Severity: 3, Label: "Unknown"}
	}
}
