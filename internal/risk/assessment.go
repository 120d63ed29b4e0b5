package risk

import "fmt"

// Source records which classification path produced an Assessment.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Assessment is a classification result ready for display. It is consumed
// once by the results view and discarded on reset.
type Assessment struct {
	Score           int
	Tier            Tier
	Title           string
	Message         string
	Recommendation  string
	EmergencyAdvice string
	Source          Source

	// SafetyTriggered is set when the self-harm item alone forced
	// emergency guidance.
	SafetyTriggered bool
}

// Validate rejects assessments that break the collaborator contract.
func (a *Assessment) Validate() error {
	if a == nil {
		return fmt.Errorf("nil assessment")
	}
	if a.Score < MinScore || a.Score > MaxScore {
		return &ScoreRangeError{Score: a.Score}
	}
	if !a.Tier.Valid() {
		return &UnknownTierError{Label: string(a.Tier)}
	}
	return nil
}

// ApplySafetyOverride guarantees emergency guidance when the tier is
// higher_risk or when the self-harm item scored at or above
// SelfHarmThreshold. Existing advice from the collaborator is kept.
func (a *Assessment) ApplySafetyOverride(selfHarmValue int) {
	itemTriggered := selfHarmValue >= SelfHarmThreshold
	if itemTriggered {
		a.SafetyTriggered = true
	}
	if a.EmergencyAdvice != "" {
		return
	}
	switch {
	case itemTriggered:
		a.EmergencyAdvice = selfHarmAdvice
	case a.Tier == TierHigherRisk:
		a.EmergencyAdvice = crisisAdvice
	}
}

// NeedsEmergency reports whether emergency guidance must be rendered.
func (a *Assessment) NeedsEmergency() bool {
	return a.EmergencyAdvice != "" || a.SafetyTriggered || a.Tier == TierHigherRisk
}

// Classify derives an Assessment from a total score using the local
// threshold table. It is the offline path; the self-harm override is
// applied separately by the caller that knows the answers.
func Classify(score int) (*Assessment, error) {
	tier, err := TierForScore(score)
	if err != nil {
		return nil, err
	}
	c := localContent[tier]
	a := &Assessment{
		Score:          score,
		Tier:           tier,
		Title:          c.title,
		Message:        c.message,
		Recommendation: c.recommendation,
		Source:         SourceLocal,
	}
	if tier == TierHigherRisk {
		a.EmergencyAdvice = crisisAdvice
	}
	return a, nil
}
