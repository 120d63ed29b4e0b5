package risk

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify_HigherRiskAlwaysHasEmergencyAdvice(t *testing.T) {
	for score := 13; score <= MaxScore; score++ {
		a, err := Classify(score)
		if err != nil {
			t.Fatalf("Classify(%d): %v", score, err)
		}
		if a.EmergencyAdvice == "" {
			t.Errorf("Classify(%d): expected emergency advice", score)
		}
		if !a.NeedsEmergency() {
			t.Errorf("Classify(%d): NeedsEmergency = false", score)
		}
	}
}

func TestClassify_LowerTiersHaveNoEmergencyAdvice(t *testing.T) {
	for score := 0; score <= 12; score++ {
		a, err := Classify(score)
		if err != nil {
			t.Fatalf("Classify(%d): %v", score, err)
		}
		if a.EmergencyAdvice != "" {
			t.Errorf("Classify(%d): unexpected emergency advice", score)
		}
		if a.Title == "" || a.Message == "" || a.Recommendation == "" {
			t.Errorf("Classify(%d): missing content", score)
		}
		if a.Source != SourceLocal {
			t.Errorf("Classify(%d): source = %q", score, a.Source)
		}
	}
}

func TestClassify_RejectsOutOfRange(t *testing.T) {
	_, err := Classify(31)
	var rangeErr *ScoreRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected ScoreRangeError, got %v", err)
	}
}

func TestApplySafetyOverride_SelfHarmItem(t *testing.T) {
	a, err := Classify(3)
	if err != nil {
		t.Fatal(err)
	}
	a.ApplySafetyOverride(3)

	if !a.SafetyTriggered {
		t.Error("expected SafetyTriggered")
	}
	if !strings.Contains(a.EmergencyAdvice, "988") {
		t.Errorf("expected crisis line in advice, got %q", a.EmergencyAdvice)
	}
	if a.Tier != TierLow {
		t.Errorf("override must not change tier, got %q", a.Tier)
	}
}

func TestApplySafetyOverride_BelowThreshold(t *testing.T) {
	a, _ := Classify(5)
	a.ApplySafetyOverride(1)
	if a.NeedsEmergency() {
		t.Error("self-harm value 1 should not trigger emergency guidance")
	}
}

func TestApplySafetyOverride_KeepsCollaboratorAdvice(t *testing.T) {
	a := &Assessment{Score: 20, Tier: TierHigherRisk, EmergencyAdvice: "call your clinic"}
	a.ApplySafetyOverride(0)
	if a.EmergencyAdvice != "call your clinic" {
		t.Errorf("advice overwritten: %q", a.EmergencyAdvice)
	}
}

func TestApplySafetyOverride_HigherRiskWithoutAdvice(t *testing.T) {
	a := &Assessment{Score: 18, Tier: TierHigherRisk}
	a.ApplySafetyOverride(0)
	if a.EmergencyAdvice == "" {
		t.Error("higher_risk must carry emergency advice")
	}
}

func TestAssessmentValidate(t *testing.T) {
	tests := []struct {
		name string
		a    *Assessment
		ok   bool
	}{
		{"valid", &Assessment{Score: 11, Tier: TierModerate}, true},
		{"score too high", &Assessment{Score: 31, Tier: TierHigherRisk}, false},
		{"negative score", &Assessment{Score: -2, Tier: TierLow}, false},
		{"unknown tier", &Assessment{Score: 4, Tier: Tier("unknown_tier")}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResources_CrisisLineFirst(t *testing.T) {
	res := Resources()
	if len(res) == 0 {
		t.Fatal("expected resources")
	}
	if !res[0].Urgent {
		t.Error("first resource should be the urgent crisis line")
	}
}
