package arena

import (
	"testing"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

func TestClassifyExactlyOneTrue(t *testing.T) {
	cases := []struct {
		decision domain.Decision
		isThreat bool
	}{
		{domain.DecisionBlock, true},
		{domain.DecisionAllow, true},
		{domain.DecisionBlock, false},
		{domain.DecisionAllow, false},
		{domain.DecisionAlert, true},
		{domain.DecisionEscalate, false},
		{domain.DecisionLog, true},
	}

	for _, c := range cases {
		cl := Classify(c.decision, c.isThreat)
		count := 0
		for _, b := range []bool{cl.TruePositive, cl.FalsePositive, cl.TrueNegative, cl.FalseNegative} {
			if b {
				count++
			}
		}
		if count != 1 {
			t.Errorf("Classify(%q, %v) produced %d true flags, want exactly 1: %+v", c.decision, c.isThreat, count, cl)
		}
	}
}

func TestExplanationQualityLongReasonedText(t *testing.T) {
	explanation := "This message was blocked because it detected a grooming pattern that indicates risk and suggests a threat to the child's safety online."
	score := ExplanationQuality(explanation)
	if score <= 0.5 {
		t.Errorf("score = %v, want > 0.5 for a long, reasoned explanation", score)
	}
	if score > 1.0 {
		t.Errorf("score = %v, want <= 1.0", score)
	}
}

func TestExplanationQualityEmptyOnlyGetsJargonFreeBonus(t *testing.T) {
	// No words, no reasoning keywords, but trivially zero jargon hits too.
	if score := ExplanationQuality(""); score != 0.2 {
		t.Errorf("score = %v, want 0.2 for empty explanation", score)
	}
}

func TestExplanationQualityJargonPenalized(t *testing.T) {
	explanation := "because the neural embedding gradient indicates a pattern risk threat concern safe protect detected suggests"
	if score := ExplanationQuality(explanation); score >= 1.0 {
		t.Errorf("score = %v, want < 1.0 when jargon keywords are present", score)
	}
}
