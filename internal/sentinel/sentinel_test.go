package sentinel

import (
	"testing"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

func TestEvaluateNoMonocultureWhenBalanced(t *testing.T) {
	histogram := map[domain.Specialization]int{
		domain.SpecializationGeneralProtector:   3,
		domain.SpecializationGroomingSpecialist: 3,
		domain.SpecializationScamDetector:       4,
	}
	verdict := Evaluate(DefaultConfig(), histogram, 10, nil, 0)

	if verdict.IsMonoculture {
		t.Errorf("verdict = %+v, want IsMonoculture=false", verdict)
	}
	if verdict.MutationRateMultiplier != 1.0 {
		t.Errorf("MutationRateMultiplier = %v, want 1.0", verdict.MutationRateMultiplier)
	}
}

func TestEvaluateDetectsDominantStrategy(t *testing.T) {
	histogram := map[domain.Specialization]int{
		domain.SpecializationScamDetector:     6,
		domain.SpecializationGeneralProtector: 4,
	}
	verdict := Evaluate(DefaultConfig(), histogram, 10, nil, 0)

	if !verdict.IsMonoculture {
		t.Fatal("expected monoculture to be detected")
	}
	if len(verdict.DominantStrategies) != 1 {
		t.Fatalf("DominantStrategies = %+v, want exactly 1 entry", verdict.DominantStrategies)
	}
	if verdict.DominantStrategies[0].Specialization != domain.SpecializationScamDetector {
		t.Errorf("dominant = %q, want scamDetector", verdict.DominantStrategies[0].Specialization)
	}
	if verdict.MutationRateMultiplier <= 1.0 {
		t.Errorf("MutationRateMultiplier = %v, want > 1.0 under monoculture", verdict.MutationRateMultiplier)
	}
	if penalty := verdict.FitnessPenalty[domain.SpecializationScamDetector]; penalty >= 1.0 {
		t.Errorf("penalty = %v, want < 1.0", penalty)
	}
}

func TestEvaluateDetectsEliteCapture(t *testing.T) {
	candidates := map[domain.Specialization]int{
		domain.SpecializationScamDetector:     3,
		domain.SpecializationGeneralProtector: 7,
	}
	elites := map[domain.Specialization]int{
		domain.SpecializationScamDetector: 4,
	}
	verdict := Evaluate(DefaultConfig(), candidates, 10, elites, 4)

	if !verdict.IsMonoculture {
		t.Fatal("expected elite capture to be detected as monoculture")
	}
	if len(verdict.EliteCaptured) != 1 || verdict.EliteCaptured[0] != domain.SpecializationScamDetector {
		t.Errorf("EliteCaptured = %+v, want [scamDetector]", verdict.EliteCaptured)
	}
}

func TestDominancePenaltyMonotoneDecreasing(t *testing.T) {
	low := dominancePenalty(0.5, 0.5)
	high := dominancePenalty(0.9, 0.5)
	if high >= low {
		t.Errorf("penalty(0.9)=%v should be lower than penalty(0.5)=%v", high, low)
	}
}
