package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPromptIDDeterministic(t *testing.T) {
	a := NewPromptID("You are a Family Guardian AI.")
	b := NewPromptID("You are a Family Guardian AI.")
	if a != b {
		t.Fatalf("NewPromptID not deterministic: %v != %v", a, b)
	}

	c := NewPromptID("You are a different Guardian AI.")
	if a == c {
		t.Fatalf("distinct prompt texts produced the same id: %v", a)
	}
}

func TestEvidenceHashReproducible(t *testing.T) {
	h1 := EvidenceHash("sess-1", "guardian-1", "scenario-1", DecisionBlock, 0.85)
	h2 := EvidenceHash("sess-1", "guardian-1", "scenario-1", DecisionBlock, 0.85)
	if h1 != h2 {
		t.Fatalf("evidence hash not reproducible: %s != %s", h1, h2)
	}

	h3 := EvidenceHash("sess-1", "guardian-1", "scenario-1", DecisionAllow, 0.85)
	if h1 == h3 {
		t.Fatalf("evidence hash did not change with decision")
	}
}

func TestDecisionIsGuardianBlocked(t *testing.T) {
	blocked := []Decision{DecisionBlock, DecisionAlert, DecisionEscalate}
	for _, d := range blocked {
		if !d.IsGuardianBlocked() {
			t.Errorf("expected %s to count as blocked", d)
		}
	}

	notBlocked := []Decision{DecisionAllow, DecisionLog}
	for _, d := range notBlocked {
		if d.IsGuardianBlocked() {
			t.Errorf("expected %s to not count as blocked", d)
		}
	}
}

func TestScenarioTypeCorrectDecision(t *testing.T) {
	cases := map[ScenarioType]Decision{
		ScenarioGrooming:          DecisionEscalate,
		ScenarioSelfHarm:          DecisionEscalate,
		ScenarioDuress:            DecisionEscalate,
		ScenarioGamingScam:        DecisionBlock,
		ScenarioUnauthorizedSpend: DecisionAlert,
		ScenarioLocationTracking:  DecisionAlert,
	}
	for st, want := range cases {
		if got := st.CorrectDecision(); got != want {
			t.Errorf("%s.CorrectDecision() = %s, want %s", st, got, want)
		}
	}
}

func TestInteractionRecordRoundTrip(t *testing.T) {
	rec := InteractionRecord{
		ID:            RecordID("sess-1", "guardian-1", "scenario-1"),
		SessionID:     "sess-1",
		GuardianID:    "guardian-1",
		Generation:    3,
		Round:         2,
		ScenarioID:    "scenario-1",
		ScenarioType:  ScenarioGrooming,
		ProfileType:   ProfileChild,
		Platform:      "messenger",
		Difficulty:    DifficultyMedium,
		Decision:      DecisionEscalate,
		Confidence:    0.92,
		Explanation:   "because grooming patterns were detected",
		TruePositive:  true,
		ExplanationQuality: 0.8,
		PrivacyCompliant:   true,
		PolicyCompliant:    true,
		EvidenceHash: EvidenceHash("sess-1", "guardian-1", "scenario-1", DecisionEscalate, 0.92),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got InteractionRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Timestamps round-trip through RFC3339 which drops monotonic reading;
	// compare the rest of the struct field-by-field instead of the zero
	// value, which differs only in that regard.
	got.Timestamp = rec.Timestamp
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLineageStoreRoundTrip(t *testing.T) {
	parent := NewPromptID("parent prompt text")
	store := LineageStore{
		Prompts: []EvolvedPrompt{
			{
				ID:                  NewPromptID("child prompt text"),
				Generation:           1,
				ParentID:             &parent,
				PromptText:           "child prompt text",
				Specialization:       SpecializationScamDetector,
				Fitness:              0.82,
				DetectionRate:        0.9,
				FalsePositiveRate:    0.05,
				MutationDescription: "sensitivityTuning",
			},
		},
		Generations: []GenerationSummary{
			{
				Generation:             1,
				PopulationSize:          6,
				BestFitness:             0.82,
				AvgFitness:              0.6,
				BestDetectionRate:       0.9,
				BestFalsePositiveRate:   0.05,
				DistinctSpecializations: 3,
				SpecializationHistogram: map[Specialization]int{
					SpecializationScamDetector: 2,
				},
			},
		},
	}

	data, err := json.Marshal(store)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got LineageStore
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(store, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
