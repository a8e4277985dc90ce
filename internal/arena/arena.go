// Package arena evaluates guardian agents against scenario batches,
// classifies their decisions, scores them, and emits InteractionRecords
// into the encrypted store (spec §4.5).
package arena

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/oracle"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/store"
)

// recordStore is the subset of *store.Store the arena needs. NewArena
// accepts only a *store.Store, so the arena always writes through the
// SQLite-backed store (in-memory or on disk).
type recordStore interface {
	Insert(rec domain.InteractionRecord) error
}

// Arena evaluates guardians against scenario batches and persists the
// resulting records.
type Arena struct {
	store  recordStore
	logger *zap.Logger
}

// NewArena builds an Arena backed by s.
func NewArena(s *store.Store, logger *zap.Logger) *Arena {
	return &Arena{store: s, logger: logger}
}

// SessionReport is the per-guardian outcome of one evaluated batch.
type SessionReport struct {
	GuardianID string
	Records    []domain.InteractionRecord
}

// RunSession evaluates guardian against every scenario in order (spec §5:
// within a guardian, scenarios run in strict order so the conversation
// reset is observable), clearing its history between scenarios.
func (a *Arena) RunSession(ctx context.Context, guardian *Guardian, sessionID string, generation int, scenarios []domain.Scenario) (SessionReport, error) {
	report := SessionReport{GuardianID: guardian.ID, Records: make([]domain.InteractionRecord, 0, len(scenarios))}

	for round, scenario := range scenarios {
		rec := a.evaluateOne(ctx, guardian, sessionID, generation, round, scenario)
		guardian.Reset()

		if err := a.store.Insert(rec); err != nil {
			a.logger.Error("failed to persist interaction record",
				zap.String("record_id", rec.ID), zap.Error(err))
		}

		report.Records = append(report.Records, rec)
	}

	return report, nil
}

func (a *Arena) evaluateOne(ctx context.Context, guardian *Guardian, sessionID string, generation, round int, scenario domain.Scenario) domain.InteractionRecord {
	prompt := BuildPrompt(scenario)

	raw, err := guardian.Respond(ctx, prompt)
	var parsed ParsedResponse
	if err != nil {
		parsed = ParsedResponse{Decision: domain.DecisionLog, Confidence: 0.5, Explanation: fmt.Sprintf("ERROR: %v", err)}
	} else {
		parsed = ParseResponse(raw)
	}

	classification := Classify(parsed.Decision, scenario.Context.GroundTruth.IsThreat)
	policyResult := oracle.CheckPolicy(parsed.Decision, scenario, scenario.Context.ActiveRules)
	explanationQuality := ExplanationQuality(parsed.Explanation)

	return domain.InteractionRecord{
		ID:         domain.RecordID(sessionID, guardian.ID, scenario.ID),
		SessionID:  sessionID,
		GuardianID: guardian.ID,
		Generation: generation,
		Round:      round,
		ScenarioID: scenario.ID,

		ScenarioType: scenario.Context.ScenarioType,
		ProfileType:  scenario.Context.ProfileType,
		Platform:     scenario.Context.Platform,
		Difficulty:   scenario.Difficulty,

		Decision:    parsed.Decision,
		Confidence:  parsed.Confidence,
		Explanation: parsed.Explanation,

		TruePositive:  classification.TruePositive,
		FalsePositive: classification.FalsePositive,
		TrueNegative:  classification.TrueNegative,
		FalseNegative: classification.FalseNegative,

		ExplanationQuality: explanationQuality,
		PrivacyCompliant:   isPrivacyCompliant(policyResult),
		PolicyCompliant:    policyResult.Compliant,

		EvidenceHash: domain.EvidenceHash(sessionID, guardian.ID, scenario.ID, parsed.Decision, parsed.Confidence),
		Timestamp:    time.Now(),
	}
}

func isPrivacyCompliant(result oracle.PolicyResult) bool {
	for _, v := range result.Violations {
		if v.Category == "privacy" {
			return false
		}
	}
	return true
}

// AssembleBatch mixes up to 30% sampled external scenarios into a
// synthetic batch, shuffling the combined list (spec §4.5 Session batch
// assembly). If external is empty, synthetic is returned unshuffled-mixed
// (it is already shuffled by the generator).
func AssembleBatch(synthetic, external []domain.Scenario, rng *rand.Rand) []domain.Scenario {
	if len(external) == 0 {
		return synthetic
	}

	maxExternal := len(synthetic) * 30 / 100
	if maxExternal > len(external) {
		maxExternal = len(external)
	}

	idx := rng.Perm(len(external))[:maxExternal]
	sampled := make([]domain.Scenario, maxExternal)
	for i, j := range idx {
		sampled[i] = external[j]
	}

	keep := len(synthetic) - maxExternal
	if keep < 0 {
		keep = 0
	}

	combined := make([]domain.Scenario, 0, keep+maxExternal)
	combined = append(combined, synthetic[:keep]...)
	combined = append(combined, sampled...)

	rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	return combined
}
