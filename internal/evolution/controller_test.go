package evolution

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/arena"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/config"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/cryptostore"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/store"
)

func newTestArena(t *testing.T) *arena.Arena {
	t.Helper()
	keys, err := cryptostore.NewEphemeralKeyManager()
	if err != nil {
		t.Fatalf("NewEphemeralKeyManager: %v", err)
	}
	s, err := store.OpenInMemory(keys, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return arena.NewArena(s, zap.NewNop())
}

// benignAllowResponse is long enough and reasoning-keyword-dense enough
// to earn a full explanationScore (spec §4.5 scoring table).
const benignAllowResponse = "DECISION: ALLOW\nCONFIDENCE: 0.92\nEXPLANATION: this message is safe because it shows no risk indicators, " +
	"the sender is a known contact, and the content does not suggest any threat or concern that would warrant blocking or an alert."

func TestLineageRoundTripPreservesSpecialization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineage.json")

	original := domain.LineageStore{
		Prompts: []domain.EvolvedPrompt{
			{
				ID:             domain.NewPromptID("a lone seed prompt"),
				Generation:     1,
				PromptText:     "a lone seed prompt",
				Specialization: domain.SpecializationSeniorProtector,
			},
		},
	}

	if err := SaveLineage(path, original); err != nil {
		t.Fatalf("SaveLineage: %v", err)
	}

	loaded, err := LoadLineage(path)
	if err != nil {
		t.Fatalf("LoadLineage: %v", err)
	}
	if len(loaded.Prompts) != 1 {
		t.Fatalf("loaded %d prompts, want exactly 1", len(loaded.Prompts))
	}
	if loaded.Prompts[0].Specialization != domain.SpecializationSeniorProtector {
		t.Errorf("specialization = %q, want seniorProtector", loaded.Prompts[0].Specialization)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file %s.tmp should not remain after a successful save", path)
	}
}

func TestLoadLineageMissingFileReturnsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	loaded, err := LoadLineage(path)
	if err != nil {
		t.Fatalf("LoadLineage: %v", err)
	}
	if len(loaded.Prompts) != 0 || len(loaded.Generations) != 0 {
		t.Errorf("loaded = %+v, want empty store", loaded)
	}
}

func newTestController(t *testing.T, backend chatbackend.Backend, populationSize int, detectionThreshold float64) (*Controller, config.EvolutionConfig) {
	t.Helper()
	evoCfg := config.EvolutionConfig{
		PopulationSize:         populationSize,
		EliteFraction:          0.5,
		MinGenerations:         1,
		DetectionThreshold:     detectionThreshold,
		FalsePositiveThreshold: 0.05,
		RevocationThreshold:    1.0,
		ExplanationThreshold:   0.70,
		FitnessWeights: config.FitnessWeights{
			Detection:     0.35,
			FalsePositive: 0.20,
			Privacy:       0.15,
			Revocation:    0.10,
			Explanation:   0.10,
			Policy:        0.10,
		},
		Sentinel: config.SentinelConfig{
			DominantThreshold:     0.5,
			EliteCaptureThreshold: 0.75,
			SubLineageCount:       2,
		},
	}
	scenarioCfg := config.ScenarioConfig{ThreatRatio: 0, BatchSize: 4}

	c := New(evoCfg, scenarioCfg, backend, newTestArena(t), nil, zap.NewNop(), 7)
	return c, evoCfg
}

func TestResumeWithNoLineageFileSeedsFreshPopulation(t *testing.T) {
	c, cfg := newTestController(t, &chatbackend.FakeBackend{}, 6, 0.95)
	path := filepath.Join(t.TempDir(), "lineage.json")

	population, err := c.Resume(path)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if len(population) != cfg.PopulationSize {
		t.Fatalf("got %d prompts, want %d", len(population), cfg.PopulationSize)
	}
	for _, p := range population {
		if p.MutationDescription != "seed" {
			t.Errorf("MutationDescription = %q, want seed", p.MutationDescription)
		}
	}
}

func TestResumeFromExistingLineagePicksTopFitnessOfLastGeneration(t *testing.T) {
	c, cfg := newTestController(t, &chatbackend.FakeBackend{}, 2, 0.95)
	path := filepath.Join(t.TempDir(), "lineage.json")

	existing := domain.LineageStore{
		Prompts: []domain.EvolvedPrompt{
			{ID: domain.NewPromptID("gen1-low"), Generation: 1, PromptText: "gen1-low", Fitness: 0.1},
			{ID: domain.NewPromptID("gen1-high"), Generation: 1, PromptText: "gen1-high", Fitness: 0.9},
			{ID: domain.NewPromptID("gen1-mid"), Generation: 1, PromptText: "gen1-mid", Fitness: 0.5},
			{ID: domain.NewPromptID("gen2-only"), Generation: 2, PromptText: "gen2-only", Fitness: 0.01},
		},
		Generations: []domain.GenerationSummary{
			{Generation: 1},
		},
	}
	if err := SaveLineage(path, existing); err != nil {
		t.Fatalf("SaveLineage: %v", err)
	}

	population, err := c.Resume(path)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if len(population) != cfg.PopulationSize {
		t.Fatalf("got %d prompts, want %d", len(population), cfg.PopulationSize)
	}
	if population[0].PromptText != "gen1-high" || population[1].PromptText != "gen1-mid" {
		t.Errorf("population = %+v, want [gen1-high, gen1-mid] by descending fitness", population)
	}
}

func TestRunGenerationProducesNextGenerationOfTargetSize(t *testing.T) {
	backend := &chatbackend.FakeBackend{Responses: []string{benignAllowResponse}}
	// Detection threshold kept unreachable so no elite graduates here —
	// this test is about carry-forward sizing, not graduation.
	c, cfg := newTestController(t, backend, 2, 1.01)
	lineagePath := filepath.Join(t.TempDir(), "lineage.json")

	population := SeedPrompts(1, cfg.PopulationSize)

	summary, next, err := c.RunGeneration(context.Background(), 1, population, lineagePath)
	if err != nil {
		t.Fatalf("RunGeneration: %v", err)
	}

	if summary.PopulationSize != cfg.PopulationSize {
		t.Errorf("summary.PopulationSize = %d, want %d", summary.PopulationSize, cfg.PopulationSize)
	}
	if len(next) != cfg.PopulationSize {
		t.Fatalf("next generation size = %d, want %d", len(next), cfg.PopulationSize)
	}

	eliteCarried := 0
	for _, p := range next {
		if p.Generation != 2 {
			t.Errorf("child generation = %d, want 2", p.Generation)
		}
		if p.MutationDescription == "elite_preserved" {
			eliteCarried++
		}
	}
	if eliteCarried != eliteSize(cfg.PopulationSize, cfg.EliteFraction) {
		t.Errorf("eliteCarried = %d, want %d", eliteCarried, eliteSize(cfg.PopulationSize, cfg.EliteFraction))
	}

	if _, err := os.Stat(lineagePath); err != nil {
		t.Errorf("lineage file was not persisted: %v", err)
	}
}

func TestRunGenerationGraduatesWhenAllThresholdsMet(t *testing.T) {
	backend := &chatbackend.FakeBackend{Responses: []string{benignAllowResponse}}
	c, cfg := newTestController(t, backend, 2, 0.95)
	lineagePath := filepath.Join(t.TempDir(), "lineage.json")

	population := SeedPrompts(1, cfg.PopulationSize)

	summary, next, err := c.RunGeneration(context.Background(), 1, population, lineagePath)
	if err != nil {
		t.Fatalf("RunGeneration: %v", err)
	}

	graduated := false
	for _, e := range summary.MonocultureEvents {
		if strings.HasPrefix(e.Message, "graduated:") {
			graduated = true
		}
	}
	if !graduated {
		t.Errorf("summary events = %+v, want at least one graduation event (all-benign/all-allow batch should clear every threshold)", summary.MonocultureEvents)
	}
	if len(summary.Graduated) == 0 {
		t.Errorf("summary.Graduated is empty, want at least one GraduatedGuardian record")
	}

	for _, g := range summary.Graduated {
		for _, p := range next {
			if p.ID == g.PromptID && p.MutationDescription == "elite_preserved" {
				t.Errorf("graduated prompt %s was carried forward into next generation as an elite, want terminal (Graduated, not carried)", g.PromptID.Hash)
			}
		}
	}
}

func TestRunGenerationPersistsAppendedLineage(t *testing.T) {
	backend := &chatbackend.FakeBackend{Responses: []string{benignAllowResponse}}
	c, cfg := newTestController(t, backend, 2, 1.01)
	lineagePath := filepath.Join(t.TempDir(), "lineage.json")

	population := SeedPrompts(1, cfg.PopulationSize)
	if _, _, err := c.RunGeneration(context.Background(), 1, population, lineagePath); err != nil {
		t.Fatalf("RunGeneration: %v", err)
	}

	raw, err := os.ReadFile(lineagePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var persisted domain.LineageStore
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(persisted.Prompts) != cfg.PopulationSize {
		t.Errorf("persisted %d prompts, want %d", len(persisted.Prompts), cfg.PopulationSize)
	}
	if len(persisted.Generations) != 1 {
		t.Errorf("persisted %d generation summaries, want 1", len(persisted.Generations))
	}
}

func TestEliteSizeIsAtLeastOne(t *testing.T) {
	if got := eliteSize(3, 0.1); got != 1 {
		t.Errorf("eliteSize(3, 0.1) = %d, want 1", got)
	}
	if got := eliteSize(10, 0.25); got != 3 {
		t.Errorf("eliteSize(10, 0.25) = %d, want 3 (ceil(2.5))", got)
	}
}
