// Package evolution runs the generation loop: instantiate guardians from
// the current population, evaluate them in the arena, attribute fitness,
// apply sentinel corrections, select elites, graduate winners, mutate the
// remainder, and persist lineage (spec §4.9).
package evolution

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/arena"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/config"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/fitness"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/mutator"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/scenario"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/sentinel"
)

// Controller orchestrates the generation loop described in spec §4.9.
type Controller struct {
	cfg      config.EvolutionConfig
	scenario config.ScenarioConfig

	backend chatbackend.Backend
	arena   *arena.Arena
	mutator *mutator.Mutator
	sentinelCfg     sentinel.Config
	fitnessWeights  fitness.Weights
	generator       *scenario.Generator
	external        []domain.Scenario
	logger          *zap.Logger

	rng *rand.Rand

	lineage domain.LineageStore
}

// New builds a Controller from its dependencies and configuration. Fitness
// weights and sentinel thresholds come from cfg (config.yml's
// evolution.fitness_weights / evolution.sentinel blocks), not hardcoded
// defaults, so a deployment can tune them without a rebuild (spec's
// ambient config section).
func New(cfg config.EvolutionConfig, scenarioCfg config.ScenarioConfig, backend chatbackend.Backend, a *arena.Arena, external []domain.Scenario, logger *zap.Logger, seed int64) *Controller {
	return &Controller{
		cfg:      cfg,
		scenario: scenarioCfg,
		backend:  backend,
		arena:    a,
		mutator:  mutator.New(backend, seed),
		sentinelCfg: sentinel.Config{
			DominantThreshold:     cfg.Sentinel.DominantThreshold,
			EliteCaptureThreshold: cfg.Sentinel.EliteCaptureThreshold,
			SubLineageCount:       cfg.Sentinel.SubLineageCount,
		},
		fitnessWeights: fitness.Weights{
			Detection:     cfg.FitnessWeights.Detection,
			FalsePositive: cfg.FitnessWeights.FalsePositive,
			Privacy:       cfg.FitnessWeights.Privacy,
			Revocation:    cfg.FitnessWeights.Revocation,
			Explanation:   cfg.FitnessWeights.Explanation,
			Policy:        cfg.FitnessWeights.Policy,
		},
		generator: scenario.NewGenerator(seed),
		external:  external,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Resume loads lineage from path if present and seeds the current
// population: from the last generation's top-fitness prompts if any
// generation has run, else from SeedPrompts (spec §4.9).
func (c *Controller) Resume(path string) ([]domain.EvolvedPrompt, error) {
	lineage, err := LoadLineage(path)
	if err != nil {
		return nil, err
	}
	c.lineage = lineage

	if len(lineage.Generations) == 0 {
		return SeedPrompts(1, c.cfg.PopulationSize), nil
	}

	lastGen := lineage.Generations[len(lineage.Generations)-1].Generation
	var candidates []domain.EvolvedPrompt
	for _, p := range lineage.Prompts {
		if p.Generation == lastGen {
			candidates = append(candidates, p)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Fitness > candidates[j].Fitness })

	if len(candidates) > c.cfg.PopulationSize {
		candidates = candidates[:c.cfg.PopulationSize]
	}
	return candidates, nil
}

// scoredPrompt pairs a population member with its full fitness result for
// this generation, so graduation checks (which need revocationScore and
// explanationScore, not carried on EvolvedPrompt) survive the subsequent
// sorting/filtering passes regardless of whether two members share prompt
// text (and therefore a content-addressed PromptID).
type scoredPrompt struct {
	Prompt domain.EvolvedPrompt
	Result fitness.Result
}

func promptsOf(scored []scoredPrompt) []domain.EvolvedPrompt {
	out := make([]domain.EvolvedPrompt, len(scored))
	for i, s := range scored {
		out[i] = s.Prompt
	}
	return out
}

// RunGeneration executes one full generation-procedure pass (spec §4.9
// steps 1-10) and returns the summary plus the next generation's
// population.
func (c *Controller) RunGeneration(ctx context.Context, generation int, population []domain.EvolvedPrompt, lineagePath string) (domain.GenerationSummary, []domain.EvolvedPrompt, error) {
	guardians := c.instantiateGuardians(population)

	batchSize := c.scenario.BatchSize
	synthetic := c.generator.Batch(batchSize, c.scenario.ThreatRatio)
	batch := arena.AssembleBatch(synthetic, c.external, c.rng)

	sessionID := fmt.Sprintf("gen-%d", generation)
	scored := make([]scoredPrompt, len(population))

	for i, prompt := range population {
		guardian := guardians[i]
		report, err := c.arena.RunSession(ctx, guardian, sessionID, generation, batch)
		if err != nil {
			return domain.GenerationSummary{}, nil, fmt.Errorf("run session for prompt %s: %w", prompt.ID.Hash, err)
		}
		result := fitness.Evaluate(report.Records, c.fitnessWeights)
		prompt.Fitness = result.TotalFitness
		prompt.DetectionRate = result.DetectionRate
		prompt.FalsePositiveRate = result.FalsePositiveRate
		scored[i] = scoredPrompt{Prompt: prompt, Result: result}
	}

	c.lineage.Prompts = append(c.lineage.Prompts, promptsOf(scored)...)

	candidateHistogram := specializationHistogram(promptsOf(scored))
	eliteCount := eliteSize(len(scored), c.cfg.EliteFraction)

	preEliteOrder := append([]scoredPrompt(nil), scored...)
	sort.Slice(preEliteOrder, func(i, j int) bool { return preEliteOrder[i].Prompt.Fitness > preEliteOrder[j].Prompt.Fitness })
	provisionalElites := preEliteOrder
	if len(provisionalElites) > eliteCount {
		provisionalElites = provisionalElites[:eliteCount]
	}
	eliteHistogram := specializationHistogram(promptsOf(provisionalElites))

	verdict := sentinel.Evaluate(c.sentinelCfg, candidateHistogram, len(scored), eliteHistogram, len(provisionalElites))

	var events []domain.MonocultureEvent
	for _, msg := range verdict.EventLog {
		events = append(events, domain.MonocultureEvent{Message: msg})
	}

	for i := range scored {
		if penalty, ok := verdict.FitnessPenalty[scored[i].Prompt.Specialization]; ok {
			before := scored[i].Prompt.Fitness
			scored[i].Prompt.Fitness *= penalty
			events = append(events, domain.MonocultureEvent{
				Message: fmt.Sprintf("fitness penalty applied to %s: %.3f -> %.3f (factor %.3f)",
					scored[i].Prompt.Specialization, before, scored[i].Prompt.Fitness, penalty),
			})
		}
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Prompt.Fitness > scored[j].Prompt.Fitness })
	eliteScored := scored
	if len(eliteScored) > eliteCount {
		eliteScored = eliteScored[:eliteCount]
	}

	// Step 8: an elite that graduates is terminal for this run and must
	// not be carried into the next generation (spec.md:159's state
	// machine) — only non-graduating elites survive into buildNextGeneration.
	var graduated []domain.GraduatedGuardian
	var survivingElites []domain.EvolvedPrompt
	for _, se := range eliteScored {
		if c.meetsGraduation(generation, se.Result) {
			graduated = append(graduated, domain.GraduatedGuardian{
				Name:       fmt.Sprintf("Guardian-%s-Gen%d", se.Prompt.Specialization, generation),
				PromptID:   se.Prompt.ID,
				Generation: generation,
				Fitness:    se.Prompt.Fitness,
			})
			events = append(events, domain.MonocultureEvent{
				Message: fmt.Sprintf("graduated: %s (fitness %.3f)", se.Prompt.Specialization, se.Prompt.Fitness),
			})
			continue
		}
		survivingElites = append(survivingElites, se.Prompt)
	}

	rankedPopulation := promptsOf(scored)
	summary := summarize(generation, len(rankedPopulation), rankedPopulation, events, graduated)

	c.lineage.Generations = append(c.lineage.Generations, summary)
	if err := SaveLineage(lineagePath, c.lineage); err != nil {
		return domain.GenerationSummary{}, nil, fmt.Errorf("persist lineage: %w", err)
	}

	next := c.buildNextGeneration(ctx, generation, survivingElites, rankedPopulation, verdict)

	return summary, next, nil
}

// instantiateGuardians assigns each population slot its own guardian
// identity (content hash of its prompt text plus its slot index), since
// duplicate prompt text across slots — expected whenever populationSize
// exceeds the six seed specializations — would otherwise collapse
// distinct guardians onto one content-addressed ID, both in fitness
// attribution and in the record store's guardian-keyed primary key.
func (c *Controller) instantiateGuardians(population []domain.EvolvedPrompt) []*arena.Guardian {
	guardians := make([]*arena.Guardian, len(population))
	for i, p := range population {
		guardians[i] = arena.NewGuardian(GuardianID(p.ID, i), p.PromptText, c.backend)
	}
	return guardians
}

// GuardianID derives a per-slot guardian identity from a prompt's
// content-addressed ID and its position in the population, so that
// duplicate prompt text across slots (expected once populationSize
// exceeds the seed specialization count) still produces distinct
// identities for fitness attribution and record-store keys.
func GuardianID(promptID domain.PromptID, slot int) string {
	return fmt.Sprintf("%s-%d", promptID.Hash, slot)
}

func (c *Controller) meetsGraduation(generation int, result fitness.Result) bool {
	return generation >= c.cfg.MinGenerations &&
		result.DetectionRate >= c.cfg.DetectionThreshold &&
		result.FalsePositiveRate <= c.cfg.FalsePositiveThreshold &&
		result.RevocationScore >= c.cfg.RevocationThreshold &&
		result.ExplanationScore >= c.cfg.ExplanationThreshold
}

// buildNextGeneration carries elites forward verbatim, injects
// sentinel-requested sub-lineage seeds, and fills the remainder by
// mutation (spec §4.9 step 10).
func (c *Controller) buildNextGeneration(ctx context.Context, generation int, elites []domain.EvolvedPrompt, evaluated []domain.EvolvedPrompt, verdict sentinel.Verdict) []domain.EvolvedPrompt {
	next := make([]domain.EvolvedPrompt, 0, c.cfg.PopulationSize)

	for _, elite := range elites {
		carried := elite
		carried.Generation = generation + 1
		carried.MutationDescription = "elite_preserved"
		next = append(next, carried)
		if len(next) >= c.cfg.PopulationSize {
			return next
		}
	}

	dominant := map[domain.Specialization]bool{}
	for _, d := range verdict.DominantStrategies {
		dominant[d.Specialization] = true
	}
	for _, spec := range domain.AllSpecializations {
		if len(next) >= c.cfg.PopulationSize || len(next)-len(elites) >= verdict.SubLineageCount {
			break
		}
		if dominant[spec] {
			continue
		}
		text := specialistPrompts[spec]
		next = append(next, domain.EvolvedPrompt{
			ID:                  domain.NewPromptID(text),
			Generation:          generation + 1,
			PromptText:          text,
			Specialization:      spec,
			MutationDescription: "sub_lineage_seed",
		})
	}

	feedback := feedbackString(evaluated)
	forceShiftProb := math.Min(0.5*verdict.MutationRateMultiplier, 0.95)

	for len(next) < c.cfg.PopulationSize {
		child := c.fillSlot(ctx, generation, elites, feedback, forceShiftProb)
		next = append(next, child)
	}

	return next
}

func (c *Controller) fillSlot(ctx context.Context, generation int, elites []domain.EvolvedPrompt, feedback string, forceShiftProb float64) domain.EvolvedPrompt {
	mutType := domain.MutationSpecializationShift
	if c.rng.Float64() >= forceShiftProb {
		mutType = c.mutator.SelectMutation(len(elites))
	}

	var (
		childText string
		parent    domain.EvolvedPrompt
		err       error
	)

	if mutType == domain.MutationCrossover && len(elites) >= 2 {
		a, b := distinctElites(elites, c.rng)
		parent = a
		childText, err = c.mutator.Crossover(ctx, a.PromptText, b.PromptText, feedback)
	} else if len(elites) > 0 {
		parent = elites[c.rng.Intn(len(elites))]
		childText, err = c.mutator.Mutate(ctx, mutType, parent.PromptText, feedback)
	} else {
		parent = domain.EvolvedPrompt{PromptText: specialistPrompts[domain.SpecializationGeneralProtector]}
		childText, err = c.mutator.Mutate(ctx, mutType, parent.PromptText, feedback)
	}

	if err != nil {
		c.logger.Warn("mutator failed, carrying parent text forward", zap.Error(err), zap.String("mutation_type", string(mutType)))
		childText = parent.PromptText
		mutType = domain.MutationType("carried_forward")
	}

	parentID := parent.ID
	return domain.EvolvedPrompt{
		ID:                  domain.NewPromptID(childText),
		Generation:          generation + 1,
		ParentID:            &parentID,
		PromptText:          childText,
		Specialization:      ClassifySpecialization(childText),
		MutationDescription: string(mutType),
	}
}

func distinctElites(elites []domain.EvolvedPrompt, rng *rand.Rand) (domain.EvolvedPrompt, domain.EvolvedPrompt) {
	i := rng.Intn(len(elites))
	j := rng.Intn(len(elites))
	for j == i {
		j = rng.Intn(len(elites))
	}
	return elites[i], elites[j]
}

func feedbackString(evaluated []domain.EvolvedPrompt) string {
	if len(evaluated) == 0 {
		return "no prior evaluation data available"
	}
	best := evaluated[0]
	for _, p := range evaluated {
		if p.Fitness > best.Fitness {
			best = p
		}
	}
	return fmt.Sprintf("best fitness this generation: %.3f (detection %.3f, false positive rate %.3f)",
		best.Fitness, best.DetectionRate, best.FalsePositiveRate)
}

func specializationHistogram(prompts []domain.EvolvedPrompt) map[domain.Specialization]int {
	histogram := make(map[domain.Specialization]int)
	for _, p := range prompts {
		histogram[p.Specialization]++
	}
	return histogram
}

func eliteSize(populationSize int, eliteFraction float64) int {
	size := int(math.Ceil(float64(populationSize) * eliteFraction))
	if size < 1 {
		size = 1
	}
	return size
}

func summarize(generation, populationSize int, population []domain.EvolvedPrompt, events []domain.MonocultureEvent, graduated []domain.GraduatedGuardian) domain.GenerationSummary {
	var bestFitness, avgFitness, bestDetection, bestFPR float64
	histogram := specializationHistogram(population)

	for i, p := range population {
		avgFitness += p.Fitness
		if i == 0 || p.Fitness > bestFitness {
			bestFitness = p.Fitness
			bestDetection = p.DetectionRate
			bestFPR = p.FalsePositiveRate
		}
	}
	if len(population) > 0 {
		avgFitness /= float64(len(population))
	}

	return domain.GenerationSummary{
		Generation:             generation,
		PopulationSize:         populationSize,
		BestFitness:            bestFitness,
		AvgFitness:             avgFitness,
		BestDetectionRate:      bestDetection,
		BestFalsePositiveRate:  bestFPR,
		DistinctSpecializations: len(histogram),
		SpecializationHistogram: histogram,
		MonocultureEvents:       events,
		Graduated:               graduated,
	}
}
