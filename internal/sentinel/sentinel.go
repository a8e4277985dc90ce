// Package sentinel detects specialization monoculture across a
// generation's candidate and elite pools and computes the corrective
// directives the evolution controller applies (spec §4.8).
package sentinel

import (
	"fmt"
	"sort"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// Config exposes the two dominance thresholds and the sub-lineage count as
// tunable configuration. The penalty function (dominancePenalty) and the
// 1.5 mutation-rate multiplier are fixed in code and are not configurable.
type Config struct {
	DominantThreshold    float64 // share of candidate pool; default 0.5
	EliteCaptureThreshold float64 // share of elites; default 0.75
	SubLineageCount      int     // fresh non-dominant seeds to inject; default 2
}

// DefaultConfig returns the spec-suggested dominance thresholds.
func DefaultConfig() Config {
	return Config{
		DominantThreshold:     0.5,
		EliteCaptureThreshold: 0.75,
		SubLineageCount:       2,
	}
}

// DominantStrategy is a specialization whose candidate-pool share meets
// or exceeds the dominance threshold.
type DominantStrategy struct {
	Specialization domain.Specialization
	Share          float64
}

// Verdict is the sentinel's output for one generation.
type Verdict struct {
	IsMonoculture         bool
	DominantStrategies    []DominantStrategy
	EliteCaptured         []domain.Specialization
	FitnessPenalty        map[domain.Specialization]float64
	MutationRateMultiplier float64
	SubLineageCount       int
	EventLog              []string
}

// Evaluate inspects the candidate and elite specialization histograms
// and returns the monoculture verdict (spec §4.8).
func Evaluate(cfg Config, candidateHistogram map[domain.Specialization]int, populationSize int, eliteHistogram map[domain.Specialization]int, eliteCount int) Verdict {
	verdict := Verdict{
		FitnessPenalty:         make(map[domain.Specialization]float64),
		MutationRateMultiplier: 1.0,
	}

	if populationSize == 0 {
		return verdict
	}

	for _, spec := range sortedKeys(candidateHistogram) {
		share := float64(candidateHistogram[spec]) / float64(populationSize)
		if share >= cfg.DominantThreshold {
			verdict.DominantStrategies = append(verdict.DominantStrategies, DominantStrategy{Specialization: spec, Share: share})
			verdict.FitnessPenalty[spec] = dominancePenalty(share, cfg.DominantThreshold)
			verdict.EventLog = append(verdict.EventLog, fmt.Sprintf(
				"dominant strategy detected: %s at %.0f%% of candidate pool", spec, share*100))
		}
	}

	if eliteCount > 0 {
		for _, spec := range sortedKeys(eliteHistogram) {
			share := float64(eliteHistogram[spec]) / float64(eliteCount)
			if share >= cfg.EliteCaptureThreshold {
				verdict.EliteCaptured = append(verdict.EliteCaptured, spec)
				verdict.EventLog = append(verdict.EventLog, fmt.Sprintf(
					"elite capture detected: %s holds %.0f%% of elites", spec, share*100))
			}
		}
	}

	verdict.IsMonoculture = len(verdict.DominantStrategies) > 0 || len(verdict.EliteCaptured) > 0
	if verdict.IsMonoculture {
		verdict.MutationRateMultiplier = 1.5
		verdict.SubLineageCount = cfg.SubLineageCount
	}

	return verdict
}

// dominancePenalty returns the multiplicative factor 1 - (share - threshold),
// floored at 0.5, so it decreases monotonically as share exceeds threshold.
// A share exactly at the threshold gets factor 1, which leaves fitness
// unchanged.
func dominancePenalty(share, threshold float64) float64 {
	excess := share - threshold
	penalty := 1.0 - excess
	if penalty < 0.5 {
		penalty = 0.5
	}
	return penalty
}

func sortedKeys(histogram map[domain.Specialization]int) []domain.Specialization {
	keys := make([]domain.Specialization, 0, len(histogram))
	for k := range histogram {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
