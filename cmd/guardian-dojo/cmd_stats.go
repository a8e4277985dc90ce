package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/evolution"
)

var statsFlags struct {
	configPath string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show decision counts from the record store and progress from the lineage file",
	RunE:  runStats,
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsFlags.configPath, "config", "configs/config.yml", "Path to YAML config file")
}

func runStats(cmd *cobra.Command, _ []string) error {
	h, err := newHarness(statsFlags.configPath)
	if err != nil {
		return fmt.Errorf("initialize harness: %w", err)
	}
	defer h.Close()

	total, err := h.store.TotalCount()
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	counts, err := h.store.CountByDecision()
	if err != nil {
		return fmt.Errorf("count by decision: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total interaction records: %d\n", total)
	fmt.Fprintf(out, "By decision:\n")

	decisions := make([]string, 0, len(counts))
	for d := range counts {
		decisions = append(decisions, string(d))
	}
	sort.Strings(decisions)
	for _, d := range decisions {
		fmt.Fprintf(out, "  %-10s %d\n", d, counts[domain.Decision(d)])
	}

	lineage, err := evolution.LoadLineage(h.cfg.Evolution.LineagePath)
	if err != nil {
		return fmt.Errorf("load lineage: %w", err)
	}
	printLineageStats(out, lineage)

	return nil
}

// printLineageStats reports the shape analyzer.py computes over a
// training run's lineage file: generation count, best fitness/detection/FPR
// across the whole run, the fitness progression from the first to the
// last generation, graduated guardian totals, and the latest generation's
// specialization histogram.
func printLineageStats(out io.Writer, lineage domain.LineageStore) {
	fmt.Fprintf(out, "\nLineage: %d generation(s) recorded\n", len(lineage.Generations))
	if len(lineage.Generations) == 0 {
		return
	}

	generations := lineage.Generations
	best := generations[0]
	for _, g := range generations {
		if g.BestFitness > best.BestFitness {
			best = g
		}
	}
	fmt.Fprintf(out, "Best overall: fitness=%.3f detection=%.3f fp=%.3f (generation %d)\n",
		best.BestFitness, best.BestDetectionRate, best.BestFalsePositiveRate, best.Generation)

	first, last := generations[0], generations[len(generations)-1]
	fmt.Fprintf(out, "Fitness progression: gen %d best=%.3f -> gen %d best=%.3f\n",
		first.Generation, first.BestFitness, last.Generation, last.BestFitness)

	fmt.Fprintf(out, "Graduated guardians: %d\n", countGraduated(generations))

	fmt.Fprintf(out, "Specialization histogram (generation %d):\n", last.Generation)
	specs := make([]string, 0, len(last.SpecializationHistogram))
	for spec := range last.SpecializationHistogram {
		specs = append(specs, string(spec))
	}
	sort.Strings(specs)
	for _, spec := range specs {
		fmt.Fprintf(out, "  %-20s %d\n", spec, last.SpecializationHistogram[domain.Specialization(spec)])
	}
}

func countGraduated(generations []domain.GenerationSummary) int {
	total := 0
	for _, g := range generations {
		total += len(g.Graduated)
	}
	return total
}
