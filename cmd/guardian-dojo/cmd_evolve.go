package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/arena"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/evolution"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/scenario"
)

var evolveFlags struct {
	configPath  string
	generations int
}

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Run the generation loop: evaluate, select elites, mutate, repeat",
	RunE:  runEvolve,
}

func init() {
	f := evolveCmd.Flags()
	f.StringVar(&evolveFlags.configPath, "config", "configs/config.yml", "Path to YAML config file")
	f.IntVar(&evolveFlags.generations, "generations", 1, "Number of generations to run")
}

func runEvolve(cmd *cobra.Command, _ []string) error {
	h, err := newHarness(evolveFlags.configPath)
	if err != nil {
		return fmt.Errorf("initialize harness: %w", err)
	}
	defer h.Close()

	external := scenario.LoadExternal(h.cfg.Scenario.ExternalDir, h.logger)
	ctrl := evolution.New(h.cfg.Evolution, h.cfg.Scenario, h.backend, arena.NewArena(h.store, h.logger), external, h.logger, time.Now().UnixNano())

	population, err := ctrl.Resume(h.cfg.Evolution.LineagePath)
	if err != nil {
		return fmt.Errorf("resume lineage: %w", err)
	}

	out := cmd.OutOrStdout()
	ctx := context.Background()

	for i := 0; i < evolveFlags.generations; i++ {
		generation := population[0].Generation
		summary, next, err := ctrl.RunGeneration(ctx, generation, population, h.cfg.Evolution.LineagePath)
		if err != nil {
			return fmt.Errorf("run generation %d: %w", generation, err)
		}

		fmt.Fprintf(out, "Generation %d: best=%.3f avg=%.3f detection=%.3f fp=%.3f specializations=%d\n",
			summary.Generation, summary.BestFitness, summary.AvgFitness,
			summary.BestDetectionRate, summary.BestFalsePositiveRate, summary.DistinctSpecializations)
		for _, event := range summary.MonocultureEvents {
			fmt.Fprintf(out, "  %s\n", event.Message)
		}
		for _, g := range summary.Graduated {
			fmt.Fprintf(out, "  graduated: %s (prompt %s, fitness %.3f)\n", g.Name, g.PromptID.Hash[:12], g.Fitness)
		}

		h.logger.Info("generation complete",
			zap.Int("generation", summary.Generation),
			zap.Float64("best_fitness", summary.BestFitness),
			zap.Int("graduated_count", len(summary.Graduated)))

		population = next
	}

	return nil
}
