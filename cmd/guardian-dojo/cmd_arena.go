package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/arena"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/evolution"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/scenario"
)

var arenaFlags struct {
	configPath string
}

var arenaCmd = &cobra.Command{
	Use:   "arena",
	Short: "Run one evaluation session against the current population without evolving it",
	RunE:  runArena,
}

func init() {
	f := arenaCmd.Flags()
	f.StringVar(&arenaFlags.configPath, "config", "configs/config.yml", "Path to YAML config file")
}

func runArena(cmd *cobra.Command, _ []string) error {
	h, err := newHarness(arenaFlags.configPath)
	if err != nil {
		return fmt.Errorf("initialize harness: %w", err)
	}
	defer h.Close()

	seed := time.Now().UnixNano()
	generator := scenario.NewGenerator(seed)
	external := scenario.LoadExternal(h.cfg.Scenario.ExternalDir, h.logger)

	synthetic := generator.Batch(h.cfg.Scenario.BatchSize, h.cfg.Scenario.ThreatRatio)
	batch := arena.AssembleBatch(synthetic, external, rand.New(rand.NewSource(seed)))

	ctrl := evolution.New(h.cfg.Evolution, h.cfg.Scenario, h.backend, arena.NewArena(h.store, h.logger), external, h.logger, seed)
	population, err := ctrl.Resume(h.cfg.Evolution.LineagePath)
	if err != nil {
		return fmt.Errorf("load population: %w", err)
	}

	a := arena.NewArena(h.store, h.logger)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session against %d guardian(s), %d scenarios each\n", len(population), len(batch))

	for i, prompt := range population {
		guardian := arena.NewGuardian(evolution.GuardianID(prompt.ID, i), prompt.PromptText, h.backend)
		report, err := a.RunSession(context.Background(), guardian, "arena-session", prompt.Generation, batch)
		if err != nil {
			return fmt.Errorf("run session for %s: %w", prompt.Specialization, err)
		}
		fmt.Fprintf(out, "  %s (%s): %d records\n", guardian.ID, prompt.Specialization, len(report.Records))
	}

	return nil
}
