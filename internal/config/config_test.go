package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("backend:\n  model: test-model\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Backend.Model != "test-model" {
		t.Errorf("Backend.Model = %q, want test-model", cfg.Backend.Model)
	}
	if cfg.Evolution.PopulationSize != 18 {
		t.Errorf("Evolution.PopulationSize = %d, want default 18", cfg.Evolution.PopulationSize)
	}
	if cfg.Scenario.ThreatRatio != 0.7 {
		t.Errorf("Scenario.ThreatRatio = %v, want default 0.7", cfg.Scenario.ThreatRatio)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yml"); err == nil {
		t.Fatal("expected error loading missing config file")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("backend:\n  api_key: \"${DOJO_TEST_KEY}\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DOJO_TEST_KEY", "secret-value")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.APIKey != "secret-value" {
		t.Errorf("Backend.APIKey = %q, want secret-value", cfg.Backend.APIKey)
	}
}
