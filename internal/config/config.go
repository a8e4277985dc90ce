// Package config loads the dojo's YAML configuration, following the same
// open-decode-default pattern as the teacher's per-service config loaders.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the training harness.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// BackendConfig points the chat adapter at a locally-hosted model server.
type BackendConfig struct {
	URL        string `yaml:"url"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	MaxRetries int    `yaml:"max_retries"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DatabaseConfig locates the encrypted record store and its key material.
type DatabaseConfig struct {
	Path       string `yaml:"path"`
	KeyPath    string `yaml:"key_path"`
}

// ScenarioConfig controls synthetic/external scenario mixing.
type ScenarioConfig struct {
	ExternalDir  string  `yaml:"external_dir"`
	ThreatRatio  float64 `yaml:"threat_ratio"`
	BatchSize    int     `yaml:"batch_size"`
}

// EvolutionConfig controls the generation loop's tunables.
type EvolutionConfig struct {
	LineagePath           string  `yaml:"lineage_path"`
	PopulationSize         int     `yaml:"population_size"`
	EliteFraction          float64 `yaml:"elite_fraction"`
	MinGenerations         int     `yaml:"min_generations"`
	DetectionThreshold     float64 `yaml:"detection_threshold"`
	FalsePositiveThreshold float64 `yaml:"false_positive_threshold"`
	RevocationThreshold    float64 `yaml:"revocation_threshold"`
	ExplanationThreshold   float64 `yaml:"explanation_threshold"`
	FitnessWeights         FitnessWeights `yaml:"fitness_weights"`
	Sentinel               SentinelConfig `yaml:"sentinel"`
}

// FitnessWeights configures the relative contribution of each dimension
// to totalFitness (spec §4.6); mirrors internal/fitness.Weights so it can
// be loaded from YAML without internal/fitness depending on this package.
type FitnessWeights struct {
	Detection     float64 `yaml:"detection"`
	FalsePositive float64 `yaml:"false_positive"`
	Privacy       float64 `yaml:"privacy"`
	Revocation    float64 `yaml:"revocation"`
	Explanation   float64 `yaml:"explanation"`
	Policy        float64 `yaml:"policy"`
}

// SentinelConfig exposes the monoculture-detection thresholds (spec §4.8,
// §9 Open Question (c)); mirrors internal/sentinel.Config.
type SentinelConfig struct {
	DominantThreshold     float64 `yaml:"dominant_threshold"`
	EliteCaptureThreshold float64 `yaml:"elite_capture_threshold"`
	SubLineageCount       int     `yaml:"sub_lineage_count"`
}

// LoadConfig reads and decodes a YAML config file, filling in defaults
// for anything left unset.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyDefaults(cfg)
	cfg.Backend.APIKey = os.ExpandEnv(cfg.Backend.APIKey)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:11434/v1/chat/completions"
	}
	if cfg.Backend.Model == "" {
		cfg.Backend.Model = "llama3.1"
	}
	if cfg.Backend.MaxRetries == 0 {
		cfg.Backend.MaxRetries = 3
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/guardian_dojo.db"
	}
	if cfg.Database.KeyPath == "" {
		cfg.Database.KeyPath = "./data/guardian_dojo.key"
	}

	if cfg.Scenario.ThreatRatio == 0 {
		cfg.Scenario.ThreatRatio = 0.7
	}
	if cfg.Scenario.BatchSize == 0 {
		cfg.Scenario.BatchSize = 30
	}

	if cfg.Evolution.LineagePath == "" {
		cfg.Evolution.LineagePath = "data/guardian_lineage.json"
	}
	if cfg.Evolution.PopulationSize == 0 {
		cfg.Evolution.PopulationSize = 18
	}
	if cfg.Evolution.EliteFraction == 0 {
		cfg.Evolution.EliteFraction = 0.25
	}
	if cfg.Evolution.MinGenerations == 0 {
		cfg.Evolution.MinGenerations = 5
	}
	if cfg.Evolution.DetectionThreshold == 0 {
		cfg.Evolution.DetectionThreshold = 0.95
	}
	if cfg.Evolution.FalsePositiveThreshold == 0 {
		cfg.Evolution.FalsePositiveThreshold = 0.05
	}
	if cfg.Evolution.RevocationThreshold == 0 {
		cfg.Evolution.RevocationThreshold = 1.0
	}
	if cfg.Evolution.ExplanationThreshold == 0 {
		cfg.Evolution.ExplanationThreshold = 0.70
	}

	w := &cfg.Evolution.FitnessWeights
	if w.Detection == 0 {
		w.Detection = 0.35
	}
	if w.FalsePositive == 0 {
		w.FalsePositive = 0.20
	}
	if w.Privacy == 0 {
		w.Privacy = 0.15
	}
	if w.Revocation == 0 {
		w.Revocation = 0.10
	}
	if w.Explanation == 0 {
		w.Explanation = 0.10
	}
	if w.Policy == 0 {
		w.Policy = 0.10
	}

	s := &cfg.Evolution.Sentinel
	if s.DominantThreshold == 0 {
		s.DominantThreshold = 0.5
	}
	if s.EliteCaptureThreshold == 0 {
		s.EliteCaptureThreshold = 0.75
	}
	if s.SubLineageCount == 0 {
		s.SubLineageCount = 2
	}
}
