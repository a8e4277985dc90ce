package scenario

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// externalFile mirrors the external scenario JSON schema (spec §6). Every
// field except "id" is optional on the wire (a file without an id is
// skipped); toScenario defaults a missing difficulty to easy and a missing
// correctDecision to allow.
type externalFile struct {
	ID                  string   `json:"id"`
	Difficulty          string   `json:"difficulty"`
	ConversationHistory []string `json:"conversationHistory"`
	Context             struct {
		ScenarioType string `json:"scenarioType"`
		ProfileType  string `json:"profileType"`
		Platform     string `json:"platform"`
		ThreatContent string `json:"threatContent"`
		SenderInfo   struct {
			DisplayName       string   `json:"displayName"`
			AccountAge        string   `json:"accountAge"`
			MutualConnections int      `json:"mutualConnections"`
			IsVerified        bool     `json:"isVerified"`
			RiskIndicators    []string `json:"riskIndicators"`
		} `json:"senderInfo"`
		GroundTruth struct {
			IsThreat        bool     `json:"isThreat"`
			CorrectDecision string   `json:"correctDecision"`
			Severity        float64  `json:"severity"`
			Patterns        []string `json:"patterns"`
		} `json:"groundTruth"`
	} `json:"context"`
}

// LoadExternal recursively walks dir, parsing every JSON file matching
// the external scenario schema. Unreadable or malformed files are skipped
// without failing the load; each skip is logged as a warning when logger
// is non-nil (spec §4.3, §7 scenario-loader error kind).
func LoadExternal(dir string, logger *zap.Logger) []domain.Scenario {
	var out []domain.Scenario

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			if logger != nil {
				logger.Warn("failed to read external scenario file", zap.String("path", path), zap.Error(readErr))
			}
			return nil
		}

		var ef externalFile
		if decodeErr := json.Unmarshal(raw, &ef); decodeErr != nil {
			if logger != nil {
				logger.Warn("skipping malformed external scenario file", zap.String("path", path), zap.Error(decodeErr))
			}
			return nil
		}
		if ef.ID == "" {
			return nil
		}

		out = append(out, ef.toScenario())
		return nil
	})
	if walkErr != nil && logger != nil {
		logger.Warn("external scenario directory walk failed", zap.String("dir", dir), zap.Error(walkErr))
	}

	return out
}

func (ef externalFile) toScenario() domain.Scenario {
	difficulty := domain.Difficulty(ef.Difficulty)
	if difficulty == "" {
		difficulty = domain.DifficultyEasy
	}

	decision := domain.Decision(ef.Context.GroundTruth.CorrectDecision)
	if decision == "" {
		decision = domain.DecisionAllow
	}

	return domain.Scenario{
		ID:                  ef.ID,
		Difficulty:           difficulty,
		ConversationHistory:  ef.ConversationHistory,
		Context: domain.ScenarioContext{
			ScenarioType:  domain.ScenarioType(ef.Context.ScenarioType),
			ProfileType:   domain.ProfileType(ef.Context.ProfileType),
			Platform:      ef.Context.Platform,
			ThreatContent: ef.Context.ThreatContent,
			Sender: domain.SenderProfile{
				DisplayName:       ef.Context.SenderInfo.DisplayName,
				AccountAge:        ef.Context.SenderInfo.AccountAge,
				MutualConnections: ef.Context.SenderInfo.MutualConnections,
				IsVerified:        ef.Context.SenderInfo.IsVerified,
				RiskIndicators:    ef.Context.SenderInfo.RiskIndicators,
			},
			GroundTruth: domain.GroundTruth{
				IsThreat:        ef.Context.GroundTruth.IsThreat,
				CorrectDecision: decision,
				Severity:        ef.Context.GroundTruth.Severity,
				Patterns:        ef.Context.GroundTruth.Patterns,
			},
		},
	}
}
