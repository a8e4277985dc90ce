package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// SenderProfile describes the account that sent the scenario content.
type SenderProfile struct {
	DisplayName       string   `json:"displayName"`
	AccountAge        string   `json:"accountAge"`
	MutualConnections int      `json:"mutualConnections"`
	IsVerified        bool     `json:"isVerified"`
	RiskIndicators    []string `json:"riskIndicators"`
}

// GroundTruth is the known-correct classification for a scenario.
type GroundTruth struct {
	IsThreat        bool         `json:"isThreat"`
	CorrectDecision Decision     `json:"correctDecision"`
	ThreatCategory  ScenarioType `json:"threatCategory,omitempty"`
	Severity        float64      `json:"severity"`
	Patterns        []string     `json:"patterns"`
}

// PolicyRule is an opaque 4-tuple consumed by the policy oracle.
// Category/constraint pairs drive the hard-coded oracle logic in
// internal/oracle; values are rendered as strings ("true"/"false" for
// booleans, decimal for integers) per spec §3.
type PolicyRule struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Constraint string `json:"constraint"`
	Value      string `json:"value"`
}

// ScenarioContext is the payload a Guardian is asked to classify.
type ScenarioContext struct {
	ScenarioType  ScenarioType  `json:"scenarioType"`
	ProfileType   ProfileType   `json:"profileType"`
	Platform      string        `json:"platform"`
	ThreatContent string        `json:"threatContent"`
	Sender        SenderProfile `json:"senderInfo"`
	GroundTruth   GroundTruth   `json:"groundTruth"`
	ActiveRules   []PolicyRule  `json:"activeRules,omitempty"`
}

// Scenario is a labelled threat or benign episode, ephemeral to a single
// generation (spec §3 Lifecycle).
type Scenario struct {
	ID                  string          `json:"id"`
	Context             ScenarioContext `json:"context"`
	ConversationHistory []string        `json:"conversationHistory,omitempty"`
	Difficulty          Difficulty      `json:"difficulty"`
}

// InteractionRecord is the immutable outcome of one (guardian, scenario)
// evaluation round. Exactly one of TruePositive/FalsePositive/
// TrueNegative/FalseNegative is true (invariant I1).
type InteractionRecord struct {
	ID           string `json:"id"`
	SessionID    string `json:"sessionId"`
	GuardianID   string `json:"guardianId"`
	Generation   int    `json:"generation"`
	Round        int    `json:"round"`
	ScenarioID   string `json:"scenarioId"`

	ScenarioType ScenarioType `json:"scenarioType"`
	ProfileType  ProfileType  `json:"profileType"`
	Platform     string       `json:"platform"`
	Difficulty   Difficulty   `json:"difficulty"`

	Decision     Decision `json:"decision"`
	Confidence   float64  `json:"confidence"`
	Explanation  string   `json:"explanation"`

	TruePositive  bool `json:"truePositive"`
	FalsePositive bool `json:"falsePositive"`
	TrueNegative  bool `json:"trueNegative"`
	FalseNegative bool `json:"falseNegative"`

	ExplanationQuality float64 `json:"explanationQuality"`
	PrivacyCompliant    bool    `json:"privacyCompliant"`
	PolicyCompliant     bool    `json:"policyCompliant"`

	EvidenceHash string    `json:"evidenceHash"`
	Timestamp    time.Time `json:"timestamp"`
}

// RecordID builds the compound identifier `sessionId-guardianId-scenarioId`.
func RecordID(sessionID, guardianID, scenarioID string) string {
	return sessionID + "-" + guardianID + "-" + scenarioID
}

// EvidenceHash reproduces the hex SHA-256 of the record's public fields
// (invariant I6): sessionId‖guardianId‖scenarioId‖decision‖confidence.
func EvidenceHash(sessionID, guardianID, scenarioID string, decision Decision, confidence float64) string {
	h := sha256.New()
	h.Write([]byte(sessionID))
	h.Write([]byte(guardianID))
	h.Write([]byte(scenarioID))
	h.Write([]byte(decision))
	h.Write([]byte(strconv.FormatFloat(confidence, 'f', -1, 64)))
	return hex.EncodeToString(h.Sum(nil))
}

// PromptID is a content-addressed identifier: the hex SHA-256 of the
// prompt text it names. analyzer.py reads it as a nested {"hash": ...}
// object rather than a bare string, so that shape is preserved here.
type PromptID struct {
	Hash string `json:"hash"`
}

// NewPromptID computes the content-addressed identifier of prompt text
// (invariant I2: a pure function of the text).
func NewPromptID(promptText string) PromptID {
	sum := sha256.Sum256([]byte(promptText))
	return PromptID{Hash: hex.EncodeToString(sum[:])}
}

// EvolvedPrompt is one prompt configuration in the population, with its
// lineage and measured performance.
type EvolvedPrompt struct {
	ID                  PromptID        `json:"id"`
	Generation          int             `json:"generation"`
	ParentID            *PromptID       `json:"parentId,omitempty"`
	PromptText          string          `json:"promptText"`
	Specialization      Specialization  `json:"specialization"`
	Fitness             float64         `json:"fitness"`
	DetectionRate       float64         `json:"detectionRate"`
	FalsePositiveRate   float64         `json:"falsePositiveRate"`
	MutationDescription string          `json:"mutationDescription"`
}

// MonocultureEvent is a human-readable entry in a generation's event log.
type MonocultureEvent struct {
	Message string `json:"message"`
}

// GenerationSummary records the outcome of a single generation.
type GenerationSummary struct {
	Generation              int                         `json:"generation"`
	PopulationSize           int                         `json:"populationSize"`
	BestFitness              float64                     `json:"bestFitness"`
	AvgFitness               float64                     `json:"avgFitness"`
	BestDetectionRate        float64                     `json:"bestDetectionRate"`
	BestFalsePositiveRate    float64                     `json:"bestFalsePositiveRate"`
	DistinctSpecializations  int                         `json:"distinctSpecializations"`
	SpecializationHistogram  map[Specialization]int      `json:"specializationHistogram"`
	MonocultureEvents        []MonocultureEvent          `json:"monocultureEvents,omitempty"`
	Graduated                []GraduatedGuardian         `json:"graduated,omitempty"`
}

// LineageStore is the ordered, append-only history of all prompts and
// generation summaries produced by the training loop.
type LineageStore struct {
	Prompts     []EvolvedPrompt     `json:"prompts"`
	Generations []GenerationSummary `json:"generations"`
}

// GraduatedGuardian names a prompt that has met every graduation
// criterion for the required number of generations (spec §4.9).
type GraduatedGuardian struct {
	Name       string        `json:"name"`
	PromptID   PromptID      `json:"promptId"`
	Generation int           `json:"generation"`
	Fitness    float64       `json:"fitness"`
}
