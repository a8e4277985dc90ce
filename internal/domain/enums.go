// Package domain holds the data model shared by every component of the
// guardian dojo: scenarios, ground truth, interaction records, and the
// evolved prompts that make up a generation's population.
package domain

// Decision is the action a Guardian's response is classified into.
type Decision string

const (
	DecisionBlock     Decision = "block"
	DecisionAllow     Decision = "allow"
	DecisionAlert     Decision = "alert"
	DecisionLog       Decision = "log"
	DecisionEscalate  Decision = "escalate"
)

// IsGuardianBlocked reports whether this decision counts as a blocking
// response for TP/FP/TN/FN classification (spec §4.5).
func (d Decision) IsGuardianBlocked() bool {
	switch d {
	case DecisionBlock, DecisionAlert, DecisionEscalate:
		return true
	default:
		return false
	}
}

// ScenarioType is one of the fifteen threat/benign episode kinds.
type ScenarioType string

const (
	ScenarioGrooming             ScenarioType = "grooming"
	ScenarioBullying             ScenarioType = "bullying"
	ScenarioGamingScam           ScenarioType = "gamingScam"
	ScenarioDangerousChallenge   ScenarioType = "dangerousChallenge"
	ScenarioSelfHarm             ScenarioType = "selfHarm"
	ScenarioPhishing             ScenarioType = "phishing"
	ScenarioSeniorScam           ScenarioType = "seniorScam"
	ScenarioRomanceScam          ScenarioType = "romanceScam"
	ScenarioGrandparentScam      ScenarioType = "grandparentScam"
	ScenarioUnauthorizedSpend    ScenarioType = "unauthorizedSpend"
	ScenarioLocationTracking     ScenarioType = "locationTracking"
	ScenarioFakeFriendRequest    ScenarioType = "fakeFriendRequest"
	ScenarioDuress               ScenarioType = "duress"
	ScenarioSocialEngineering    ScenarioType = "socialEngineering"
	ScenarioInappropriateContent ScenarioType = "inappropriateContent"
)

// AllScenarioTypes lists all fifteen scenario types in a stable order,
// used for round-robin batch generation (spec §4.3).
var AllScenarioTypes = []ScenarioType{
	ScenarioGrooming,
	ScenarioBullying,
	ScenarioGamingScam,
	ScenarioDangerousChallenge,
	ScenarioSelfHarm,
	ScenarioPhishing,
	ScenarioSeniorScam,
	ScenarioRomanceScam,
	ScenarioGrandparentScam,
	ScenarioUnauthorizedSpend,
	ScenarioLocationTracking,
	ScenarioFakeFriendRequest,
	ScenarioDuress,
	ScenarioSocialEngineering,
	ScenarioInappropriateContent,
}

// CorrectDecision returns the type-indexed ground-truth decision for a
// threat scenario of this type (spec §4.3).
func (st ScenarioType) CorrectDecision() Decision {
	switch st {
	case ScenarioGrooming, ScenarioSelfHarm, ScenarioDuress:
		return DecisionEscalate
	case ScenarioUnauthorizedSpend, ScenarioLocationTracking, ScenarioFakeFriendRequest:
		return DecisionAlert
	default:
		// bullying, dangerousChallenge, inappropriateContent, gamingScam,
		// phishing, seniorScam, romanceScam, grandparentScam, socialEngineering
		return DecisionBlock
	}
}

// Severity returns the type-indexed ground-truth severity constant.
func (st ScenarioType) Severity() float64 {
	switch st {
	case ScenarioGrooming, ScenarioSelfHarm, ScenarioDuress:
		return 0.95
	case ScenarioUnauthorizedSpend, ScenarioLocationTracking, ScenarioFakeFriendRequest:
		return 0.6
	default:
		return 0.85
	}
}

// ProfileType is the vulnerable-user category the scenario targets.
type ProfileType string

const (
	ProfileChild       ProfileType = "child"
	ProfileSenior      ProfileType = "senior"
	ProfileFamilyAdmin ProfileType = "familyAdmin"
)

// AllProfileTypes lists the three vulnerable-user profiles in a stable
// order, used for round-robin benign generation (spec §4.3).
var AllProfileTypes = []ProfileType{ProfileChild, ProfileSenior, ProfileFamilyAdmin}

// Difficulty controls how obfuscated a generated threat scenario is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Specialization tags the dominant threat focus of an evolved prompt.
type Specialization string

const (
	SpecializationGeneralProtector   Specialization = "generalProtector"
	SpecializationGroomingSpecialist Specialization = "groomingSpecialist"
	SpecializationScamDetector       Specialization = "scamDetector"
	SpecializationContentFilter      Specialization = "contentFilter"
	SpecializationSeniorProtector    Specialization = "seniorProtector"
	SpecializationBullyingDetector   Specialization = "bullyingDetector"
)

// AllSpecializations lists the six specializations in a stable order,
// used when seeding the initial population (spec §4.9).
var AllSpecializations = []Specialization{
	SpecializationGeneralProtector,
	SpecializationGroomingSpecialist,
	SpecializationScamDetector,
	SpecializationContentFilter,
	SpecializationSeniorProtector,
	SpecializationBullyingDetector,
}

// MutationType is the tag naming how a child prompt was derived from its
// parent(s). Represented as a flat enum per spec §9 — dispatch happens in
// a table inside the mutator, not via a type hierarchy.
type MutationType string

const (
	MutationSensitivityTuning      MutationType = "sensitivityTuning"
	MutationSpecializationShift    MutationType = "specializationShift"
	MutationExplanationImprovement MutationType = "explanationImprovement"
	MutationPolicyAdherence        MutationType = "policyAdherence"
	MutationFalsePositiveReduction MutationType = "falsePositiveReduction"
	MutationCrossover              MutationType = "crossover"
)

// nonCrossoverMutations lists every mutation type that random() may
// return; crossover is excluded and only reachable via selectMutation.
var nonCrossoverMutations = []MutationType{
	MutationSensitivityTuning,
	MutationSpecializationShift,
	MutationExplanationImprovement,
	MutationPolicyAdherence,
	MutationFalsePositiveReduction,
}

// NonCrossoverMutations returns the mutation types eligible for random().
func NonCrossoverMutations() []MutationType {
	out := make([]MutationType, len(nonCrossoverMutations))
	copy(out, nonCrossoverMutations)
	return out
}
