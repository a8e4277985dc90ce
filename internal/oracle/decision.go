package oracle

import "github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"

// ValidateDecision accumulates decision-penalty violations for a
// (decision, scenario) pair (spec §4.4 rules 9-10): blocking a benign
// scenario is rule 10; blocking a benign scenario against a child
// profile additionally triggers rule 9. The penalty is clamped to ≤1.0.
func ValidateDecision(decision domain.Decision, scenario domain.Scenario) ([]RuleViolation, float64) {
	var violations []RuleViolation
	var penalty float64

	if decision == domain.DecisionBlock && !scenario.Context.GroundTruth.IsThreat {
		violations = append(violations, RuleViolation{
			Rule:   10,
			Name:   "false_positive_block",
			Detail: "decision=block on a benign scenario",
		})
		penalty += 0.15

		if scenario.Context.ProfileType == domain.ProfileChild {
			violations = append(violations, RuleViolation{
				Rule:   9,
				Name:   "child_false_positive_block",
				Detail: "decision=block on a benign scenario for a child profile",
			})
			penalty += 0.20
		}
	}

	if penalty > 1.0 {
		penalty = 1.0
	}
	return violations, penalty
}
