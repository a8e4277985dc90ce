package arena

import (
	"fmt"
	"strings"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// responseFormatClause is appended to every evaluation prompt verbatim
// (spec §4.5, §6): it tells the model the exact three-line contract the
// response parser expects.
const responseFormatClause = `Respond in exactly this format:
DECISION: <BLOCK|ALLOW|ALERT|LOG|ESCALATE>
CONFIDENCE: <float between 0 and 1>
EXPLANATION: <your reasoning>`

// BuildPrompt assembles the evaluation prompt for one (guardian, scenario)
// round: platform, sender profile, content, optional conversation
// history, active policies, and the fixed response-format clause.
func BuildPrompt(scenario domain.Scenario) string {
	var b strings.Builder

	ctx := scenario.Context
	fmt.Fprintf(&b, "Platform: %s\n", ctx.Platform)
	fmt.Fprintf(&b, "Sender: %s (account age: %s, mutual connections: %d, verified: %t)\n",
		ctx.Sender.DisplayName, ctx.Sender.AccountAge, ctx.Sender.MutualConnections, ctx.Sender.IsVerified)
	if len(ctx.Sender.RiskIndicators) > 0 {
		fmt.Fprintf(&b, "Risk indicators: %s\n", strings.Join(ctx.Sender.RiskIndicators, "; "))
	}

	if len(scenario.ConversationHistory) > 0 {
		b.WriteString("Conversation history:\n")
		for _, line := range scenario.ConversationHistory {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	fmt.Fprintf(&b, "Content: %s\n", ctx.ThreatContent)

	if len(ctx.ActiveRules) > 0 {
		b.WriteString("Active policies:\n")
		for _, rule := range ctx.ActiveRules {
			fmt.Fprintf(&b, "  %s: %s %s = %s\n", rule.ID, rule.Category, rule.Constraint, rule.Value)
		}
	}

	b.WriteString("\n")
	b.WriteString(responseFormatClause)

	return b.String()
}
