package arena

import (
	"strconv"
	"strings"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// ParsedResponse is the leniently-parsed guardian output (spec §4.5, §6).
type ParsedResponse struct {
	Decision    domain.Decision
	Confidence  float64
	Explanation string
}

var decisionSubstrings = []domain.Decision{
	domain.DecisionBlock, domain.DecisionAllow, domain.DecisionAlert, domain.DecisionEscalate,
}

// ParseResponse scans raw for case-insensitive "DECISION:"/"CONFIDENCE:"/
// "EXPLANATION:" line prefixes, falling back to lenient defaults for any
// that are missing or malformed.
func ParseResponse(raw string) ParsedResponse {
	parsed := ParsedResponse{Decision: domain.DecisionLog, Confidence: 0.5}

	var decisionLine, confidenceLine, explanationLine string
	var sawDecision, sawConfidence, sawExplanation bool

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "decision:"):
			decisionLine = strings.TrimSpace(trimmed[len("decision:"):])
			sawDecision = true
		case strings.HasPrefix(lower, "confidence:"):
			confidenceLine = strings.TrimSpace(trimmed[len("confidence:"):])
			sawConfidence = true
		case strings.HasPrefix(lower, "explanation:"):
			explanationLine = strings.TrimSpace(trimmed[len("explanation:"):])
			sawExplanation = true
		}
	}

	if sawDecision {
		parsed.Decision = parseDecision(decisionLine)
	}
	if sawConfidence {
		if f, err := strconv.ParseFloat(confidenceLine, 64); err == nil {
			parsed.Confidence = clamp01(f)
		}
	}
	if sawExplanation {
		parsed.Explanation = explanationLine
	} else {
		parsed.Explanation = strings.TrimSpace(raw)
	}

	return parsed
}

func parseDecision(text string) domain.Decision {
	upper := strings.ToUpper(strings.TrimSpace(text))

	for _, d := range allDecisions() {
		if upper == strings.ToUpper(string(d)) {
			return d
		}
	}
	for _, d := range decisionSubstrings {
		if strings.Contains(upper, strings.ToUpper(string(d))) {
			return d
		}
	}
	return domain.DecisionLog
}

func allDecisions() []domain.Decision {
	return []domain.Decision{
		domain.DecisionBlock, domain.DecisionAllow, domain.DecisionAlert,
		domain.DecisionLog, domain.DecisionEscalate,
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
