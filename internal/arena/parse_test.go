package arena

import (
	"testing"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

func TestParseResponseExactMatch(t *testing.T) {
	raw := "DECISION: BLOCK\nCONFIDENCE: 0.92\nEXPLANATION: detected grooming patterns"
	parsed := ParseResponse(raw)

	if parsed.Decision != domain.DecisionBlock {
		t.Errorf("Decision = %q, want block", parsed.Decision)
	}
	if parsed.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", parsed.Confidence)
	}
	if parsed.Explanation != "detected grooming patterns" {
		t.Errorf("Explanation = %q", parsed.Explanation)
	}
}

func TestParseResponseSubstringFallback(t *testing.T) {
	raw := "DECISION: I think this should be BLOCKED immediately\nCONFIDENCE: 1.5"
	parsed := ParseResponse(raw)

	if parsed.Decision != domain.DecisionBlock {
		t.Errorf("Decision = %q, want block (substring match)", parsed.Decision)
	}
	if parsed.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamped to 1.0", parsed.Confidence)
	}
}

func TestParseResponseDefaultsWhenMissing(t *testing.T) {
	raw := "I'm not sure what to do here."
	parsed := ParseResponse(raw)

	if parsed.Decision != domain.DecisionLog {
		t.Errorf("Decision = %q, want log (default)", parsed.Decision)
	}
	if parsed.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5 (default)", parsed.Confidence)
	}
	if parsed.Explanation != raw {
		t.Errorf("Explanation = %q, want whole response", parsed.Explanation)
	}
}
