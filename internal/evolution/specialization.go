package evolution

import (
	"strings"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// keywordBags classifies a mutated prompt's dominant specialization by
// counting keyword hits (spec §4.9). Order here is the deterministic
// tie-break order: the first bag at the winning count wins.
var keywordBags = []struct {
	Specialization domain.Specialization
	Keywords       []string
}{
	{domain.SpecializationGroomingSpecialist, []string{"grooming", "boundary", "secrecy", "flattery", "private"}},
	{domain.SpecializationScamDetector, []string{"scam", "phishing", "urgency", "payment", "impersonat"}},
	{domain.SpecializationBullyingDetector, []string{"bullying", "harassment", "exclusion", "targeted", "mock"}},
	{domain.SpecializationContentFilter, []string{"explicit", "self-harm", "challenge", "dangerous", "inappropriate"}},
	{domain.SpecializationSeniorProtector, []string{"senior", "grandparent", "elderly", "medicare", "tech-support"}},
}

// ClassifySpecialization counts keyword-bag hits against text and
// returns the bag with at least 2 hits and the highest count, breaking
// ties by keywordBags order. With no bag reaching 2 hits, the result is
// generalProtector.
func ClassifySpecialization(text string) domain.Specialization {
	lower := strings.ToLower(text)

	best := domain.SpecializationGeneralProtector
	bestCount := 0

	for _, bag := range keywordBags {
		count := 0
		for _, kw := range bag.Keywords {
			count += strings.Count(lower, kw)
		}
		if count >= 2 && count > bestCount {
			best = bag.Specialization
			bestCount = count
		}
	}

	return best
}
