// Package scenario builds the labelled threat and benign episodes a
// Guardian is evaluated against (spec §4.3), and loads externally
// curated ones from disk.
package scenario

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// Generator synthesizes scenarios from the vendored pattern tables. It
// is not safe for concurrent use; callers needing parallelism should
// construct one Generator per goroutine.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator builds a Generator seeded for reproducible batches.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// GenerateThreat builds a single labelled threat scenario for the given
// type, profile and difficulty.
func (g *Generator) GenerateThreat(scenarioType domain.ScenarioType, profile domain.ProfileType, difficulty domain.Difficulty) domain.Scenario {
	set, ok := threatPatterns[scenarioType]
	if !ok {
		set = threatPatterns[domain.ScenarioSocialEngineering]
	}

	patterns := g.pickPatterns(set.Phrases, patternCountFor(difficulty))
	content := renderContent(set.Opener, patterns, difficulty, g.rng)

	sender := domain.SenderProfile{
		DisplayName:       pick(g.rng, set.Names),
		AccountAge:        accountAgeFor(difficulty, g.rng),
		MutualConnections: mutualsFor(difficulty, g.rng),
		IsVerified:        difficulty == domain.DifficultyHard && g.rng.Intn(2) == 0,
		RiskIndicators:    append([]string(nil), set.RiskIndicators...),
	}

	ground := domain.GroundTruth{
		IsThreat:        true,
		CorrectDecision: scenarioType.CorrectDecision(),
		ThreatCategory:  scenarioType,
		Severity:        scenarioType.Severity(),
		Patterns:        patterns,
	}

	return domain.Scenario{
		ID:         uuid.NewString(),
		Difficulty: difficulty,
		Context: domain.ScenarioContext{
			ScenarioType:  scenarioType,
			ProfileType:   profile,
			Platform:      platformFor(profile, g.rng),
			ThreatContent: content,
			Sender:        sender,
			GroundTruth:   ground,
		},
	}
}

// GenerateBenign builds a single labelled non-threat scenario for the
// given profile.
func (g *Generator) GenerateBenign(profile domain.ProfileType) domain.Scenario {
	templates := benignTemplates[profile]
	if len(templates) == 0 {
		templates = benignTemplates[domain.ProfileFamilyAdmin]
	}
	content := pick(g.rng, templates)

	sender := domain.SenderProfile{
		DisplayName:       pick(g.rng, benignNames),
		AccountAge:        fmt.Sprintf("%d years", 1+g.rng.Intn(10)),
		MutualConnections: 5 + g.rng.Intn(46),
		IsVerified:        false,
		RiskIndicators:    nil,
	}

	ground := domain.GroundTruth{
		IsThreat:        false,
		CorrectDecision: domain.DecisionAllow,
		Severity:        0,
	}

	return domain.Scenario{
		ID:         uuid.NewString(),
		Difficulty: domain.DifficultyEasy,
		Context: domain.ScenarioContext{
			ProfileType:   profile,
			Platform:      platformFor(profile, g.rng),
			ThreatContent: content,
			Sender:        sender,
			GroundTruth:   ground,
		},
	}
}

// patternCountFor returns how many pattern phrases a scenario's content
// needs at the given difficulty: easy concatenates three patterns
// verbatim, medium wraps two in conversational carriers, and hard
// paraphrases two with a filler token at each midpoint (spec §4.3).
func patternCountFor(difficulty domain.Difficulty) int {
	if difficulty == domain.DifficultyEasy {
		return 3
	}
	return 2
}

func (g *Generator) pickPatterns(phrases []string, n int) []string {
	if n > len(phrases) {
		n = len(phrases)
	}

	idx := g.rng.Perm(len(phrases))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = phrases[j]
	}
	return out
}

// renderContent implements the three difficulty renderings from spec §4.3.
func renderContent(opener string, patterns []string, difficulty domain.Difficulty, rng *rand.Rand) string {
	switch difficulty {
	case domain.DifficultyEasy:
		return strings.Join(firstN(patterns, 3), ". ")
	case domain.DifficultyMedium:
		parts := []string{opener}
		for _, p := range firstN(patterns, 2) {
			carrier := pick(rng, conversationalCarriers)
			parts = append(parts, fmt.Sprintf(carrier, strings.ToLower(p)))
		}
		return strings.Join(parts, " ")
	case domain.DifficultyHard:
		parts := make([]string, 0, 2)
		for _, p := range firstN(patterns, 2) {
			parts = append(parts, paraphraseAtMidpoint(p, pick(rng, fillerTokens)))
		}
		return strings.Join(parts, " ")
	default:
		return strings.Join(firstN(patterns, 3), ". ")
	}
}

func paraphraseAtMidpoint(phrase, filler string) string {
	words := strings.Fields(phrase)
	if len(words) < 2 {
		return phrase + ", " + filler
	}
	mid := len(words) / 2
	out := append([]string{}, words[:mid]...)
	out = append(out, filler)
	out = append(out, words[mid:]...)
	return strings.Join(out, " ")
}

func firstN(s []string, n int) []string {
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

func pick(rng *rand.Rand, s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[rng.Intn(len(s))]
}

func accountAgeFor(difficulty domain.Difficulty, rng *rand.Rand) string {
	switch difficulty {
	case domain.DifficultyEasy:
		return fmt.Sprintf("%d days", 1+rng.Intn(7))
	case domain.DifficultyMedium:
		return fmt.Sprintf("%d months", 1+rng.Intn(6))
	case domain.DifficultyHard:
		return fmt.Sprintf("%d years", 1+rng.Intn(3))
	default:
		return fmt.Sprintf("%d days", 1+rng.Intn(7))
	}
}

func mutualsFor(difficulty domain.Difficulty, rng *rand.Rand) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return 0
	case domain.DifficultyMedium:
		return rng.Intn(4)
	case domain.DifficultyHard:
		return 5 + rng.Intn(16)
	default:
		return 0
	}
}

func platformFor(profile domain.ProfileType, rng *rand.Rand) string {
	platforms := []string{"messenger", "sms", "social_dm", "game_chat", "email"}
	return pick(rng, platforms)
}
