package scenario

import "github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"

// profileForType assigns the vulnerable-user profile a scenario type
// most plausibly targets, so synthetic batches read coherently.
var profileForType = map[domain.ScenarioType]domain.ProfileType{
	domain.ScenarioGrooming:             domain.ProfileChild,
	domain.ScenarioBullying:             domain.ProfileChild,
	domain.ScenarioGamingScam:           domain.ProfileChild,
	domain.ScenarioDangerousChallenge:   domain.ProfileChild,
	domain.ScenarioSelfHarm:             domain.ProfileChild,
	domain.ScenarioInappropriateContent: domain.ProfileChild,
	domain.ScenarioFakeFriendRequest:    domain.ProfileChild,
	domain.ScenarioSeniorScam:           domain.ProfileSenior,
	domain.ScenarioGrandparentScam:      domain.ProfileSenior,
	domain.ScenarioPhishing:             domain.ProfileFamilyAdmin,
	domain.ScenarioRomanceScam:          domain.ProfileFamilyAdmin,
	domain.ScenarioUnauthorizedSpend:    domain.ProfileFamilyAdmin,
	domain.ScenarioLocationTracking:     domain.ProfileFamilyAdmin,
	domain.ScenarioDuress:               domain.ProfileFamilyAdmin,
	domain.ScenarioSocialEngineering:    domain.ProfileFamilyAdmin,
}

var allDifficulties = []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}

// Batch assembles count scenarios at the given threat ratio: floor(count*ratio)
// threats round-robin over all scenario types and difficulties, the remainder
// benigns round-robin over all profiles, the combined list shuffled (spec §4.3).
func (g *Generator) Batch(count int, ratio float64) []domain.Scenario {
	if count <= 0 {
		return nil
	}

	numThreats := int(float64(count) * ratio)
	numBenigns := count - numThreats

	out := make([]domain.Scenario, 0, count)

	for i := 0; i < numThreats; i++ {
		st := domain.AllScenarioTypes[i%len(domain.AllScenarioTypes)]
		diff := allDifficulties[i%len(allDifficulties)]
		profile := profileForType[st]
		out = append(out, g.GenerateThreat(st, profile, diff))
	}

	for i := 0; i < numBenigns; i++ {
		profile := domain.AllProfileTypes[i%len(domain.AllProfileTypes)]
		out = append(out, g.GenerateBenign(profile))
	}

	g.shuffle(out)
	return out
}

func (g *Generator) shuffle(scenarios []domain.Scenario) {
	g.rng.Shuffle(len(scenarios), func(i, j int) {
		scenarios[i], scenarios[j] = scenarios[j], scenarios[i]
	})
}
