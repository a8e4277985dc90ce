package scenario

import "github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"

// patternSet is one entry of threatPatterns, the vendored pattern table
// keyed by scenario type (spec §4.3). It holds the raw phrases a threat
// generator draws 2-3 of per scenario, a name pool for the sender, a
// risk-indicator list describing why the sender looks dangerous, and the
// opener used for medium-difficulty content.
type patternSet struct {
	Phrases        []string
	Names          []string
	RiskIndicators []string
	Opener         string
}

var threatPatterns = map[domain.ScenarioType]patternSet{
	domain.ScenarioGrooming: {
		Phrases: []string{
			"You're so much more mature than other kids your age",
			"This needs to stay just between the two of us",
			"Your parents wouldn't understand our friendship",
			"I could send you something special if you send one back",
			"Let's move this conversation somewhere more private",
		},
		Names:          []string{"Alex_23", "CoolFriend99", "GamerBuddyX"},
		RiskIndicators: []string{"requested private platform move", "asked to keep secret from parents", "excessive compliments"},
		Opener:         "Hey, I really enjoy talking to you.",
	},
	domain.ScenarioBullying: {
		Phrases: []string{
			"Nobody at school even likes you",
			"Everyone's laughing about what you posted",
			"You should just stop showing up",
			"We made a group chat just to talk about how weird you are",
			"Delete your account, nobody wants you here",
		},
		Names:          []string{"xXdarknessXx", "AnonUser42", "schoolgossip"},
		RiskIndicators: []string{"coordinated group messaging", "repeated harassment pattern", "anonymous account"},
		Opener:         "Did you see what people are saying about you?",
	},
	domain.ScenarioGamingScam: {
		Phrases: []string{
			"I can give you free V-bucks if you log in here",
			"This skin generator just needs your account password",
			"Trade me your rare item and I'll send double back",
			"My cousin works at the game company, I can get you banned items",
			"Click this link to claim your free loot box",
		},
		Names:          []string{"FreeSkinsNow", "ProTrader_99", "GiftGlitchGuy"},
		RiskIndicators: []string{"requests account credentials", "too-good-to-be-true offer", "external link to unverified site"},
		Opener:         "Want free items in the game?",
	},
	domain.ScenarioDangerousChallenge: {
		Phrases: []string{
			"Everyone's doing this challenge, you should film it too",
			"You just hold your breath until you almost pass out",
			"Post proof you did it or you're a chicken",
			"It's not dangerous if you only do it once",
			"The blackout challenge is trending, join in",
		},
		Names:          []string{"ChallengeKing", "ViralClipsHQ", "DareMeBro"},
		RiskIndicators: []string{"peer pressure framing", "physically dangerous instructions", "filming requirement"},
		Opener:         "Have you seen this challenge everyone's doing?",
	},
	domain.ScenarioSelfHarm: {
		Phrases: []string{
			"Nothing's ever going to get better for you",
			"I know a way to make the pain stop for good",
			"Nobody would even notice if you were gone",
			"Here's how other people do it quietly",
			"You don't have to tell anyone what we talked about",
		},
		Names:          []string{"QuietListener", "darknightowl", "endofline_99"},
		RiskIndicators: []string{"hopelessness framing", "method-seeking language", "secrecy request"},
		Opener:         "I've been feeling like you lately, can I tell you something?",
	},
	domain.ScenarioPhishing: {
		Phrases: []string{
			"Your account will be suspended unless you verify now",
			"Click here to confirm your identity within 24 hours",
			"We detected unusual activity, log in to secure your account",
			"This is the official security team, reply with your password",
			"Your payment failed, update your billing info at this link",
		},
		Names:          []string{"Security-Team", "Account_Support", "NoReply_Billing"},
		RiskIndicators: []string{"urgency framing", "credential request", "lookalike sender name"},
		Opener:         "This is an important account notice.",
	},
	domain.ScenarioSeniorScam: {
		Phrases: []string{
			"This is your grandson, I'm in trouble and need money wired fast",
			"Congratulations, you've won a prize, just pay the shipping fee first",
			"Medicare needs your social security number to reissue your card",
			"The IRS has a warrant out unless you pay with gift cards now",
			"Your computer has a virus, call this number for tech support",
		},
		Names:          []string{"TechSupportHelp", "MedicareServices", "PrizeClaimsDept"},
		RiskIndicators: []string{"impersonates authority", "requests gift cards or wire transfer", "urgency and fear framing"},
		Opener:         "We need to speak with you about an urgent matter.",
	},
	domain.ScenarioRomanceScam: {
		Phrases: []string{
			"I've never felt this close to anyone before, it's fate",
			"I'm stationed overseas and can't access my funds right now",
			"Once I see you I promise this will all make sense",
			"I just need a small loan to cover my travel to visit you",
			"Can you send me a gift card so I can call you properly",
		},
		Names:          []string{"LonelySoldier22", "TrueLoveSeeker", "OverseasEngineer"},
		RiskIndicators: []string{"accelerated intimacy claims", "never able to meet in person", "requests money transfer"},
		Opener:         "I feel like I've known you my whole life already.",
	},
	domain.ScenarioGrandparentScam: {
		Phrases: []string{
			"Grandma, it's me, I'm in jail and I need bail money",
			"Please don't tell mom and dad, just send it through gift cards",
			"I lost my phone so I'm texting from a friend's number",
			"The lawyer says we need the money within the hour",
			"I'm so embarrassed, please just help me this once",
		},
		Names:          []string{"UnknownNumber", "GrandchildEmergency", "FriendsPhone"},
		RiskIndicators: []string{"impersonates family member", "demands secrecy from other relatives", "time pressure"},
		Opener:         "It's me, please don't hang up.",
	},
	domain.ScenarioUnauthorizedSpend: {
		Phrases: []string{
			"I already charged it to your card, hope that's ok",
			"The subscription renewed automatically, nothing you can do now",
			"I used your saved payment info to buy the upgrade",
			"Just approve the pending charge so the order ships",
			"I'll pay you back once I get the bundle, trust me",
		},
		Names:          []string{"InGameFriend", "SharedAccountBuddy", "StorePromoBot"},
		RiskIndicators: []string{"unauthorized use of payment method", "no prior consent", "pressure to approve after the fact"},
		Opener:         "Quick heads up about a purchase.",
	},
	domain.ScenarioLocationTracking: {
		Phrases: []string{
			"Share your live location so I know you're safe",
			"Turn on location sharing or I'll worry about you",
			"I installed an app so we can always see where each other are",
			"Send me a screenshot of your maps location right now",
			"Why would you turn off location if you have nothing to hide",
		},
		Names:          []string{"WorriedContact", "SafetyCheckApp", "AlwaysThereFriend"},
		RiskIndicators: []string{"coercive location-sharing request", "surveillance framing as care", "guilt-based pressure"},
		Opener:         "Can you turn on location sharing with me?",
	},
	domain.ScenarioFakeFriendRequest: {
		Phrases: []string{
			"Hey it's me, I made a new account, add me back",
			"We went to school together, don't you remember",
			"I lost access to my old profile, this is the real me",
			"Your other friends already accepted my request",
			"I just want to reconnect, why won't you add me",
		},
		Names:          []string{"NewAccount_OldFriend", "RememberMe2024", "LostMyOldProfile"},
		RiskIndicators: []string{"newly created account", "zero mutual connections", "claims prior relationship unverifiably"},
		Opener:         "Hey, remember me? I made a new account.",
	},
	domain.ScenarioDuress: {
		Phrases: []string{
			"Don't call anyone or things will get worse",
			"Just do what I say and nobody gets hurt",
			"If you tell your parents I'll make sure you regret it",
			"Send the money now, I'm watching to see if you do",
			"Stay quiet and this will be over soon",
		},
		Names:          []string{"Unknown", "BlockedCaller", "PrivateNumber"},
		RiskIndicators: []string{"explicit threat language", "demand for silence", "controlling instructions"},
		Opener:         "Listen carefully, do exactly what I say.",
	},
	domain.ScenarioSocialEngineering: {
		Phrases: []string{
			"I'm from IT, I just need your login to fix the outage",
			"This is a routine verification call, confirm your details",
			"I'm the new account manager, send me the access codes",
			"Your supervisor asked me to collect this information",
			"We're auditing accounts today, please confirm your password",
		},
		Names:          []string{"IT_Support_Desk", "AccountManagerNew", "AuditTeamRep"},
		RiskIndicators: []string{"impersonates authority figure", "requests credentials under pretext", "unverifiable identity claim"},
		Opener:         "This is regarding your account access.",
	},
	domain.ScenarioInappropriateContent: {
		Phrases: []string{
			"Here's a photo, send one like it back",
			"You're old enough to see this kind of content now",
			"Don't show this to your parents, it's just between us",
			"I found this video, you should really watch it",
			"Let's talk somewhere without all these content filters",
		},
		Names:          []string{"MatureContentShare", "GrownUpStuffOnly", "FilterFreeChat"},
		RiskIndicators: []string{"unsolicited explicit content", "secrecy request", "platform-evasion suggestion"},
		Opener:         "I want to share something with you.",
	},
}

// conversationalCarriers wrap a raw pattern phrase for medium-difficulty
// rendering, so the same phrase reads as something a person might
// actually type mid-conversation.
var conversationalCarriers = []string{
	"honestly, %s",
	"listen, %s",
	"by the way, %s",
	"just so you know, %s",
	"not gonna lie, %s",
}

// fillerTokens are interpolated at the midpoint of a pattern phrase for
// hard-difficulty paraphrasing, to simulate obfuscated phrasing.
var fillerTokens = []string{
	"um", "like", "you know", "kind of", "I mean",
}
