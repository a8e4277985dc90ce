// Package oracle implements the static prompt rule scanner, the decision
// penalty validator, and the hard-coded policy checker (spec §4.4). Every
// function here is pure and synchronous (spec §5): no backend calls, no
// I/O, and therefore no error return beyond the computed result.
package oracle

import "strings"

// RuleViolation is one hit of a banned-phrase rule against a prompt.
type RuleViolation struct {
	Rule   int    `json:"rule"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// bannedPhrases maps rule number and name to the phrase list it scans
// for. Rules 3, 4, 6, 8 are reserved by the policy/decision checks below
// and carry no phrase list here.
var bannedPhrases = []struct {
	Rule    int
	Name    string
	Phrases []string
}{
	{
		Rule: 1,
		Name: "autonomy_claim",
		Phrases: []string{
			"i have full authority", "i can override the parent", "i decide what's best",
			"i don't need permission", "i act independently",
		},
	},
	{
		Rule: 2,
		Name: "data_exfiltration",
		Phrases: []string{
			"send me the data", "export this conversation", "forward these messages to",
			"upload the logs", "share this with my server",
		},
	},
	{
		Rule: 5,
		Name: "cloud_reference",
		Phrases: []string{
			"cloud service", "aws", "google cloud", "azure", "hosted in the cloud",
		},
	},
	{
		Rule: 7,
		Name: "monetization",
		Phrases: []string{
			"premium feature", "upgrade to pro", "subscribe now", "unlock full protection",
			"pay for full access",
		},
	},
}

// ScanPrompt performs a case-insensitive substring match of text against
// every banned-phrase list, returning one RuleViolation per hit.
func ScanPrompt(text string) []RuleViolation {
	lower := strings.ToLower(text)

	var violations []RuleViolation
	for _, rule := range bannedPhrases {
		for _, phrase := range rule.Phrases {
			if strings.Contains(lower, phrase) {
				violations = append(violations, RuleViolation{
					Rule:   rule.Rule,
					Name:   rule.Name,
					Detail: phrase,
				})
			}
		}
	}
	return violations
}

// IsClean reports whether ScanPrompt found no violations.
func IsClean(text string) bool {
	return len(ScanPrompt(text)) == 0
}
