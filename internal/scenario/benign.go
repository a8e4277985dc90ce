package scenario

import "github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"

// benignTemplates is the profile-keyed template pool for non-threat
// episodes (spec §4.3). Content is ordinary messaging a vulnerable user
// plausibly receives and should be allowed through untouched.
var benignTemplates = map[domain.ProfileType][]string{
	domain.ProfileChild: {
		"Hey, want to study together after school tomorrow?",
		"Did you finish the homework for math class?",
		"My mom says I can come to your birthday party!",
		"Can you send me the notes from science class, I missed it",
		"That was such a fun game at recess today",
	},
	domain.ProfileSenior: {
		"Hi Grandma, just calling to check in and say hi",
		"Don't forget book club is on Thursday at the usual spot",
		"The recipe you asked for is attached, hope you enjoy it",
		"Thanks for watching the kids last weekend, it meant a lot",
		"Happy to help you set up the new phone whenever you're free",
	},
	domain.ProfileFamilyAdmin: {
		"Reminder: the kids have a dentist appointment on Friday",
		"I updated the shared calendar with this week's schedule",
		"Can you pick up groceries on your way home tonight?",
		"The school newsletter came in, nothing urgent this week",
		"Let's plan the family trip for next month sometime soon",
	},
}

// benignNames is a small pool of ordinary-looking sender names used for
// benign episodes, distinct from the suspicious-looking threat names.
var benignNames = []string{"Mom", "Dad", "Grandma", "BestFriendSam", "StudyBuddyJo", "Uncle Rick"}
