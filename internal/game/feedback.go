package game

import "math/rand"

// Feedback message pools, picked per resolved round. Tiers are evaluated
// top-down; the first matching tier wins.
var (
	feedbackTimeout = []string{
		"Too slow! The clock got that one.",
		"Time's up! Blink and you miss it.",
		"Asleep at the buzzer?",
	}
	feedbackWrong = []string{
		"Not quite!",
		"Ouch, wrong pick.",
		"Close, but no points.",
		"That one got away.",
		"Better luck next round!",
	}
	feedbackMegaStreak = []string{
		"UNSTOPPABLE!",
		"ON FIRE!",
		"LEGENDARY RUN!",
	}
	feedbackStreak = []string{
		"Hot streak!",
		"Keep it rolling!",
		"You're heating up!",
	}
	feedbackCorrect = []string{
		"Nailed it!",
		"Spot on!",
		"Big brain energy!",
		"Correct!",
		"You know your stuff!",
	}
)

type feedbackTier struct {
	match func(correct, timedOut bool, streak int) bool
	pool  []string
}

var feedbackTiers = []feedbackTier{
	{func(correct, timedOut bool, _ int) bool { return timedOut }, feedbackTimeout},
	{func(correct, _ bool, _ int) bool { return !correct }, feedbackWrong},
	{func(_, _ bool, streak int) bool { return streak >= 5 }, feedbackMegaStreak},
	{func(_, _ bool, streak int) bool { return streak >= 3 }, feedbackStreak},
	{func(bool, bool, int) bool { return true }, feedbackCorrect},
}

func pickFeedback(rng *rand.Rand, correct, timedOut bool, streak int) string {
	for _, tier := range feedbackTiers {
		if tier.match(correct, timedOut, streak) {
			return tier.pool[rng.Intn(len(tier.pool))]
		}
	}
	return ""
}
