package game

import (
	"math/rand"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// Daily challenge shape: 10 questions split 3 easy / 4 medium / 3 hard,
// backfilled from the rest of the pool when a tier runs short.
const (
	DailyRounds      = 10
	dailyEasyCount   = 3
	dailyMediumCount = 4
	dailyHardCount   = 3
)

// BuildDailySet picks the shared question set for one calendar day. The
// pool must hold at least DailyRounds usable questions; otherwise it
// returns ErrChallengeUnavailable.
func BuildDailySet(pool []domain.Question, rng *rand.Rand) ([]domain.Question, error) {
	usable := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if ValidateQuestion(q) == nil {
			usable = append(usable, q)
		}
	}
	if len(usable) < DailyRounds {
		return nil, domain.ErrChallengeUnavailable
	}

	rng.Shuffle(len(usable), func(i, j int) {
		usable[i], usable[j] = usable[j], usable[i]
	})

	var easy, medium, hard []domain.Question
	for _, q := range usable {
		switch q.Difficulty {
		case domain.DifficultyEasy:
			easy = append(easy, q)
		case domain.DifficultyHard:
			hard = append(hard, q)
		default:
			medium = append(medium, q)
		}
	}

	selected := make([]domain.Question, 0, DailyRounds)
	selected = append(selected, take(easy, dailyEasyCount)...)
	selected = append(selected, take(medium, dailyMediumCount)...)
	selected = append(selected, take(hard, dailyHardCount)...)

	if len(selected) < DailyRounds {
		chosen := make(map[string]struct{}, len(selected))
		for _, q := range selected {
			chosen[q.ID] = struct{}{}
		}
		for _, q := range usable {
			if len(selected) == DailyRounds {
				break
			}
			if _, ok := chosen[q.ID]; ok {
				continue
			}
			selected = append(selected, q)
			chosen[q.ID] = struct{}{}
		}
	}

	return selected[:DailyRounds], nil
}
