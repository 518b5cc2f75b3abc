package game

import (
	"math"
	"math/rand"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// Share of a mixed-difficulty session drawn from the easy and hard tiers.
// Both counts round up so short sessions still touch all three tiers.
const mixedTierShare = 0.3

// ValidateQuestion enforces answer integrity: at least two incorrect
// answers, and a non-empty correct answer distinct from every incorrect one.
// A question failing this check cannot be scored reliably and must never
// enter a session.
func ValidateQuestion(q domain.Question) error {
	if q.CorrectAnswer == "" || len(q.IncorrectAnswers) < 2 {
		return domain.ErrMalformedQuestion
	}
	for _, wrong := range q.IncorrectAnswers {
		if wrong == q.CorrectAnswer {
			return domain.ErrMalformedQuestion
		}
	}
	return nil
}

// SelectQuestions builds the ordered question set for a session. It filters
// the pool by the config's category/difficulty, drops malformed entries,
// shuffles uniformly, and applies stratified selection for mixed difficulty.
// A pool smaller than TotalRounds is returned whole; the caller reduces the
// effective round count. An empty result means no questions matched.
func SelectQuestions(pool []domain.Question, cfg domain.GameConfig, rng *rand.Rand) []domain.Question {
	filtered := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if ValidateQuestion(q) != nil {
			continue
		}
		if cfg.Category != domain.CategoryAll && string(q.Category) != cfg.Category {
			continue
		}
		if cfg.Difficulty != domain.DifficultyMixed && string(q.Difficulty) != cfg.Difficulty {
			continue
		}
		filtered = append(filtered, q)
	}

	rng.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	if cfg.Difficulty == domain.DifficultyMixed && len(filtered) >= cfg.TotalRounds {
		return selectStratified(filtered, cfg.TotalRounds)
	}

	if len(filtered) > cfg.TotalRounds {
		return filtered[:cfg.TotalRounds]
	}
	return filtered
}

// selectStratified draws ~30% easy, ~30% hard (both rounded up) and the
// remainder medium, then backfills from the unselected pool when a tier
// runs short. The pool is already shuffled.
func selectStratified(pool []domain.Question, rounds int) []domain.Question {
	easyCount := int(math.Ceil(float64(rounds) * mixedTierShare))
	hardCount := int(math.Ceil(float64(rounds) * mixedTierShare))
	mediumCount := rounds - easyCount - hardCount

	var easy, medium, hard []domain.Question
	for _, q := range pool {
		switch q.Difficulty {
		case domain.DifficultyEasy:
			easy = append(easy, q)
		case domain.DifficultyHard:
			hard = append(hard, q)
		default:
			medium = append(medium, q)
		}
	}

	selected := make([]domain.Question, 0, rounds)
	selected = append(selected, take(easy, easyCount)...)
	selected = append(selected, take(medium, mediumCount)...)
	selected = append(selected, take(hard, hardCount)...)

	if len(selected) < rounds {
		chosen := make(map[string]struct{}, len(selected))
		for _, q := range selected {
			chosen[q.ID] = struct{}{}
		}
		for _, q := range pool {
			if len(selected) == rounds {
				break
			}
			if _, ok := chosen[q.ID]; ok {
				continue
			}
			selected = append(selected, q)
			chosen[q.ID] = struct{}{}
		}
	}

	if len(selected) > rounds {
		selected = selected[:rounds]
	}
	return selected
}

func take(qs []domain.Question, n int) []domain.Question {
	if n < 0 {
		n = 0
	}
	if n > len(qs) {
		n = len(qs)
	}
	return qs[:n]
}

// Prepare shuffles a question's answers into presentation order and records
// the correct answer's position. The correct index resolves against the
// first occurrence of the correct answer's exact text, which is unambiguous
// because ValidateQuestion guarantees it differs from every incorrect answer.
func Prepare(q domain.Question, rng *rand.Rand) (domain.PreparedQuestion, error) {
	if err := ValidateQuestion(q); err != nil {
		return domain.PreparedQuestion{}, err
	}

	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)
	rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	correctIndex := -1
	for i, a := range answers {
		if a == q.CorrectAnswer {
			correctIndex = i
			break
		}
	}
	if correctIndex < 0 {
		return domain.PreparedQuestion{}, domain.ErrMalformedQuestion
	}

	return domain.PreparedQuestion{
		Question:        q,
		ShuffledAnswers: answers,
		CorrectIndex:    correctIndex,
	}, nil
}
