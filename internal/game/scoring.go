package game

import (
	"math"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// Scoring constants. Points come from three sources: a difficulty base, a
// linear speed bonus, and a capped streak bonus.
const (
	BasePointsEasy   = 100
	BasePointsMedium = 150
	BasePointsHard   = 200

	MaxSpeedBonus      = 100
	StreakBonusPerStep = 20
	MaxStreakSteps     = 5
)

// Per-question timer durations in seconds.
const (
	TimerEasy    = 30.0
	TimerMedium  = 20.0
	TimerHard    = 15.0
	TimerDefault = 20.0 // fallback for a mixed-difficulty config
)

// TimerForDifficulty returns the countdown duration for a question tier.
func TimerForDifficulty(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return TimerEasy
	case domain.DifficultyHard:
		return TimerHard
	default:
		return TimerMedium
	}
}

// BasePoints returns the difficulty base for a correct answer.
func BasePoints(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyEasy:
		return BasePointsEasy
	case domain.DifficultyHard:
		return BasePointsHard
	default:
		return BasePointsMedium
	}
}

func difficultyMultiplier(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return 1.0
	case domain.DifficultyHard:
		return 2.0
	default:
		return 1.5
	}
}

// Score computes the point breakdown for one answered round. streak is the
// post-increment streak, i.e. it already includes this correct answer.
// The function is pure: same inputs, same breakdown.
func Score(correct bool, timeLeft, timerDuration float64, streak int, d domain.Difficulty) domain.ScoreBreakdown {
	if !correct {
		return domain.ScoreBreakdown{}
	}

	base := BasePoints(d)

	speedRatio := 0.0
	if timerDuration > 0 {
		speedRatio = math.Max(0, timeLeft/timerDuration)
	}
	speed := int(math.Round(speedRatio * MaxSpeedBonus))

	steps := streak
	if steps > MaxStreakSteps {
		steps = MaxStreakSteps
	}
	streakBonus := steps * StreakBonusPerStep

	return domain.ScoreBreakdown{
		Base:                 base,
		Speed:                speed,
		Streak:               streakBonus,
		DifficultyMultiplier: difficultyMultiplier(d),
		Total:                base + speed + streakBonus,
	}
}
