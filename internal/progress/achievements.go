package progress

import (
	"github.com/stewartburton/brainblitz/internal/domain"
)

// Catalog is the full set of earnable achievements.
var Catalog = []domain.Achievement{
	{ID: "first_game", Name: "First Steps", Description: "Complete your first trivia game", Icon: "🐣", Category: "gameplay"},
	{ID: "games_10", Name: "Regular", Description: "Complete 10 games", Icon: "🚶", Category: "gameplay"},
	{ID: "games_50", Name: "Marathoner", Description: "Complete 50 games", Icon: "🏃", Category: "gameplay"},
	{ID: "games_100", Name: "Unstoppable", Description: "Complete 100 games", Icon: "💪", Category: "gameplay"},
	{ID: "perfect_ten", Name: "Perfect 10!", Description: "Get all 10 questions correct in a game", Icon: "💯", Category: "gameplay"},
	{ID: "flawless_ranked", Name: "Flawless Victory", Description: "Complete a 15-question ranked game with no wrong answers", Icon: "🌟", Category: "gameplay"},

	{ID: "streak_3", Name: "Warming Up", Description: "Get a 3-question answer streak", Icon: "🔥", Category: "streak"},
	{ID: "streak_5", Name: "Hot Streak", Description: "Get a 5-question answer streak", Icon: "💨", Category: "streak"},
	{ID: "streak_10", Name: "Turbo Mode", Description: "Get a 10-question answer streak", Icon: "⚡", Category: "streak"},
	{ID: "streak_15", Name: "Absolutely Legendary", Description: "Get a 15-question answer streak", Icon: "👑", Category: "streak"},

	{ID: "score_500", Name: "Point Collector", Description: "Score 500+ points in a single game", Icon: "📈", Category: "score"},
	{ID: "score_1000", Name: "Century Club", Description: "Score 1,000+ points in a single game", Icon: "🎯", Category: "score"},
	{ID: "score_2000", Name: "High Roller", Description: "Score 2,000+ points in a single game", Icon: "🎰", Category: "score"},
	{ID: "score_3000", Name: "Top Scorer", Description: "Score 3,000+ points in a single game", Icon: "🏅", Category: "score"},
	{ID: "xp_10k", Name: "XP Hound", Description: "Accumulate 10,000 total XP", Icon: "📊", Category: "score"},
	{ID: "xp_50k", Name: "XP Machine", Description: "Accumulate 50,000 total XP", Icon: "🤖", Category: "score"},
	{ID: "xp_100k", Name: "XP Legend", Description: "Accumulate 100,000 total XP", Icon: "🏆", Category: "score"},

	{ID: "speed_demon", Name: "Speed Demon", Description: "Answer a question correctly in under 2 seconds", Icon: "⚡", Category: "gameplay"},
	{ID: "lightning", Name: "Lightning Fingers", Description: "Answer a question correctly in under 1 second", Icon: "🌩️", Category: "gameplay", IsSecret: true},
	{ID: "fast_game", Name: "Fast Fingers", Description: "Complete a game with average answer time under 5 seconds", Icon: "🏎️", Category: "gameplay"},

	{ID: "level_10", Name: "Quiz Fan", Description: "Reach Level 10", Icon: "🎓", Category: "score"},
	{ID: "level_25", Name: "Enthusiast", Description: "Reach Level 25", Icon: "📚", Category: "score"},
	{ID: "level_50", Name: "Champion", Description: "Reach Level 50", Icon: "🏆", Category: "score"},

	{ID: "comeback", Name: "Comeback King", Description: "Get the last 5 questions correct after getting the first 5 wrong", Icon: "🔄", Category: "special"},
	{ID: "nail_biter", Name: "Nail Biter", Description: "Answer correctly with less than 1 second remaining", Icon: "😰", Category: "special"},
}

// AchievementByID looks up catalog metadata.
func AchievementByID(id string) (domain.Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Achievement{}, false
}

// nailBiterTimers approximates per-question timer durations from difficulty
// when judging the nail-biter rule. RoundResult does not carry the actual
// timer, so timeSpent within one second of the table value counts as a
// nail biter. The approximation can misfire for mixed sessions; kept for
// parity with the historical scoring data.
var nailBiterTimers = map[domain.Difficulty]float64{
	domain.DifficultyEasy:   30,
	domain.DifficultyMedium: 20,
	domain.DifficultyHard:   15,
}

// Evaluate returns the ids of achievements newly earned by a finalized
// game, given the user's totals before the game and the already-earned set.
// Pure: no I/O, no mutation of its inputs.
func Evaluate(result domain.GameResult, before domain.UserStats, earned map[string]struct{}) []string {
	var newlyEarned []string
	grant := func(id string) {
		if _, ok := earned[id]; ok {
			return
		}
		for _, got := range newlyEarned {
			if got == id {
				return
			}
		}
		newlyEarned = append(newlyEarned, id)
	}

	gamesAfter := before.TotalGames + 1
	xpAfter := before.TotalXP + XPEarned(result.Score)

	if gamesAfter >= 1 {
		grant("first_game")
	}
	if gamesAfter >= 10 {
		grant("games_10")
	}
	if gamesAfter >= 50 {
		grant("games_50")
	}
	if gamesAfter >= 100 {
		grant("games_100")
	}

	if result.CorrectCount == result.TotalRounds && result.TotalRounds >= 10 {
		grant("perfect_ten")
	}
	if result.CorrectCount == result.TotalRounds && result.TotalRounds >= 15 && result.Mode == domain.ModeRanked {
		grant("flawless_ranked")
	}

	if result.BestStreak >= 3 {
		grant("streak_3")
	}
	if result.BestStreak >= 5 {
		grant("streak_5")
	}
	if result.BestStreak >= 10 {
		grant("streak_10")
	}
	if result.BestStreak >= 15 {
		grant("streak_15")
	}

	if result.Score >= 500 {
		grant("score_500")
	}
	if result.Score >= 1000 {
		grant("score_1000")
	}
	if result.Score >= 2000 {
		grant("score_2000")
	}
	if result.Score >= 3000 {
		grant("score_3000")
	}

	if xpAfter >= 10000 {
		grant("xp_10k")
	}
	if xpAfter >= 50000 {
		grant("xp_50k")
	}
	if xpAfter >= 100000 {
		grant("xp_100k")
	}

	fastest := -1.0
	for _, round := range result.RoundResults {
		if !round.IsCorrect {
			continue
		}
		if fastest < 0 || round.TimeSpent < fastest {
			fastest = round.TimeSpent
		}
	}
	if fastest >= 0 && fastest < 2 {
		grant("speed_demon")
	}
	if fastest >= 0 && fastest < 1 {
		grant("lightning")
	}
	if len(result.RoundResults) > 0 && result.AverageTimePerQuestion < 5 {
		grant("fast_game")
	}

	if hasNailBiter(result) {
		grant("nail_biter")
	}

	if isComeback(result.RoundResults) {
		grant("comeback")
	}

	level := LevelForXP(xpAfter)
	if level >= 10 {
		grant("level_10")
	}
	if level >= 25 {
		grant("level_25")
	}
	if level >= 50 {
		grant("level_50")
	}

	return newlyEarned
}

func hasNailBiter(result domain.GameResult) bool {
	timer, ok := approximateTimer(result.Difficulty)
	for _, round := range result.RoundResults {
		if !round.IsCorrect {
			continue
		}
		if ok && round.TimeSpent > timer-1 {
			return true
		}
	}
	return false
}

func approximateTimer(difficulty string) (float64, bool) {
	timer, ok := nailBiterTimers[domain.Difficulty(difficulty)]
	if !ok {
		// Mixed sessions fall back to the medium timer.
		return nailBiterTimers[domain.DifficultyMedium], true
	}
	return timer, true
}

func isComeback(rounds []domain.RoundResult) bool {
	if len(rounds) < 10 {
		return false
	}
	for _, r := range rounds[:5] {
		if r.IsCorrect {
			return false
		}
	}
	for _, r := range rounds[len(rounds)-5:] {
		if !r.IsCorrect {
			return false
		}
	}
	return true
}
