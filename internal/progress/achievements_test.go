package progress

import (
	"testing"

	"github.com/stewartburton/brainblitz/internal/domain"
)

func correctRound(timeSpent float64) domain.RoundResult {
	answer := "right"
	return domain.RoundResult{SelectedAnswer: &answer, IsCorrect: true, TimeSpent: timeSpent}
}

func wrongRound(timeSpent float64) domain.RoundResult {
	answer := "wrong"
	return domain.RoundResult{SelectedAnswer: &answer, IsCorrect: false, TimeSpent: timeSpent}
}

func baseResult() domain.GameResult {
	rounds := []domain.RoundResult{
		correctRound(8), wrongRound(10), correctRound(7),
		wrongRound(12), correctRound(9),
	}
	return domain.GameResult{
		Mode:                   domain.ModeCasual,
		Difficulty:             string(domain.DifficultyMedium),
		TotalRounds:            5,
		CorrectCount:           3,
		Score:                  400,
		BestStreak:             1,
		AverageTimePerQuestion: 9.2,
		RoundResults:           rounds,
	}
}

func contains(ids []string, id string) bool {
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}

func TestEvaluateFirstGame(t *testing.T) {
	ids := Evaluate(baseResult(), domain.UserStats{}, nil)
	if !contains(ids, "first_game") {
		t.Fatalf("expected first_game on first completion, got %v", ids)
	}
}

func TestEvaluateSkipsAlreadyEarned(t *testing.T) {
	earned := map[string]struct{}{"first_game": {}}
	ids := Evaluate(baseResult(), domain.UserStats{TotalGames: 3}, earned)
	if contains(ids, "first_game") {
		t.Fatalf("already-earned achievement granted again: %v", ids)
	}
}

func TestEvaluateGameCountThresholds(t *testing.T) {
	// 49 games before, this one is the 50th
	ids := Evaluate(baseResult(), domain.UserStats{TotalGames: 49}, nil)
	if !contains(ids, "games_10") || !contains(ids, "games_50") {
		t.Fatalf("expected games_10 and games_50 at 50 games, got %v", ids)
	}
	if contains(ids, "games_100") {
		t.Fatalf("games_100 granted at 50 games: %v", ids)
	}
}

func TestEvaluatePerfectGame(t *testing.T) {
	result := baseResult()
	result.TotalRounds = 10
	result.CorrectCount = 10
	ids := Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "perfect_ten") {
		t.Fatalf("expected perfect_ten, got %v", ids)
	}
	if contains(ids, "flawless_ranked") {
		t.Fatalf("flawless_ranked requires ranked 15-round games: %v", ids)
	}

	result.Mode = domain.ModeRanked
	result.TotalRounds = 15
	result.CorrectCount = 15
	ids = Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "flawless_ranked") {
		t.Fatalf("expected flawless_ranked, got %v", ids)
	}
}

func TestEvaluateStreakTiers(t *testing.T) {
	result := baseResult()
	result.BestStreak = 10
	ids := Evaluate(result, domain.UserStats{}, nil)
	for _, want := range []string{"streak_3", "streak_5", "streak_10"} {
		if !contains(ids, want) {
			t.Fatalf("expected %s at streak 10, got %v", want, ids)
		}
	}
	if contains(ids, "streak_15") {
		t.Fatalf("streak_15 granted at streak 10: %v", ids)
	}
}

func TestEvaluateScoreAndXPThresholds(t *testing.T) {
	result := baseResult()
	result.Score = 1200
	ids := Evaluate(result, domain.UserStats{TotalXP: 9000}, nil)
	if !contains(ids, "score_500") || !contains(ids, "score_1000") {
		t.Fatalf("expected score tiers at 1200 points, got %v", ids)
	}
	// 9000 before + 1200 earned crosses 10k
	if !contains(ids, "xp_10k") {
		t.Fatalf("expected xp_10k after crossing 10k total, got %v", ids)
	}
	if contains(ids, "xp_50k") {
		t.Fatalf("xp_50k granted at ~10k total: %v", ids)
	}
}

func TestEvaluateSpeedAchievements(t *testing.T) {
	result := baseResult()
	result.RoundResults = []domain.RoundResult{
		correctRound(1.5), wrongRound(0.5), correctRound(8),
	}
	ids := Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "speed_demon") {
		t.Fatalf("expected speed_demon for a 1.5s correct answer, got %v", ids)
	}
	// the sub-second round was wrong, so no lightning
	if contains(ids, "lightning") {
		t.Fatalf("lightning must only count correct answers: %v", ids)
	}

	result.RoundResults = []domain.RoundResult{correctRound(0.8)}
	ids = Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "lightning") {
		t.Fatalf("expected lightning for a 0.8s correct answer, got %v", ids)
	}
}

func TestEvaluateFastGame(t *testing.T) {
	result := baseResult()
	result.AverageTimePerQuestion = 4.2
	ids := Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "fast_game") {
		t.Fatalf("expected fast_game at 4.2s average, got %v", ids)
	}
}

func TestEvaluateNailBiter(t *testing.T) {
	result := baseResult()
	result.Difficulty = string(domain.DifficultyMedium)
	result.RoundResults = []domain.RoundResult{correctRound(19.5)}
	ids := Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "nail_biter") {
		t.Fatalf("expected nail_biter at 0.5s remaining, got %v", ids)
	}

	// wrong answers never qualify
	result.RoundResults = []domain.RoundResult{wrongRound(19.5)}
	ids = Evaluate(result, domain.UserStats{}, nil)
	if contains(ids, "nail_biter") {
		t.Fatalf("nail_biter granted for a wrong answer: %v", ids)
	}
}

func TestEvaluateComeback(t *testing.T) {
	rounds := []domain.RoundResult{
		wrongRound(5), wrongRound(5), wrongRound(5), wrongRound(5), wrongRound(5),
		correctRound(5), correctRound(5), correctRound(5), correctRound(5), correctRound(5),
	}
	result := baseResult()
	result.TotalRounds = 10
	result.CorrectCount = 5
	result.RoundResults = rounds
	ids := Evaluate(result, domain.UserStats{}, nil)
	if !contains(ids, "comeback") {
		t.Fatalf("expected comeback, got %v", ids)
	}

	// an early correct answer breaks the pattern
	rounds[0] = correctRound(5)
	result.RoundResults = rounds
	ids = Evaluate(result, domain.UserStats{}, nil)
	if contains(ids, "comeback") {
		t.Fatalf("comeback granted without five opening misses: %v", ids)
	}
}

func TestEvaluateLevelAchievements(t *testing.T) {
	result := baseResult()
	result.Score = 500
	// 1700 before + 500 earned crosses the 2000 XP level 10 threshold
	ids := Evaluate(result, domain.UserStats{TotalXP: 1700}, nil)
	if !contains(ids, "level_10") {
		t.Fatalf("expected level_10 after crossing 2000 XP, got %v", ids)
	}
	if contains(ids, "level_25") {
		t.Fatalf("level_25 granted at level 10: %v", ids)
	}
}

func TestAchievementByID(t *testing.T) {
	a, ok := AchievementByID("streak_5")
	if !ok || a.Name == "" {
		t.Fatalf("expected catalog entry for streak_5")
	}
	if _, ok := AchievementByID("no_such_badge"); ok {
		t.Fatalf("unexpected hit for unknown id")
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 5},
		{2000, 10},
		{17999, 20},
		{100000, 50},
		{125000, 52},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Fatalf("level for %d XP: expected %d, got %d", tc.xp, tc.want, got)
		}
	}
}

func TestTitleForXP(t *testing.T) {
	if got := TitleForXP(0); got != "Rookie" {
		t.Fatalf("expected Rookie at 0 XP, got %q", got)
	}
	if got := TitleForXP(30000); got != "Expert" {
		t.Fatalf("expected Expert at 30k XP, got %q", got)
	}
	if got := TitleForXP(200000); got != "Champion" {
		t.Fatalf("expected Champion past 100k XP, got %q", got)
	}
}
