package game

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stewartburton/brainblitz/internal/domain"
)

func testQuestion(id string, cat domain.Category, d domain.Difficulty) domain.Question {
	return domain.Question{
		ID:               id,
		Category:         cat,
		Difficulty:       d,
		Question:         "Question " + id,
		CorrectAnswer:    "right-" + id,
		IncorrectAnswers: []string{"wrong-a-" + id, "wrong-b-" + id, "wrong-c-" + id},
	}
}

func testPool(easy, medium, hard int) []domain.Question {
	var pool []domain.Question
	for i := 0; i < easy; i++ {
		pool = append(pool, testQuestion(fmt.Sprintf("e%d", i), domain.CategoryScience, domain.DifficultyEasy))
	}
	for i := 0; i < medium; i++ {
		pool = append(pool, testQuestion(fmt.Sprintf("m%d", i), domain.CategoryHistory, domain.DifficultyMedium))
	}
	for i := 0; i < hard; i++ {
		pool = append(pool, testQuestion(fmt.Sprintf("h%d", i), domain.CategorySports, domain.DifficultyHard))
	}
	return pool
}

func TestSelectFiltersByCategoryAndDifficulty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := testPool(5, 5, 5)

	cfg := domain.GameConfig{Category: string(domain.CategoryScience), Difficulty: string(domain.DifficultyEasy), TotalRounds: 10}
	selected := SelectQuestions(pool, cfg, rng)
	if len(selected) != 5 {
		t.Fatalf("expected all 5 easy science questions, got %d", len(selected))
	}
	for _, q := range selected {
		if q.Category != domain.CategoryScience || q.Difficulty != domain.DifficultyEasy {
			t.Fatalf("filter leak: %+v", q)
		}
	}
}

func TestSelectReturnsEmptyWhenNothingMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := domain.GameConfig{Category: string(domain.CategoryMusic), Difficulty: domain.DifficultyMixed, TotalRounds: 5}
	if got := SelectQuestions(testPool(3, 3, 3), cfg, rng); len(got) != 0 {
		t.Fatalf("expected empty selection, got %d", len(got))
	}
}

func TestSelectShortPoolReturnedWhole(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cfg := domain.GameConfig{Category: domain.CategoryAll, Difficulty: domain.DifficultyMixed, TotalRounds: 10}
	selected := SelectQuestions(testPool(2, 1, 1), cfg, rng)
	if len(selected) != 4 {
		t.Fatalf("expected the whole 4-question pool, got %d", len(selected))
	}
	seen := map[string]bool{}
	for _, q := range selected {
		if seen[q.ID] {
			t.Fatalf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectMixedStratification(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := domain.GameConfig{Category: domain.CategoryAll, Difficulty: domain.DifficultyMixed, TotalRounds: 10}
	selected := SelectQuestions(testPool(5, 5, 5), cfg, rng)
	if len(selected) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(selected))
	}

	counts := map[domain.Difficulty]int{}
	seen := map[string]bool{}
	for _, q := range selected {
		counts[q.Difficulty]++
		if seen[q.ID] {
			t.Fatalf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
	if counts[domain.DifficultyEasy] != 3 || counts[domain.DifficultyMedium] != 4 || counts[domain.DifficultyHard] != 3 {
		t.Fatalf("expected 3 easy / 4 medium / 3 hard, got %+v", counts)
	}
}

func TestSelectMixedBackfillsShortTier(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	// only 1 hard question; the shortfall backfills from easy/medium
	cfg := domain.GameConfig{Category: domain.CategoryAll, Difficulty: domain.DifficultyMixed, TotalRounds: 10}
	selected := SelectQuestions(testPool(6, 6, 1), cfg, rng)
	if len(selected) != 10 {
		t.Fatalf("expected backfilled selection of 10, got %d", len(selected))
	}
	seen := map[string]bool{}
	for _, q := range selected {
		if seen[q.ID] {
			t.Fatalf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectExcludesMalformedQuestions(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	bad := domain.Question{
		ID: "bad", Category: domain.CategoryScience, Difficulty: domain.DifficultyEasy,
		Question: "?", CorrectAnswer: "yes", IncorrectAnswers: []string{"yes", "no"},
	}
	missing := domain.Question{
		ID: "missing", Category: domain.CategoryScience, Difficulty: domain.DifficultyEasy,
		Question: "?", IncorrectAnswers: []string{"a", "b"},
	}
	pool := append(testPool(3, 0, 0), bad, missing)

	cfg := domain.GameConfig{Category: domain.CategoryAll, Difficulty: string(domain.DifficultyEasy), TotalRounds: 10}
	selected := SelectQuestions(pool, cfg, rng)
	if len(selected) != 3 {
		t.Fatalf("expected malformed questions excluded, got %d", len(selected))
	}
	for _, q := range selected {
		if q.ID == "bad" || q.ID == "missing" {
			t.Fatalf("malformed question %s made it into the session", q.ID)
		}
	}
}

func TestPrepareIsPermutationWithCorrectIndex(t *testing.T) {
	q := testQuestion("p1", domain.CategoryScience, domain.DifficultyMedium)
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		prepared, err := Prepare(q, rng)
		if err != nil {
			t.Fatalf("prepare: %v", err)
		}

		want := append([]string{q.CorrectAnswer}, q.IncorrectAnswers...)
		got := append([]string(nil), prepared.ShuffledAnswers...)
		sort.Strings(want)
		sort.Strings(got)
		if len(want) != len(got) {
			t.Fatalf("seed %d: expected %d answers, got %d", seed, len(want), len(got))
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("seed %d: shuffled answers are not a permutation: %v", seed, prepared.ShuffledAnswers)
			}
		}

		if prepared.ShuffledAnswers[prepared.CorrectIndex] != q.CorrectAnswer {
			t.Fatalf("seed %d: correct index %d points at %q", seed, prepared.CorrectIndex, prepared.ShuffledAnswers[prepared.CorrectIndex])
		}
	}
}

func TestPrepareRejectsMalformedQuestion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := domain.Question{
		ID: "dup", CorrectAnswer: "yes",
		IncorrectAnswers: []string{"yes", "no"},
	}
	if _, err := Prepare(q, rng); err == nil {
		t.Fatalf("expected malformed question to be rejected")
	}

	short := domain.Question{ID: "short", CorrectAnswer: "yes", IncorrectAnswers: []string{"no"}}
	if _, err := Prepare(short, rng); err == nil {
		t.Fatalf("expected question with one incorrect answer to be rejected")
	}
}
