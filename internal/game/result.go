package game

import (
	"github.com/google/uuid"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// Finalize reduces the accumulated round results into the terminal
// GameResult. It returns nil when no rounds were completed. The summary
// values are stable across calls on the same terminal state; the session id
// and completion timestamp are freshly generated each time.
func (s *Session) Finalize() *domain.GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalizeLocked()
}

// Complete finalizes the game at most once. The first call returns the
// result; repeats return nil until a new game starts. Submission side
// effects hang off this call, so a replayed client message cannot submit
// the same game twice.
func (s *Session) Complete() *domain.GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed {
		return nil
	}
	result := s.finalizeLocked()
	if result != nil {
		s.completed = true
	}
	return result
}

func (s *Session) finalizeLocked() *domain.GameResult {
	if len(s.results) == 0 {
		return nil
	}

	totalTime := 0.0
	for _, r := range s.results {
		totalTime += r.TimeSpent
	}

	return &domain.GameResult{
		SessionID:              uuid.NewString(),
		Mode:                   s.cfg.Mode,
		Category:               s.cfg.Category,
		Difficulty:             s.cfg.Difficulty,
		TotalRounds:            s.cfg.TotalRounds,
		CorrectCount:           s.correctCount,
		Score:                  s.score,
		BestStreak:             s.bestStreak,
		AverageTimePerQuestion: totalTime / float64(len(s.results)),
		TotalTimeTaken:         totalTime,
		RoundResults:           append([]domain.RoundResult(nil), s.results...),
		CompletedAt:            s.clock(),
	}
}
