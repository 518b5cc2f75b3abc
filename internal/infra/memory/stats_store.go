package memory

import (
	"context"
	"sync"

	"github.com/stewartburton/brainblitz/internal/domain"
	"github.com/stewartburton/brainblitz/internal/progress"
)

// StatsStore keeps running user totals and earned achievements in memory.
type StatsStore struct {
	mu     sync.RWMutex
	stats  map[string]domain.UserStats
	earned map[string]map[string]struct{}
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		stats:  make(map[string]domain.UserStats),
		earned: make(map[string]map[string]struct{}),
	}
}

func (s *StatsStore) Stats(_ context.Context, userID string) (domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if stats, ok := s.stats[userID]; ok {
		return stats, nil
	}
	return domain.UserStats{UserID: userID, Level: 1}, nil
}

func (s *StatsStore) ApplyResult(_ context.Context, userID string, result domain.GameResult) (domain.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[userID]
	if !ok {
		stats = domain.UserStats{UserID: userID, Level: 1}
	}
	stats.TotalGames++
	stats.TotalCorrect += result.CorrectCount
	stats.TotalScore += result.Score
	stats.TotalXP += progress.XPEarned(result.Score)
	if result.Score > stats.BestGameScore {
		stats.BestGameScore = result.Score
	}
	if result.BestStreak > stats.BestStreak {
		stats.BestStreak = result.BestStreak
	}
	stats.Level = progress.LevelForXP(stats.TotalXP)

	s.stats[userID] = stats
	return stats, nil
}

func (s *StatsStore) Earned(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	earned := make(map[string]struct{}, len(s.earned[userID]))
	for id := range s.earned[userID] {
		earned[id] = struct{}{}
	}
	return earned, nil
}

func (s *StatsStore) Grant(_ context.Context, userID string, achievementIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	earned := s.earned[userID]
	if earned == nil {
		earned = make(map[string]struct{})
		s.earned[userID] = earned
	}
	for _, id := range achievementIDs {
		earned[id] = struct{}{}
	}
	return nil
}
