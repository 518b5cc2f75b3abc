package memory

import (
	"context"
	"sync"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// ResultStore keeps finalized results and daily scores in memory, newest
// last. Used when no database is configured and by tests.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string][]domain.GameResult
	daily   map[string]map[string]domain.DailyScore // date -> userID
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string][]domain.GameResult),
		daily:   make(map[string]map[string]domain.DailyScore),
	}
}

func (r *ResultStore) SaveResult(_ context.Context, userID string, result domain.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[userID] = append(r.results[userID], result)
	return nil
}

func (r *ResultStore) SaveDailyScore(_ context.Context, userID, date string, score domain.DailyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scores := r.daily[date]
	if scores == nil {
		scores = make(map[string]domain.DailyScore)
		r.daily[date] = scores
	}
	if _, ok := scores[userID]; !ok {
		scores[userID] = score
	}
	return nil
}

// Results returns the stored results for a user.
func (r *ResultStore) Results(userID string) []domain.GameResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.GameResult(nil), r.results[userID]...)
}

// DailyScore returns a user's stored submission for a date.
func (r *ResultStore) DailyScore(userID, date string) (domain.DailyScore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	score, ok := r.daily[date][userID]
	return score, ok
}
