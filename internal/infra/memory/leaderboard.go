package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/domain"
)

// Leaderboard is the in-memory fallback implementation of app.Leaderboard,
// mirroring the redis sorted-set layout with per-period score maps.
type Leaderboard struct {
	mu      sync.RWMutex
	buckets map[string]map[string]int // bucket key -> userID -> score
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{buckets: make(map[string]map[string]int)}
}

func (l *Leaderboard) Increment(_ context.Context, userID string, score int, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range []string{
		"lb:alltime",
		"lb:weekly:" + app.WeekKey(now),
		"lb:monthly:" + app.MonthKey(now),
	} {
		bucket := l.buckets[key]
		if bucket == nil {
			bucket = make(map[string]int)
			l.buckets[key] = bucket
		}
		bucket[userID] += score
	}
	return nil
}

func (l *Leaderboard) Rank(_ context.Context, period domain.LeaderboardPeriod, userID string, now time.Time) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.sortedLocked(bucketKey(period, now))
	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, nil
}

func (l *Leaderboard) Top(_ context.Context, period domain.LeaderboardPeriod, limit int, now time.Time) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.sortedLocked(bucketKey(period, now))
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (l *Leaderboard) SubmitDaily(_ context.Context, userID string, score int, date string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := "lb:daily:" + date
	bucket := l.buckets[key]
	if bucket == nil {
		bucket = make(map[string]int)
		l.buckets[key] = bucket
	}
	bucket[userID] = score

	// rank under the same lock so a concurrent write cannot skew it
	for _, e := range l.sortedLocked(key) {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, nil
}

func (l *Leaderboard) sortedLocked(key string) []domain.LeaderboardEntry {
	bucket := l.buckets[key]
	entries := make([]domain.LeaderboardEntry, 0, len(bucket))
	for userID, score := range bucket {
		entries = append(entries, domain.LeaderboardEntry{UserID: userID, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func bucketKey(period domain.LeaderboardPeriod, now time.Time) string {
	switch period {
	case domain.PeriodWeekly:
		return "lb:weekly:" + app.WeekKey(now)
	case domain.PeriodMonthly:
		return "lb:monthly:" + app.MonthKey(now)
	case domain.PeriodDaily:
		return "lb:daily:" + app.DateKey(now)
	default:
		return "lb:alltime"
	}
}
