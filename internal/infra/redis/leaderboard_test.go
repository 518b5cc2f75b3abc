package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/domain"
)

func newTestLeaderboard(t *testing.T) (*Leaderboard, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboard(client), mr
}

func TestIncrementWritesAllPeriodBuckets(t *testing.T) {
	board, mr := newTestLeaderboard(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	if err := board.Increment(ctx, "alice", 300, now); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := board.Increment(ctx, "alice", 200, now); err != nil {
		t.Fatalf("increment: %v", err)
	}

	for _, key := range []string{
		"lb:alltime",
		"lb:weekly:" + app.WeekKey(now),
		"lb:monthly:" + app.MonthKey(now),
	} {
		if !mr.Exists(key) {
			t.Fatalf("expected bucket %s", key)
		}
		score, err := mr.ZScore(key, "alice")
		if err != nil {
			t.Fatalf("zscore %s: %v", key, err)
		}
		if score != 500 {
			t.Fatalf("bucket %s: expected cumulative 500, got %v", key, score)
		}
	}

	if mr.TTL("lb:weekly:"+app.WeekKey(now)) != app.WeeklyRetention {
		t.Fatalf("expected weekly TTL %v, got %v", app.WeeklyRetention, mr.TTL("lb:weekly:"+app.WeekKey(now)))
	}
	if mr.TTL("lb:monthly:"+app.MonthKey(now)) != app.MonthlyRetention {
		t.Fatalf("expected monthly TTL %v, got %v", app.MonthlyRetention, mr.TTL("lb:monthly:"+app.MonthKey(now)))
	}
	if mr.TTL("lb:alltime") != 0 {
		t.Fatalf("alltime bucket must not expire, got %v", mr.TTL("lb:alltime"))
	}
}

func TestRankAndTopOrdering(t *testing.T) {
	board, _ := newTestLeaderboard(t)
	ctx := context.Background()
	now := time.Now()

	for user, score := range map[string]int{"alice": 900, "bob": 1200, "carol": 400} {
		if err := board.Increment(ctx, user, score, now); err != nil {
			t.Fatalf("increment %s: %v", user, err)
		}
	}

	rank, err := board.Rank(ctx, domain.PeriodAllTime, "alice", now)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 2 {
		t.Fatalf("expected alice at rank 2, got %d", rank)
	}

	top, err := board.Top(ctx, domain.PeriodAllTime, 2, now)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected top 2, got %d", len(top))
	}
	if top[0].UserID != "bob" || top[0].Rank != 1 || top[0].Score != 1200 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	if top[1].UserID != "alice" || top[1].Rank != 2 {
		t.Fatalf("unexpected runner-up: %+v", top[1])
	}
}

func TestRankUnknownUserIsZero(t *testing.T) {
	board, _ := newTestLeaderboard(t)
	rank, err := board.Rank(context.Background(), domain.PeriodAllTime, "nobody", time.Now())
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 0 {
		t.Fatalf("expected unranked 0, got %d", rank)
	}
}

func TestSubmitDailyOverwritesScore(t *testing.T) {
	board, mr := newTestLeaderboard(t)
	ctx := context.Background()

	rank, err := board.SubmitDaily(ctx, "alice", 700, "2026-03-15")
	if err != nil {
		t.Fatalf("submit daily: %v", err)
	}
	if rank != 1 {
		t.Fatalf("expected rank 1, got %d", rank)
	}

	// ZADD replaces rather than accumulates
	if _, err := board.SubmitDaily(ctx, "alice", 500, "2026-03-15"); err != nil {
		t.Fatalf("submit daily: %v", err)
	}
	score, err := mr.ZScore("lb:daily:2026-03-15", "alice")
	if err != nil {
		t.Fatalf("zscore: %v", err)
	}
	if score != 500 {
		t.Fatalf("expected overwritten score 500, got %v", score)
	}

	rank, err = board.SubmitDaily(ctx, "bob", 600, "2026-03-15")
	if err != nil {
		t.Fatalf("submit daily: %v", err)
	}
	if rank != 1 {
		t.Fatalf("expected bob at rank 1, got %d", rank)
	}

	if mr.TTL("lb:daily:2026-03-15") != app.DailyRetention {
		t.Fatalf("expected daily TTL %v, got %v", app.DailyRetention, mr.TTL("lb:daily:2026-03-15"))
	}
}
