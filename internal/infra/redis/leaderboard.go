package redis

import (
	"context"

	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/domain"
)

// Leaderboard keeps the period rankings in redis sorted sets:
//
//	ZINCRBY lb:alltime            {score} {userID}
//	ZINCRBY lb:weekly:{YYYY-Wnn}  {score} {userID}   EXPIRE ~8d
//	ZINCRBY lb:monthly:{YYYY-MM}  {score} {userID}   EXPIRE ~32d
//	ZADD    lb:daily:{YYYY-MM-DD} {score} {userID}   EXPIRE ~2d
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func (l *Leaderboard) Increment(ctx context.Context, userID string, score int, now time.Time) error {
	pipe := l.client.Pipeline()
	pipe.ZIncrBy(ctx, keyAllTime, float64(score), userID)

	weekKey := keyWeekly(now)
	pipe.ZIncrBy(ctx, weekKey, float64(score), userID)
	pipe.Expire(ctx, weekKey, app.WeeklyRetention)

	monthKey := keyMonthly(now)
	pipe.ZIncrBy(ctx, monthKey, float64(score), userID)
	pipe.Expire(ctx, monthKey, app.MonthlyRetention)

	_, err := pipe.Exec(ctx)
	return err
}

func (l *Leaderboard) Rank(ctx context.Context, period domain.LeaderboardPeriod, userID string, now time.Time) (int, error) {
	rank, err := l.client.ZRevRank(ctx, l.key(period, now), userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}

func (l *Leaderboard) Top(ctx context.Context, period domain.LeaderboardPeriod, limit int, now time.Time) ([]domain.LeaderboardEntry, error) {
	members, err := l.client.ZRevRangeWithScores(ctx, l.key(period, now), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for i, m := range members {
		userID, _ := m.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{
			UserID: userID,
			Score:  int(m.Score),
			Rank:   i + 1,
		})
	}
	return entries, nil
}

func (l *Leaderboard) SubmitDaily(ctx context.Context, userID string, score int, date string) (int, error) {
	key := keyDaily(date)
	pipe := l.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: userID})
	pipe.Expire(ctx, key, app.DailyRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	rank, err := l.client.ZRevRank(ctx, key, userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}

const keyAllTime = "lb:alltime"

func keyWeekly(now time.Time) string {
	return "lb:weekly:" + app.WeekKey(now)
}

func keyMonthly(now time.Time) string {
	return "lb:monthly:" + app.MonthKey(now)
}

func keyDaily(date string) string {
	return "lb:daily:" + date
}

func (l *Leaderboard) key(period domain.LeaderboardPeriod, now time.Time) string {
	switch period {
	case domain.PeriodWeekly:
		return keyWeekly(now)
	case domain.PeriodMonthly:
		return keyMonthly(now)
	case domain.PeriodDaily:
		return keyDaily(app.DateKey(now))
	default:
		return keyAllTime
	}
}
