package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stewartburton/brainblitz/internal/app"
)

// DailyStore keeps the shared challenge set and per-user played markers:
//
//	RPUSH daily:{date}:questions  {questionID...}    EXPIRE ~2d
//	SET   daily:{date}:played:{userID} 1             EXPIRE ~2d
type DailyStore struct {
	client *redis.Client
}

func NewDailyStore(client *redis.Client) *DailyStore {
	return &DailyStore{client: client}
}

func (d *DailyStore) ChallengeIDs(ctx context.Context, date string) ([]string, error) {
	ids, err := d.client.LRange(ctx, challengeKey(date), 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (d *DailyStore) SaveChallenge(ctx context.Context, date string, questionIDs []string) error {
	key := challengeKey(date)
	members := make([]interface{}, len(questionIDs))
	for i, id := range questionIDs {
		members[i] = id
	}
	pipe := d.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, members...)
	pipe.Expire(ctx, key, app.DailyRetention)
	_, err := pipe.Exec(ctx)
	return err
}

func (d *DailyStore) MarkPlayed(ctx context.Context, userID, date string) (bool, error) {
	set, err := d.client.SetNX(ctx, playedKey(date, userID), "1", app.DailyRetention+time.Hour).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

func challengeKey(date string) string {
	return "daily:" + date + ":questions"
}

func playedKey(date, userID string) string {
	return "daily:" + date + ":played:" + userID
}
