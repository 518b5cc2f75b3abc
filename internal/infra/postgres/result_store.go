package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// ResultStore persists finalized game results as one row per session, with
// the per-round breakdown kept as JSONB.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) SaveResult(ctx context.Context, userID string, result domain.GameResult) error {
	rounds, err := json.Marshal(result.RoundResults)
	if err != nil {
		return fmt.Errorf("marshal rounds: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_sessions
			(id, user_id, mode, category, difficulty, total_rounds,
			 correct_count, score, best_streak, average_time, total_time,
			 rounds, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		result.SessionID, userID, string(result.Mode), result.Category,
		result.Difficulty, result.TotalRounds, result.CorrectCount,
		result.Score, result.BestStreak, result.AverageTimePerQuestion,
		result.TotalTimeTaken, rounds, result.CompletedAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// SaveDailyScore records one daily challenge submission. The primary key
// on (user_id, challenge_date) makes a replayed insert a no-op; the
// once-per-day rule is enforced upstream.
func (s *ResultStore) SaveDailyScore(ctx context.Context, userID, date string, score domain.DailyScore) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_challenge_scores
			(user_id, challenge_date, score, time_taken, correct_count)
		VALUES ($1, $2::date, $3, $4, $5)
		ON CONFLICT (user_id, challenge_date) DO NOTHING`,
		userID, date, score.Score, score.TimeTaken, score.CorrectCount)
	if err != nil {
		return fmt.Errorf("save daily score: %w", err)
	}
	return nil
}
