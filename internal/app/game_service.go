package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stewartburton/brainblitz/internal/domain"
	"github.com/stewartburton/brainblitz/internal/game"
	"github.com/stewartburton/brainblitz/internal/progress"
)

// QuestionSource supplies the trivia catalog (from cache/backing store).
type QuestionSource interface {
	Catalog(ctx context.Context) ([]domain.Question, error)
}

// SessionStore abstracts how per-player sessions are held.
type SessionStore interface {
	GetOrCreate(userID string) *game.Session
	Get(userID string) (*game.Session, bool)
	Delete(userID string)
}

// ResultStore persists finalized game results and daily challenge scores.
type ResultStore interface {
	SaveResult(ctx context.Context, userID string, result domain.GameResult) error
	SaveDailyScore(ctx context.Context, userID, date string, score domain.DailyScore) error
}

// Leaderboard maintains the period rankings. Scores are cumulative
// increments per user, except the daily challenge which is one score per
// user per day.
type Leaderboard interface {
	Increment(ctx context.Context, userID string, score int, now time.Time) error
	Rank(ctx context.Context, period domain.LeaderboardPeriod, userID string, now time.Time) (int, error)
	Top(ctx context.Context, period domain.LeaderboardPeriod, limit int, now time.Time) ([]domain.LeaderboardEntry, error)
	SubmitDaily(ctx context.Context, userID string, score int, date string) (int, error)
}

// StatsStore tracks running user totals and earned achievements.
type StatsStore interface {
	Stats(ctx context.Context, userID string) (domain.UserStats, error)
	ApplyResult(ctx context.Context, userID string, result domain.GameResult) (domain.UserStats, error)
	Earned(ctx context.Context, userID string) (map[string]struct{}, error)
	Grant(ctx context.Context, userID string, achievementIDs []string) error
}

// DailyStore keeps the shared per-day challenge set and who played it.
type DailyStore interface {
	ChallengeIDs(ctx context.Context, date string) ([]string, error)
	SaveChallenge(ctx context.Context, date string, questionIDs []string) error
	// MarkPlayed records the submission and reports whether the user had
	// already played that date.
	MarkPlayed(ctx context.Context, userID, date string) (bool, error)
}

// GameService contains the trivia use cases: driving per-player sessions,
// submitting finished games, and serving leaderboards and the daily
// challenge.
type GameService struct {
	questions QuestionSource
	sessions  SessionStore
	results   ResultStore
	board     Leaderboard
	stats     StatsStore
	daily     DailyStore
	clock     func() time.Time
	log       zerolog.Logger
}

func NewGameService(questions QuestionSource, sessions SessionStore, results ResultStore, board Leaderboard, stats StatsStore, daily DailyStore, log zerolog.Logger) *GameService {
	return &GameService{
		questions: questions,
		sessions:  sessions,
		results:   results,
		board:     board,
		stats:     stats,
		daily:     daily,
		clock:     time.Now,
		log:       log,
	}
}

// StartGame loads the catalog into the player's session and starts a new
// game. A failed catalog load degrades to the session's error phase rather
// than failing the call.
func (s *GameService) StartGame(ctx context.Context, userID string, overrides game.Overrides) game.Snapshot {
	bank, err := s.questions.Catalog(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("catalog load failed")
		bank = nil
	}
	session := s.sessions.GetOrCreate(userID)
	session.SetQuestionBank(bank)
	return session.Start(overrides)
}

// StartDailyGame starts a session over today's shared challenge set.
func (s *GameService) StartDailyGame(ctx context.Context, userID string) (game.Snapshot, error) {
	challenge, err := s.DailyChallenge(ctx)
	if err != nil {
		return game.Snapshot{}, err
	}
	session := s.sessions.GetOrCreate(userID)
	session.SetQuestionBank(challenge.Questions)
	return session.Start(game.Overrides{
		Mode:        domain.ModeDaily,
		TotalRounds: len(challenge.Questions),
	}), nil
}

// SelectAnswer forwards the player's pick to their session.
func (s *GameService) SelectAnswer(userID string, index int) (game.Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.SelectAnswer(index), nil
}

// Tick advances the player's countdown by step seconds.
func (s *GameService) Tick(userID string, step float64) (game.Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Tick(step), nil
}

// NextRound advances the player's session past the feedback view.
func (s *GameService) NextRound(userID string) (game.Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.NextRound(), nil
}

// ResetGame aborts the player's session back to idle.
func (s *GameService) ResetGame(userID string) (game.Snapshot, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return game.Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Reset(), nil
}

// CompleteGame finalizes a finished session and submits the result: the
// game row is persisted, ranked scores feed the period leaderboards, user
// totals are updated, and newly earned achievements are granted. Every
// external failure is logged and degraded; the player always gets their
// local result. Each game submits at most once: a repeat call (or a
// replayed client message) returns a nil result without side effects.
func (s *GameService) CompleteGame(ctx context.Context, userID string) (*domain.GameResult, domain.SubmissionReceipt, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, domain.SubmissionReceipt{}, domain.ErrSessionNotFound
	}
	result := session.Complete()
	if result == nil {
		return nil, domain.SubmissionReceipt{}, nil
	}

	receipt := domain.SubmissionReceipt{XPEarned: progress.XPEarned(result.Score)}
	now := s.clock()

	statsBefore, err := s.stats.Stats(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("load stats failed")
		statsBefore = domain.UserStats{UserID: userID}
	}
	earned, err := s.stats.Earned(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("load earned achievements failed")
		earned = map[string]struct{}{}
	}

	if err := s.results.SaveResult(ctx, userID, *result); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Str("session", result.SessionID).Msg("save result failed")
	}

	if result.Mode == domain.ModeRanked {
		if err := s.board.Increment(ctx, userID, result.Score, now); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("leaderboard increment failed")
		}
	}
	if rank, err := s.board.Rank(ctx, domain.PeriodAllTime, userID, now); err == nil {
		receipt.Rank = rank
	}

	if _, err := s.stats.ApplyResult(ctx, userID, *result); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("apply stats failed")
	}

	newlyEarned := progress.Evaluate(*result, statsBefore, earned)
	if len(newlyEarned) > 0 {
		if err := s.stats.Grant(ctx, userID, newlyEarned); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("grant achievements failed")
		}
	}
	receipt.NewAchievements = newlyEarned

	return result, receipt, nil
}

// Leaderboard returns the top entries for a period.
func (s *GameService) Leaderboard(ctx context.Context, period domain.LeaderboardPeriod, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.board.Top(ctx, period, limit, s.clock())
}

// DailyChallenge returns today's shared question set, generating and
// storing it on first request of the day.
func (s *GameService) DailyChallenge(ctx context.Context) (domain.DailyChallenge, error) {
	date := DateKey(s.clock())

	catalog, err := s.questions.Catalog(ctx)
	if err != nil {
		return domain.DailyChallenge{}, err
	}
	byID := make(map[string]domain.Question, len(catalog))
	for _, q := range catalog {
		byID[q.ID] = q
	}

	ids, err := s.daily.ChallengeIDs(ctx, date)
	if err != nil {
		s.log.Warn().Err(err).Str("date", date).Msg("load daily challenge failed")
	}

	if len(ids) == 0 {
		set, err := game.BuildDailySet(catalog, newDayRand(date))
		if err != nil {
			return domain.DailyChallenge{}, err
		}
		ids = make([]string, len(set))
		for i, q := range set {
			ids[i] = q.ID
		}
		if err := s.daily.SaveChallenge(ctx, date, ids); err != nil {
			s.log.Warn().Err(err).Str("date", date).Msg("save daily challenge failed")
		}
	}

	questions := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return domain.DailyChallenge{}, domain.ErrChallengeUnavailable
	}
	return domain.DailyChallenge{Date: date, Questions: questions}, nil
}

// SubmitDailyScore records a daily challenge score, once per user per day.
// A repeat submission returns ErrAlreadyPlayed. The score is persisted
// durably and fed to the daily leaderboard.
func (s *GameService) SubmitDailyScore(ctx context.Context, userID string, score domain.DailyScore) (int, error) {
	date := DateKey(s.clock())
	already, err := s.daily.MarkPlayed(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	if already {
		return 0, domain.ErrAlreadyPlayed
	}
	if err := s.results.SaveDailyScore(ctx, userID, date, score); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Str("date", date).Msg("save daily score failed")
	}
	rank, err := s.board.SubmitDaily(ctx, userID, score.Score, date)
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("daily leaderboard update failed")
		return 0, nil
	}
	return rank, nil
}
