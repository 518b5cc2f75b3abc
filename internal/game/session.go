package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// Phase pacing delays. These gate UI transitions only; no state changes
// ride along with them.
const (
	CountdownDelay  = 3 * time.Second
	RevealDelay     = 300 * time.Millisecond
	InterRoundDelay = time.Second
)

// TickStep is the granularity the external timer drives the session at.
const TickStep = 0.1

// AnswerTimeout is the selected-answer sentinel recorded on a timed-out round.
const AnswerTimeout = -1

// DefaultConfig is the baseline every Start merges overrides onto.
var DefaultConfig = domain.GameConfig{
	Mode:         domain.ModeCasual,
	Category:     domain.CategoryAll,
	Difficulty:   domain.DifficultyMixed,
	TotalRounds:  10,
	TimerSeconds: TimerDefault,
}

// Scheduler schedules the session's delayed phase transitions. The returned
// cancel stops the callback if it has not fired yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Overrides are partial GameConfig values merged onto DefaultConfig on
// Start; zero values keep the default.
type Overrides struct {
	Mode        domain.GameMode
	Category    string
	Difficulty  string
	TotalRounds int
}

// Snapshot is a read-only view of the session for transports and tests.
type Snapshot struct {
	Phase               domain.GamePhase         `json:"phase"`
	Config              domain.GameConfig        `json:"config"`
	Round               int                      `json:"round"`
	Question            *domain.PreparedQuestion `json:"question,omitempty"`
	SelectedAnswerIndex *int                     `json:"selectedAnswerIndex,omitempty"`
	Score               int                      `json:"score"`
	Streak              int                      `json:"streak"`
	BestStreak          int                      `json:"bestStreak"`
	CorrectCount        int                      `json:"correctCount"`
	TimeLeft            float64                  `json:"timeLeft"`
	Feedback            string                   `json:"feedback,omitempty"`
	LastBreakdown       *domain.ScoreBreakdown   `json:"lastBreakdown,omitempty"`
	ErrorMessage        string                   `json:"errorMessage,omitempty"`
	RoundResults        []domain.RoundResult     `json:"roundResults"`
}

// Session is the mutable core of one game. It is driven cooperatively by
// external events (answers, timer ticks) and its own scheduled phase
// transitions; every scheduled callback re-checks the generation counter
// under the lock so a reset can never be corrupted by a stale timer.
type Session struct {
	mu    sync.Mutex
	clock func() time.Time
	sched Scheduler
	rng   *rand.Rand

	bank     []domain.Question
	defaults domain.GameConfig

	generation uint64
	pending    []func()

	phase         domain.GamePhase
	cfg           domain.GameConfig
	questions     []domain.PreparedQuestion
	round         int // 1-based
	answered      bool
	selectedIndex int
	score         int
	streak        int
	bestStreak    int
	correctCount  int
	timeLeft      float64
	results       []domain.RoundResult
	completed     bool
	startedAt     time.Time
	feedback      string
	lastBreakdown *domain.ScoreBreakdown
	errMsg        string
}

// NewSession builds an idle session around a question bank.
func NewSession(bank []domain.Question) *Session {
	return NewSessionWithClock(bank, time.Now, timerScheduler{}, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionWithClock allows deterministic time, scheduling, and shuffling
// in tests.
func NewSessionWithClock(bank []domain.Question, now func() time.Time, sched Scheduler, rng *rand.Rand) *Session {
	return &Session{
		clock:    now,
		sched:    sched,
		rng:      rng,
		bank:     bank,
		defaults: DefaultConfig,
		phase:    domain.PhaseIdle,
	}
}

// SetQuestionBank swaps the loaded catalog. It does not touch an in-flight
// session; the new bank applies from the next Start.
func (s *Session) SetQuestionBank(bank []domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank = bank
}

// Start begins a new game: merges overrides onto the defaults, selects and
// prepares every question up front, and enters the countdown. An empty
// selection lands in the error phase instead.
func (s *Session) Start(overrides Overrides) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()

	cfg := s.defaults
	if overrides.Mode != "" {
		cfg.Mode = overrides.Mode
	}
	if overrides.Category != "" {
		cfg.Category = overrides.Category
	}
	if overrides.Difficulty != "" {
		cfg.Difficulty = overrides.Difficulty
	}
	if overrides.TotalRounds > 0 {
		cfg.TotalRounds = overrides.TotalRounds
	}

	selected := SelectQuestions(s.bank, cfg, s.rng)
	if len(selected) == 0 {
		s.phase = domain.PhaseError
		s.errMsg = "No questions available!"
		return s.snapshotLocked()
	}

	if len(selected) < cfg.TotalRounds {
		cfg.TotalRounds = len(selected)
	}

	prepared := make([]domain.PreparedQuestion, 0, len(selected))
	for _, q := range selected {
		pq, err := Prepare(q, s.rng)
		if err != nil {
			// SelectQuestions already filtered malformed entries.
			continue
		}
		prepared = append(prepared, pq)
	}
	if len(prepared) == 0 {
		s.phase = domain.PhaseError
		s.errMsg = "No questions available!"
		return s.snapshotLocked()
	}
	if len(prepared) < cfg.TotalRounds {
		cfg.TotalRounds = len(prepared)
	}

	s.cfg = cfg
	s.questions = prepared
	s.round = 1
	s.timeLeft = TimerForDifficulty(prepared[0].Difficulty)
	s.startedAt = s.clock()
	s.phase = domain.PhaseCountdown

	s.scheduleLocked(CountdownDelay, func() {
		if s.phase == domain.PhaseCountdown {
			s.phase = domain.PhasePlaying
		}
	})
	return s.snapshotLocked()
}

// SelectAnswer resolves the current round with the player's pick. It is
// at-most-once per round: repeat calls, out-of-phase calls, and
// out-of-range indexes are silent no-ops.
func (s *Session) SelectAnswer(index int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhasePlaying || s.answered {
		return s.snapshotLocked()
	}
	q := s.currentQuestionLocked()
	if q == nil || index < 0 || index >= len(q.ShuffledAnswers) {
		return s.snapshotLocked()
	}
	s.resolveLocked(index, false)
	return s.snapshotLocked()
}

// Tick decrements the countdown by step seconds. Outside the playing phase
// it is a no-op; hitting zero resolves the round as a timeout.
func (s *Session) Tick(step float64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhasePlaying {
		return s.snapshotLocked()
	}
	s.timeLeft -= step
	if s.timeLeft < 0 {
		s.timeLeft = 0
	}
	if s.timeLeft == 0 && !s.answered {
		s.resolveLocked(AnswerTimeout, true)
	}
	return s.snapshotLocked()
}

func (s *Session) resolveLocked(index int, timedOut bool) {
	q := s.currentQuestionLocked()
	if q == nil {
		return
	}

	timerDuration := TimerForDifficulty(q.Difficulty)
	isCorrect := !timedOut && index == q.CorrectIndex
	timeSpent := timerDuration - s.timeLeft

	newStreak := 0
	if isCorrect {
		newStreak = s.streak + 1
	}
	breakdown := Score(isCorrect, s.timeLeft, timerDuration, newStreak, q.Difficulty)

	var selectedAnswer *string
	if !timedOut {
		answer := q.ShuffledAnswers[index]
		selectedAnswer = &answer
	}

	s.answered = true
	s.selectedIndex = index
	s.streak = newStreak
	if newStreak > s.bestStreak {
		s.bestStreak = newStreak
	}
	if isCorrect {
		s.correctCount++
	}
	s.score += breakdown.Total
	s.feedback = pickFeedback(s.rng, isCorrect, timedOut, newStreak)
	if timedOut {
		s.lastBreakdown = nil
	} else {
		s.lastBreakdown = &breakdown
	}

	s.results = append(s.results, domain.RoundResult{
		QuestionID:     q.ID,
		SelectedAnswer: selectedAnswer,
		CorrectAnswer:  q.CorrectAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      timeSpent,
		PointsEarned:   breakdown.Total,
		SpeedBonus:     breakdown.Speed,
		StreakBonus:    breakdown.Streak,
	})

	s.phase = domain.PhaseAnswered
	s.scheduleLocked(RevealDelay, func() {
		if s.phase == domain.PhaseAnswered {
			s.phase = domain.PhaseFeedback
		}
	})
}

// NextRound advances past the feedback view. On the last round it lands in
// results; otherwise it stages the next question behind a short pause.
func (s *Session) NextRound() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseFeedback && s.phase != domain.PhaseAnswered {
		return s.snapshotLocked()
	}

	next := s.round + 1
	if next > s.cfg.TotalRounds || next > len(s.questions) {
		s.phase = domain.PhaseResults
		return s.snapshotLocked()
	}

	s.round = next
	s.answered = false
	s.selectedIndex = 0
	s.feedback = ""
	s.lastBreakdown = nil
	s.timeLeft = TimerForDifficulty(s.questions[next-1].Difficulty)
	s.phase = domain.PhaseBetweenRounds

	s.scheduleLocked(InterRoundDelay, func() {
		if s.phase == domain.PhaseBetweenRounds {
			s.phase = domain.PhasePlaying
		}
	})
	return s.snapshotLocked()
}

// Reset returns the session to idle, cancelling every pending delayed
// transition. Only the loaded question bank survives.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return s.snapshotLocked()
}

func (s *Session) resetLocked() {
	s.generation++
	for _, cancel := range s.pending {
		cancel()
	}
	s.pending = nil

	s.phase = domain.PhaseIdle
	s.cfg = domain.GameConfig{}
	s.questions = nil
	s.round = 0
	s.answered = false
	s.selectedIndex = 0
	s.score = 0
	s.streak = 0
	s.bestStreak = 0
	s.correctCount = 0
	s.timeLeft = 0
	s.results = nil
	s.completed = false
	s.startedAt = time.Time{}
	s.feedback = ""
	s.lastBreakdown = nil
	s.errMsg = ""
}

// scheduleLocked registers a delayed transition bound to the current
// generation. The callback re-checks the generation under the lock, so a
// callback raced by a reset (or a fresh start) is discarded.
func (s *Session) scheduleLocked(d time.Duration, fn func()) {
	gen := s.generation
	cancel := s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != gen {
			return
		}
		fn()
	})
	s.pending = append(s.pending, cancel)
}

func (s *Session) currentQuestionLocked() *domain.PreparedQuestion {
	if s.round < 1 || s.round > len(s.questions) {
		return nil
	}
	return &s.questions[s.round-1]
}

// Phase reports the current state machine phase.
func (s *Session) Phase() domain.GamePhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:        s.phase,
		Config:       s.cfg,
		Round:        s.round,
		Score:        s.score,
		Streak:       s.streak,
		BestStreak:   s.bestStreak,
		CorrectCount: s.correctCount,
		TimeLeft:     s.timeLeft,
		Feedback:     s.feedback,
		ErrorMessage: s.errMsg,
	}
	if q := s.currentQuestionLocked(); q != nil {
		question := *q
		snap.Question = &question
	}
	if s.answered {
		idx := s.selectedIndex
		snap.SelectedAnswerIndex = &idx
	}
	if s.lastBreakdown != nil {
		breakdown := *s.lastBreakdown
		snap.LastBreakdown = &breakdown
	}
	snap.RoundResults = append([]domain.RoundResult(nil), s.results...)
	return snap
}
