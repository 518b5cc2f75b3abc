package domain

import "time"

// Difficulty is one of the three question tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyMixed is only valid as a GameConfig filter, never on a question.
const DifficultyMixed = "mixed"

// Category labels a question's topic.
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryScience     Category = "science"
	CategoryHistory     Category = "history"
	CategoryGeography   Category = "geography"
	CategorySports      Category = "sports"
	CategoryMovies      Category = "movies"
	CategoryMusic       Category = "music"
	CategoryLiterature  Category = "literature"
	CategoryTechnology  Category = "technology"
	CategoryNature      Category = "nature"
	CategoryFoodDrink   Category = "food_drink"
	CategoryArt         Category = "art"
	CategoryMythology   Category = "mythology"
	CategoryTrueOrFalse Category = "true_or_false"
)

// CategoryAll is the GameConfig filter value matching every category.
const CategoryAll = "all"

// GameMode distinguishes how a session's result is treated downstream.
type GameMode string

const (
	ModeCasual    GameMode = "casual"
	ModeRanked    GameMode = "ranked"
	ModeDaily     GameMode = "daily"
	ModeChallenge GameMode = "challenge"
)

// GamePhase enumerates the session state machine phases.
type GamePhase string

const (
	PhaseIdle          GamePhase = "idle"
	PhaseCountdown     GamePhase = "countdown"
	PhasePlaying       GamePhase = "playing"
	PhaseAnswered      GamePhase = "answered"
	PhaseFeedback      GamePhase = "feedback"
	PhaseBetweenRounds GamePhase = "between_rounds"
	PhaseResults       GamePhase = "results"
	PhaseError         GamePhase = "error"
)

// Question is an immutable catalog entry.
type Question struct {
	ID               string     `json:"id"`
	Category         Category   `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
	Question         string     `json:"question"`
	CorrectAnswer    string     `json:"correctAnswer"`
	IncorrectAnswers []string   `json:"incorrectAnswers"`
	Explanation      string     `json:"explanation,omitempty"`
	FunFact          string     `json:"funFact,omitempty"`
	IsPremium        bool       `json:"isPremium"`
}

// PreparedQuestion is a Question with a fixed answer presentation order.
// CorrectIndex points at CorrectAnswer's position within ShuffledAnswers.
type PreparedQuestion struct {
	Question
	ShuffledAnswers []string `json:"shuffledAnswers"`
	CorrectIndex    int      `json:"correctIndex"`
}

// GameConfig is the immutable per-session configuration. Category may be a
// specific Category or "all"; Difficulty a specific Difficulty or "mixed".
type GameConfig struct {
	Mode        GameMode `json:"mode"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	TotalRounds int      `json:"totalRounds"`
	// TimerSeconds is the fallback per-question timer used when the
	// difficulty filter is mixed; otherwise it derives from difficulty.
	TimerSeconds float64 `json:"timerSeconds"`
}

// RoundResult records one resolved round. SelectedAnswer is nil on timeout.
type RoundResult struct {
	QuestionID     string  `json:"questionId"`
	SelectedAnswer *string `json:"selectedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
	TimeSpent      float64 `json:"timeSpent"`
	PointsEarned   int     `json:"pointsEarned"`
	SpeedBonus     int     `json:"speedBonus"`
	StreakBonus    int     `json:"streakBonus"`
}

// ScoreBreakdown itemizes the points for a single answered round.
// DifficultyMultiplier is display-only and never added into Total.
type ScoreBreakdown struct {
	Base                 int     `json:"base"`
	Speed                int     `json:"speed"`
	Streak               int     `json:"streak"`
	DifficultyMultiplier float64 `json:"difficulty"`
	Total                int     `json:"total"`
}

// GameResult is the terminal aggregate handed to persistence/leaderboards.
type GameResult struct {
	SessionID              string        `json:"sessionId"`
	Mode                   GameMode      `json:"mode"`
	Category               string        `json:"category"`
	Difficulty             string        `json:"difficulty"`
	TotalRounds            int           `json:"totalRounds"`
	CorrectCount           int           `json:"correctCount"`
	Score                  int           `json:"score"`
	BestStreak             int           `json:"bestStreak"`
	AverageTimePerQuestion float64       `json:"averageTimePerQuestion"`
	TotalTimeTaken         float64       `json:"totalTimeTaken"`
	RoundResults           []RoundResult `json:"roundResults"`
	CompletedAt            time.Time     `json:"completedAt"`
}

// SubmissionReceipt is what the player gets back after a result submission.
type SubmissionReceipt struct {
	Rank            int      `json:"rank"` // 0 = unranked
	XPEarned        int      `json:"xpEarned"`
	NewAchievements []string `json:"newAchievements"`
}

// LeaderboardPeriod scopes a ranking to a time window.
type LeaderboardPeriod string

const (
	PeriodAllTime LeaderboardPeriod = "alltime"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodDaily   LeaderboardPeriod = "daily"
)

// LeaderboardEntry is one row of a period leaderboard.
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

// DailyScore is one user's daily challenge submission.
type DailyScore struct {
	Score        int     `json:"score"`
	TimeTaken    float64 `json:"timeTaken"`
	CorrectCount int     `json:"correctCount"`
}

// DailyChallenge is the shared, date-scoped fixed question set.
type DailyChallenge struct {
	Date      string     `json:"date"` // YYYY-MM-DD
	Questions []Question `json:"questions"`
}

// UserStats are the running totals achievements are evaluated against.
type UserStats struct {
	UserID        string `json:"userId"`
	TotalGames    int    `json:"totalGames"`
	TotalCorrect  int    `json:"totalCorrect"`
	TotalScore    int    `json:"totalScore"`
	TotalXP       int    `json:"totalXp"`
	BestGameScore int    `json:"bestGameScore"`
	BestStreak    int    `json:"bestStreak"`
	Level         int    `json:"level"`
}

// Achievement describes one earnable badge.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	IsSecret    bool   `json:"isSecret"`
}
