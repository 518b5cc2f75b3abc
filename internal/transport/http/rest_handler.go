package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/domain"
	"github.com/stewartburton/brainblitz/internal/progress"
)

// RESTHandler serves the read-side endpoints next to the game socket.
type RESTHandler struct {
	service *app.GameService
	log     zerolog.Logger
}

func NewRESTHandler(service *app.GameService, log zerolog.Logger) *RESTHandler {
	return &RESTHandler{service: service, log: log}
}

// Register wires the REST routes onto a mux.
func (h *RESTHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/daily-challenge", h.handleDailyChallenge)
	mux.HandleFunc("/daily-challenge/score", h.handleDailyScore)
	mux.HandleFunc("/achievements", h.handleAchievements)
}

func (h *RESTHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := domain.LeaderboardPeriod(r.URL.Query().Get("period"))
	switch period {
	case domain.PeriodWeekly, domain.PeriodMonthly, domain.PeriodDaily:
	default:
		period = domain.PeriodAllTime
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.Leaderboard(r.Context(), period, limit)
	if err != nil {
		h.log.Warn().Err(err).Str("period", string(period)).Msg("leaderboard fetch failed")
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *RESTHandler) handleDailyChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.service.DailyChallenge(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

type dailyScoreRequest struct {
	UserID       string  `json:"userId"`
	Score        int     `json:"score"`
	TimeTaken    float64 `json:"timeTaken"`
	CorrectCount int     `json:"correctCount"`
}

func (h *RESTHandler) handleDailyScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req dailyScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId and score required")
		return
	}

	rank, err := h.service.SubmitDailyScore(r.Context(), req.UserID, domain.DailyScore{
		Score:        req.Score,
		TimeTaken:    req.TimeTaken,
		CorrectCount: req.CorrectCount,
	})
	if errors.Is(err, domain.ErrAlreadyPlayed) {
		writeError(w, http.StatusConflict, "already played today's challenge")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not record score")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rank": rank})
}

func (h *RESTHandler) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.Catalog)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}
