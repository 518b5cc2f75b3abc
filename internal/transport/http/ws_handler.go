package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stewartburton/brainblitz/internal/app"
	"github.com/stewartburton/brainblitz/internal/domain"
	"github.com/stewartburton/brainblitz/internal/game"
)

// tickInterval is how often the connection drives the session timer. The
// session only consumes ticks while playing; everywhere else they are
// no-ops, so the driver does not need to start/stop with phase changes.
const tickInterval = 100 * time.Millisecond

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.GameService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode        string `json:"mode"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	TotalRounds int    `json:"totalRounds"`
}

type answerPayload struct {
	Index int `json:"index"`
}

type resultsPayload struct {
	Result  *domain.GameResult       `json:"result"`
	Receipt domain.SubmissionReceipt `json:"receipt"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request to a websocket and drives one player's game
// session over it.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	tickerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Timer driver: advances the countdown and relays phase flips that
	// happen on the session's own schedule (countdown, reveal, pauses).
	go func() {
		defer close(tickerDone)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		var last game.Snapshot
		for {
			select {
			case <-ticker.C:
				snap, err := h.service.Tick(userID, game.TickStep)
				if err != nil {
					continue
				}
				if snap.Phase != last.Phase || int(snap.TimeLeft) != int(last.TimeLeft) {
					select {
					case send <- outboundMessage[any]{Type: "state", Payload: snap}:
					case <-closeSignals:
						return
					}
				}
				last = snap
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}}
					continue
				}
			}
			var snap game.Snapshot
			if payload.Mode == string(domain.ModeDaily) {
				snap, err = h.service.StartDailyGame(r.Context(), userID)
				if err != nil {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
					continue
				}
			} else {
				snap = h.service.StartGame(r.Context(), userID, game.Overrides{
					Mode:        domain.GameMode(payload.Mode),
					Category:    payload.Category,
					Difficulty:  payload.Difficulty,
					TotalRounds: payload.TotalRounds,
				})
			}
			send <- outboundMessage[any]{Type: "state", Payload: snap}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			snap, err := h.service.SelectAnswer(userID, payload.Index)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "state", Payload: snap}
		case "next":
			snap, err := h.service.NextRound(userID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "state", Payload: snap}
			if snap.Phase == domain.PhaseResults {
				result, receipt, err := h.service.CompleteGame(r.Context(), userID)
				if err != nil || result == nil {
					if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
						h.log.Warn().Err(err).Str("user", userID).Msg("complete game failed")
					}
					continue
				}
				send <- outboundMessage[any]{Type: "results", Payload: resultsPayload{Result: result, Receipt: receipt}}
			}
		case "reset":
			snap, err := h.service.ResetGame(userID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "state", Payload: snap}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-tickerDone
	close(send)
	<-writerDone
}
