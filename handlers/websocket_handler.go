package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/services"
)

type WebSocketHandler struct {
	responder
	broker         *brackets.Broker
	bracketService services.BracketService
	upgrader       websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" or an
// empty list allows any origin.
func NewWebSocketHandler(broker *brackets.Broker, bs services.BracketService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &WebSocketHandler{
		responder:      responder{logger: logger},
		broker:         broker,
		bracketService: bs,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// ServeWs godoc
// @Summary Subscribe to live bracket snapshots
// @Tags brackets
// @Description Upgrades to a websocket. The current bracket is sent first, then a BRACKET_UPDATED message after every change.
// @Param tournamentID path string true "Tournament ID"
// @Success 101 "Switching protocols"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /ws/tournaments/{tournamentID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if _, err := h.bracketService.GetTournament(r.Context(), tournamentID); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return
	}

	client := brackets.NewClient(h.broker, conn, tournamentID, h.logger)
	client.Subscribe()

	current, err := h.bracketService.GetBracket(r.Context(), tournamentID)
	if err != nil && !errors.Is(err, services.ErrBracketNotFound) {
		h.logger.ErrorContext(r.Context(), "failed to load bracket for websocket client",
			slog.String("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		client.Abort()
		return
	}

	client.Start(current)
	h.logger.DebugContext(r.Context(), "websocket client subscribed", slog.String("tournament_id", tournamentID))
}
