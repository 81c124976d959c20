package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	responder
	db Pinger
}

// NewHealthHandler reports the database as well when db is non-nil.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{responder: responder{logger: logger}, db: db}
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "ok"
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
			h.errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
