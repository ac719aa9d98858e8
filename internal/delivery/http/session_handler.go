package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/usecase"
)

// SessionHandler serves the market session read paths and the combined
// overview.
type SessionHandler struct {
	sessions domain.MarketSessionRepository
	trades   domain.TradeRepository
	log      *logrus.Logger
}

func NewSessionHandler(sessions domain.MarketSessionRepository, trades domain.TradeRepository, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, trades: trades, log: log}
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := h.sessions.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch market sessions")
		writeError(w, http.StatusInternalServerError, "Failed to fetch market sessions")
		return
	}

	if q, ok := parseTableQuery(r); ok {
		writeJSON(w, http.StatusOK, usecase.SessionsTable().Apply(sessions, q))
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Stats handles GET /api/sessions/stats.
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := h.sessions.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch session stats")
		writeError(w, http.StatusInternalServerError, "Failed to fetch session stats")
		return
	}
	writeJSON(w, http.StatusOK, usecase.ComputeSessionStats(sessions))
}

// Overview handles GET /api/overview: every session grouped with its child
// trades, for the master-detail page.
func (h *SessionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := h.sessions.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch market sessions")
		writeError(w, http.StatusInternalServerError, "Failed to fetch market sessions")
		return
	}
	trades, err := h.trades.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch trades")
		writeError(w, http.StatusInternalServerError, "Failed to fetch trades")
		return
	}
	writeJSON(w, http.StatusOK, usecase.GroupSessions(sessions, trades))
}
