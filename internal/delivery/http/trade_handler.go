package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/usecase"
)

// TradeHandler serves the trades read paths.
type TradeHandler struct {
	repo domain.TradeRepository
	log  *logrus.Logger
}

func NewTradeHandler(repo domain.TradeRepository, log *logrus.Logger) *TradeHandler {
	return &TradeHandler{repo: repo, log: log}
}

// List handles GET /api/trades. With table parameters present the server
// applies the same filter/sort/paginate semantics the page uses.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trades, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch trades")
		writeError(w, http.StatusInternalServerError, "Failed to fetch trades")
		return
	}

	if q, ok := parseTableQuery(r); ok {
		writeJSON(w, http.StatusOK, usecase.TradesTable().Apply(trades, q))
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// Stats handles GET /api/trades/stats.
func (h *TradeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trades, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch trade stats")
		writeError(w, http.StatusInternalServerError, "Failed to fetch trade stats")
		return
	}
	writeJSON(w, http.StatusOK, usecase.ComputeTradeStats(trades))
}
