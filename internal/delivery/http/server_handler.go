package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
)

// ServerHandler serves GET /api/servers.
type ServerHandler struct {
	repo domain.ServerStatusRepository
	log  *logrus.Logger
}

func NewServerHandler(repo domain.ServerStatusRepository, log *logrus.Logger) *ServerHandler {
	return &ServerHandler{repo: repo, log: log}
}

func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	servers, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to fetch server status")
		writeError(w, http.StatusInternalServerError, "Failed to fetch server status")
		return
	}
	writeJSON(w, http.StatusOK, servers)
}
