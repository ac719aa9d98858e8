package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/infrastructure/auth"
	"botadmin-backend/internal/usecase"
)

// Deps are the wired collaborators the router needs.
type Deps struct {
	Trades   domain.TradeRepository
	Sessions domain.MarketSessionRepository
	Bots     domain.BotInstanceRepository
	Servers  domain.ServerStatusRepository
	BotSvc   *usecase.BotService
	Verifier auth.TokenVerifier
	Log      *logrus.Logger
}

// NewRouter builds the full HTTP surface: the embedded dashboard at /,
// liveness at /healthz, and the JSON API under /api behind auth.
func NewRouter(d Deps) http.Handler {
	trades := NewTradeHandler(d.Trades, d.Log)
	sessions := NewSessionHandler(d.Sessions, d.Trades, d.Log)
	bots := NewBotHandler(d.Bots, d.BotSvc, d.Log)
	servers := NewServerHandler(d.Servers, d.Log)
	columns := NewColumnsHandler()

	api := http.NewServeMux()
	api.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, UserFrom(r.Context()))
	})
	api.HandleFunc("/api/trades", trades.List)
	api.HandleFunc("/api/trades/stats", trades.Stats)
	api.HandleFunc("/api/sessions", sessions.List)
	api.HandleFunc("/api/sessions/stats", sessions.Stats)
	api.HandleFunc("/api/overview", sessions.Overview)
	api.HandleFunc("/api/servers", servers.List)
	api.HandleFunc("/api/bots", bots.Bots)
	api.HandleFunc("/api/bots/toggle", bots.Toggle)
	api.HandleFunc("/api/bots/next-id", bots.NextID)
	api.HandleFunc("/api/bots/name-preview", bots.NamePreview)
	api.HandleFunc("/api/columns/", columns.Get)

	mux := http.NewServeMux()
	mux.Handle("/api/", Authenticate(d.Verifier)(api))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/", ServeDashboard)

	return RequestLogger(d.Log)(mux)
}
