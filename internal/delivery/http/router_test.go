package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/infrastructure/auth"
	"botadmin-backend/internal/repository"
	"botadmin-backend/internal/usecase"
)

// stubVerifier accepts exactly one token and rejects everything else.
type stubVerifier struct {
	token string
	user  auth.User
}

func (v *stubVerifier) Verify(ctx context.Context, idToken string) (*auth.User, error) {
	if idToken != v.token {
		return nil, auth.ErrInvalidToken
	}
	u := v.user
	return &u, nil
}

func (v *stubVerifier) Enabled() bool { return true }

type fixture struct {
	server  *httptest.Server
	bots    *repository.MemoryBotRepository
	servers *repository.MemoryServerRepository
}

func newFixture(t *testing.T, trades []domain.Trade, sessions []domain.MarketSession, bots []domain.BotInstance, servers []domain.ServerStatus) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	botRepo := repository.NewMemoryBotRepository(bots...)
	serverRepo := repository.NewMemoryServerRepository(servers...)
	svc := usecase.NewBotService(botRepo, serverRepo, log)

	handler := NewRouter(Deps{
		Trades:   repository.NewMemoryTradeRepository(trades...),
		Sessions: repository.NewMemorySessionRepository(sessions...),
		Bots:     botRepo,
		Servers:  serverRepo,
		BotSvc:   svc,
		Verifier: &stubVerifier{token: "good-token", user: auth.User{ID: "user-1", Email: "op@example.com"}},
		Log:      log,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &fixture{server: srv, bots: botRepo, servers: serverRepo}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer good-token")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, data
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func sampleTrades() []domain.Trade {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Trade{
		{ID: 1, BotInstance: "u1--btc-5m-lax-d20-25--1", Timestamp: base, Type: domain.TradeTypeBuy, Price: floatPtr(0.52), PnL: floatPtr(1.5), Result: strPtr("win")},
		{ID: 2, BotInstance: "u1--btc-5m-lax-d20-25--1", Timestamp: base.Add(time.Minute), Type: domain.TradeTypeSell, Price: floatPtr(0.61), PnL: floatPtr(-0.5), Result: strPtr("loss")},
		{ID: 3, BotInstance: "u1--eth-5m-lax-d20-25--2", Timestamp: base.Add(2 * time.Minute), Type: domain.TradeTypeSkip},
	}
}

func sampleBot(id int64, serverID *string, desired string) domain.BotInstance {
	return domain.BotInstance{
		ID:           id,
		InstanceName: "user-1--btc-5m-lax-d20-25--1",
		OwnerID:      "user-1",
		DesiredState: desired,
		ActualState:  domain.StateStopped,
		ServerID:     serverID,
		StrategyConfig: domain.StrategyConfig{
			BaseSeriesSlug:          "btc-updown-5m",
			MarketInterval:          "5m",
			BotInstance:             "user-1--btc-5m-lax-d20-25--1",
			Nazwa:                   "lax",
			OrderSize:               10,
			MomentumThreshold:       0.25,
			MomentumConfirmationSec: 20,
		},
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/trades", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHealthzSkipsAuth(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDashboardServesHTML(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, err := http.Get(f.server.URL + "/")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
}

func TestListTrades(t *testing.T) {
	f := newFixture(t, sampleTrades(), nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/trades", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var trades []domain.Trade
	require.NoError(t, json.Unmarshal(body, &trades))
	require.Len(t, trades, 3)
	// newest first
	assert.Equal(t, int64(3), trades[0].ID)
}

func TestListTradesWithTableQuery(t *testing.T) {
	f := newFixture(t, sampleTrades(), nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/trades?search=eth&page=1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Rows  []domain.Trade `json:"rows"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, int64(3), out.Rows[0].ID)
}

func TestTradeStats(t *testing.T) {
	f := newFixture(t, sampleTrades(), nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/trades/stats", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stats usecase.TradeStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.TotalBuys)
	assert.Equal(t, 1, stats.TotalSells)
	assert.Equal(t, 1, stats.TotalSkips)
	// one win out of three trades, skip included in the denominator
	assert.Equal(t, 33, stats.WinRate)
}

func TestCreateBot(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	payload := `{"crypto":"Bitcoin","interval":"5 minut","strategy":"Lax","nazwa":"Lax",` +
		`"desiredState":"stopped","dryRun":"true","strategyEnabled":"true",` +
		`"strategyMode":"momentum","buyOpposite":"false","orderSize":"10",` +
		`"momentumThreshold":"0.25","momentumSec":"20","confirmationMethod":"sustained"}`

	res, body := f.do(t, http.MethodPost, "/api/bots", payload)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Success bool               `json:"success"`
		Data    domain.BotInstance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	// owner taken from the authenticated user
	assert.Equal(t, "user-1", out.Data.OwnerID)
	assert.Equal(t, "user-1--btc-5m-lax-d20-25--1", out.Data.InstanceName)
	assert.Equal(t, "/srv/polymarket/users/user-1/.secrets", out.Data.StrategyConfig.SecretsPath)
}

func TestCreateBotMissingInputs(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, body := f.do(t, http.MethodPost, "/api/bots", `{"crypto":"Bitcoin"}`)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Contains(t, string(body), "brakujące pola")
}

func TestToggleRequiresServer(t *testing.T) {
	f := newFixture(t, nil, nil, []domain.BotInstance{sampleBot(1, nil, domain.StateStopped)}, nil)

	res, body := f.do(t, http.MethodPost, "/api/bots/toggle?id=1", "")
	require.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, string(body), "Bot musi mieć przypisany server_id")
}

func TestToggleRejectsFullServer(t *testing.T) {
	bot := sampleBot(1, strPtr("srv-1"), domain.StateStopped)
	servers := []domain.ServerStatus{{ID: "srv-1", DesiredRunning: 10, AvailableSlots: 10}}
	f := newFixture(t, nil, nil, []domain.BotInstance{bot}, servers)

	res, body := f.do(t, http.MethodPost, "/api/bots/toggle?id=1", "")
	require.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, string(body), "Serwer srv-1 jest pełny (10/10)")
}

func TestToggleStartsAndStops(t *testing.T) {
	bot := sampleBot(1, strPtr("srv-1"), domain.StateStopped)
	servers := []domain.ServerStatus{{ID: "srv-1", DesiredRunning: 2, AvailableSlots: 10}}
	f := newFixture(t, nil, nil, []domain.BotInstance{bot}, servers)

	res, body := f.do(t, http.MethodPost, "/api/bots/toggle?id=1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Data domain.BotInstance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, domain.StateRunning, out.Data.DesiredState)

	res, body = f.do(t, http.MethodPost, "/api/bots/toggle?id=1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, domain.StateStopped, out.Data.DesiredState)
}

func TestToggleUnknownBot(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, _ := f.do(t, http.MethodPost, "/api/bots/toggle?id=99", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteBot(t *testing.T) {
	f := newFixture(t, nil, nil, []domain.BotInstance{sampleBot(1, nil, domain.StateStopped)}, nil)

	res, _ := f.do(t, http.MethodDelete, "/api/bots?id=1", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = f.do(t, http.MethodDelete, "/api/bots?id=1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNextID(t *testing.T) {
	f := newFixture(t, nil, nil, []domain.BotInstance{sampleBot(7, nil, domain.StateStopped)}, nil)

	res, body := f.do(t, http.MethodGet, "/api/bots/next-id", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out map[string]int64
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, int64(8), out["nextId"])
}

func TestNamePreview(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/bots/name-preview?crypto=Bitcoin&interval=5+minut&strategy=Lax&momentumSec=20&momentumThreshold=0.25", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "user-1--btc-5m-lax-d20-25--1", out["name"])
}

func TestNamePreviewMissingInputs(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/bots/name-preview?crypto=Bitcoin", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []string{"Interwał", "Strategia"}, out.Missing)
}

func TestColumnsEndpoint(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/columns/bot-instances", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out columnsResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "boty2-visible-columns", out.StorageKey)
	assert.True(t, out.ArrayFormat)
	assert.True(t, out.Defaults["instance_name"])

	res, _ = f.do(t, http.MethodGet, "/api/columns/nope", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMe(t *testing.T) {
	f := newFixture(t, nil, nil, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var user auth.User
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "op@example.com", user.Email)
}

func TestOverviewGroupsTrades(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessionID := int64(5)
	sessions := []domain.MarketSession{{ID: sessionID, BotInstance: "u1--btc-5m-lax-d20-25--1", SessionStart: start}}
	trades := []domain.Trade{
		{ID: 1, BotInstance: "u1--btc-5m-lax-d20-25--1", SessionID: &sessionID, Timestamp: start, Type: domain.TradeTypeBuy},
		{ID: 2, BotInstance: "u1--btc-5m-lax-d20-25--1", Timestamp: start, Type: domain.TradeTypeBuy},
	}
	f := newFixture(t, trades, sessions, nil, nil)

	res, body := f.do(t, http.MethodGet, "/api/overview", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out []usecase.SessionWithTrades
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)
	// the orphan trade without a session id is not attached anywhere
	require.Len(t, out[0].Trades, 1)
	assert.Equal(t, int64(1), out[0].Trades[0].ID)
}
