package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"botadmin-backend/internal/domain"
)

func f(v float64) *float64 { return &v }
func i64(v int64) *int64   { return &v }

func TestComputeTradeStats(t *testing.T) {
	trades := []domain.Trade{
		{Type: domain.TradeTypeBuy, Price: f(0.5), PnL: f(1.2)},
		{Type: domain.TradeTypeSell, Price: f(0.7), PnL: f(-0.4)},
		{Type: domain.TradeTypeSkip},
		{Type: domain.TradeTypeBuy, Price: f(0.3), PnL: f(0.1)},
	}

	stats := ComputeTradeStats(trades)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.TotalBuys)
	assert.Equal(t, 1, stats.TotalSells)
	assert.Equal(t, 1, stats.TotalSkips)
	assert.InDelta(t, 0.9, stats.TotalPnL, 1e-9)
	assert.InDelta(t, 0.5, stats.AvgPrice, 1e-9)
	// 2 profitable of 4 total
	assert.Equal(t, 50, stats.WinRate)
}

func TestComputeTradeStatsEmpty(t *testing.T) {
	stats := ComputeTradeStats(nil)
	assert.Equal(t, TradeStats{}, stats)
}

func TestComputeTradeStatsDecimalSum(t *testing.T) {
	// 0.1 added ten times is exactly 1 through decimal, not 0.9999...
	var trades []domain.Trade
	for i := 0; i < 10; i++ {
		trades = append(trades, domain.Trade{Type: domain.TradeTypeBuy, PnL: f(0.1)})
	}
	assert.Equal(t, 1.0, ComputeTradeStats(trades).TotalPnL)
}

func TestComputeSessionStats(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end1 := start.Add(5 * time.Minute)
	end2 := start.Add(15 * time.Minute)

	sessions := []domain.MarketSession{
		{SessionStart: start, SessionEnd: &end1, TotalEntries: 2, TotalExits: 2, TotalSkips: 1, TotalPnL: f(3.5)},
		{SessionStart: start, SessionEnd: &end2, TotalEntries: 1, TotalExits: 1, TotalPnL: f(-1.5)},
		{SessionStart: start, TotalSkips: 4}, // still open, excluded from avg duration
	}

	stats := ComputeSessionStats(sessions)
	assert.Equal(t, 3, stats.Total)
	assert.InDelta(t, 2.0, stats.TotalPnL, 1e-9)
	assert.Equal(t, 600, stats.AvgDuration)
	assert.Equal(t, 11, stats.TotalTrades)
}

func TestGroupSessions(t *testing.T) {
	sessions := []domain.MarketSession{{ID: 1}, {ID: 2}, {ID: 3}}
	trades := []domain.Trade{
		{ID: 10, SessionID: i64(1)},
		{ID: 11, SessionID: i64(2)},
		{ID: 12, SessionID: i64(1)},
		{ID: 13}, // orphan
	}

	grouped := GroupSessions(sessions, trades)
	assert.Len(t, grouped, 3)
	assert.Len(t, grouped[0].Trades, 2)
	assert.Len(t, grouped[1].Trades, 1)
	assert.Empty(t, grouped[2].Trades)
	assert.Equal(t, int64(10), grouped[0].Trades[0].ID)
	assert.Equal(t, int64(12), grouped[0].Trades[1].ID)
}
