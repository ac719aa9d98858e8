package usecase

import (
	"math"

	"github.com/shopspring/decimal"

	"botadmin-backend/internal/domain"
)

// TradeStats are the headline aggregates above the trades table.
type TradeStats struct {
	Total      int     `json:"total"`
	TotalBuys  int     `json:"totalBuys"`
	TotalSells int     `json:"totalSells"`
	TotalSkips int     `json:"totalSkips"`
	TotalPnL   float64 `json:"totalPnL"`
	AvgPrice   float64 `json:"avgPrice"`
	// WinRate is the share of trades with positive P&L, rounded to whole
	// percent. Skips count against it, matching the dashboard's headline.
	WinRate int `json:"winRate"`
}

// SessionStats are the headline aggregates above the sessions table.
type SessionStats struct {
	Total       int     `json:"total"`
	TotalPnL    float64 `json:"totalPnL"`
	AvgDuration int     `json:"avgDuration"`
	TotalTrades int     `json:"totalTrades"`
}

// ComputeTradeStats aggregates over the full trade set. Money sums run
// through decimal so a long history does not drift.
func ComputeTradeStats(trades []domain.Trade) TradeStats {
	stats := TradeStats{Total: len(trades)}

	totalPnL := decimal.Zero
	priceSum := decimal.Zero
	priced := 0
	profitable := 0

	for _, t := range trades {
		switch t.Type {
		case domain.TradeTypeBuy:
			stats.TotalBuys++
		case domain.TradeTypeSell:
			stats.TotalSells++
		case domain.TradeTypeSkip:
			stats.TotalSkips++
		}
		if t.PnL != nil {
			totalPnL = totalPnL.Add(decimal.NewFromFloat(*t.PnL))
			if *t.PnL > 0 {
				profitable++
			}
		}
		if t.Price != nil {
			priceSum = priceSum.Add(decimal.NewFromFloat(*t.Price))
			priced++
		}
	}

	stats.TotalPnL, _ = totalPnL.Float64()
	if priced > 0 {
		avg, _ := priceSum.Div(decimal.NewFromInt(int64(priced))).Float64()
		stats.AvgPrice = avg
	}
	if len(trades) > 0 {
		stats.WinRate = int(math.Round(float64(profitable) / float64(len(trades)) * 100))
	}
	return stats
}

// ComputeSessionStats aggregates over the full session set. Average duration
// is in whole seconds over ended sessions only.
func ComputeSessionStats(sessions []domain.MarketSession) SessionStats {
	stats := SessionStats{Total: len(sessions)}

	totalPnL := decimal.Zero
	var durationSum float64
	ended := 0

	for _, s := range sessions {
		if s.TotalPnL != nil {
			totalPnL = totalPnL.Add(decimal.NewFromFloat(*s.TotalPnL))
		}
		stats.TotalTrades += s.TotalEntries + s.TotalExits + s.TotalSkips
		if s.SessionEnd != nil {
			durationSum += s.SessionEnd.Sub(s.SessionStart).Seconds()
			ended++
		}
	}

	stats.TotalPnL, _ = totalPnL.Float64()
	if ended > 0 {
		stats.AvgDuration = int(math.Round(durationSum / float64(ended)))
	}
	return stats
}

// SessionWithTrades pairs a session with its child trades for the combined
// overview page.
type SessionWithTrades struct {
	Session domain.MarketSession `json:"session"`
	Trades  []domain.Trade       `json:"trades"`
}

// GroupSessions attaches each trade to its parent session by session_id.
// Trades without a session are dropped; session order is preserved.
func GroupSessions(sessions []domain.MarketSession, trades []domain.Trade) []SessionWithTrades {
	bySession := make(map[int64][]domain.Trade)
	for _, t := range trades {
		if t.SessionID == nil {
			continue
		}
		bySession[*t.SessionID] = append(bySession[*t.SessionID], t)
	}

	grouped := make([]SessionWithTrades, 0, len(sessions))
	for _, s := range sessions {
		grouped = append(grouped, SessionWithTrades{
			Session: s,
			Trades:  bySession[s.ID],
		})
	}
	return grouped
}
