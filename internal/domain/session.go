package domain

import (
	"context"
	"encoding/json"
	"time"
)

// MarketSession is one row of the market_sessions table: a single bot's
// lifecycle on a single market window. Read-only here.
type MarketSession struct {
	ID              int64           `json:"id"`
	BotInstance     string          `json:"bot_instance"`
	MarketID        *string         `json:"market_id"`
	MarketSlug      *string         `json:"market_slug"`
	MarketQuestion  *string         `json:"market_question"`
	SeriesSlug      *string         `json:"series_slug"`
	SessionStart    time.Time       `json:"session_start"`
	SessionEnd      *time.Time      `json:"session_end"`
	MarketStartTime *time.Time      `json:"market_start_time"`
	MarketEndTime   *time.Time      `json:"market_end_time"`
	TotalEntries    int             `json:"total_entries"`
	TotalExits      int             `json:"total_exits"`
	TotalSkips      int             `json:"total_skips"`
	TotalPnL        *float64        `json:"total_pnl"`
	InitialYesPrice *float64        `json:"initial_yes_price"`
	InitialNoPrice  *float64        `json:"initial_no_price"`
	InitialSpread   *float64        `json:"initial_spread"`
	FinalYesPrice   *float64        `json:"final_yes_price"`
	FinalNoPrice    *float64        `json:"final_no_price"`
	FinalOutcome    *string         `json:"final_outcome"`
	StrategyConfig  json.RawMessage `json:"strategy_config"`
	Metadata        json.RawMessage `json:"metadata"`
}

// Duration returns the session length, using now for still-open sessions.
func (s MarketSession) Duration(now time.Time) time.Duration {
	end := now
	if s.SessionEnd != nil {
		end = *s.SessionEnd
	}
	return end.Sub(s.SessionStart)
}

// MarketSessionRepository reads the market_sessions table.
type MarketSessionRepository interface {
	// ListAll returns every session ordered by session_start descending.
	ListAll(ctx context.Context) ([]MarketSession, error)
}
