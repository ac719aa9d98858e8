package domain

import (
	"context"
	"encoding/json"
	"time"
)

// TradeType is the action recorded for a trade row.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
	TradeTypeSkip TradeType = "SKIP"
)

// Trade is one row of the trades table. The table is written by the bots
// themselves; this service only reads it.
type Trade struct {
	ID             int64           `json:"id"`
	BotInstance    string          `json:"bot_instance"`
	SessionID      *int64          `json:"session_id"`
	Timestamp      time.Time       `json:"timestamp"`
	MarketID       *string         `json:"market_id"`
	MarketSlug     *string         `json:"market_slug"`
	MarketQuestion *string         `json:"market_question"`
	MarketEndTime  *time.Time      `json:"market_end_time"`
	SeriesSlug     *string         `json:"series_slug"`
	Type           TradeType       `json:"type"`
	Outcome        *string         `json:"outcome"`
	Price          *float64        `json:"price"`
	Size           *float64        `json:"size"`
	Shares         *float64        `json:"shares"`
	OrderID        *string         `json:"order_id"`
	PnL            *float64        `json:"pnl"`
	Result         *string         `json:"result"`
	Metadata       json.RawMessage `json:"metadata"`
}

// SkipReasonDetails carries the threshold/actual pair attached to a skip.
// Which "actual" field is present depends on the reason type.
type SkipReasonDetails struct {
	Threshold    *float64 `json:"threshold"`
	ActualPrice  *float64 `json:"actual_price"`
	ActualSpread *float64 `json:"actual_spread"`
}

// SkipReason is one entry of metadata.skip_reasons on SKIP trades.
type SkipReason struct {
	Type    string             `json:"type"`
	Details *SkipReasonDetails `json:"details"`
}

// TradeMetadata is the parsed shape of the trades.metadata column.
type TradeMetadata struct {
	SkipReasons []SkipReason `json:"skip_reasons"`
}

// TradeRepository reads the trades table.
type TradeRepository interface {
	// ListAll returns every trade ordered by timestamp descending.
	ListAll(ctx context.Context) ([]Trade, error)
}
