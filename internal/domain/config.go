package domain

// Momentum confirmation methods understood by the bot runtime.
const (
	ConfirmationSustained = "sustained"
	ConfirmationVelocity  = "velocity"
)

// Strategy modes.
const (
	StrategyModeMomentum = "momentum"
	StrategyModeReversal = "reversal"
)

// StrategyConfig is the per-bot configuration blob stored in
// bot_instances.strategy_config. The JSON keys are the exact environment-style
// names the bot runtime consumes, so the column round-trips untouched.
// Optional knobs are pointers and serialize as explicit nulls when unset.
type StrategyConfig struct {
	BaseSeriesSlug string `json:"BASE_SERIES_SLUG"`
	MarketInterval string `json:"MARKET_INTERVAL"`
	BotInstance    string `json:"BOT_INSTANCE"`
	// Nazwa is the operator-facing display name. The key is Polish and the
	// runtime expects it verbatim.
	Nazwa           string `json:"Nazwa"`
	StrategyEnabled bool   `json:"STRATEGY_ENABLED"`
	DryRun          bool   `json:"DRY_RUN"`
	StrategyMode    string `json:"STRATEGY_MODE"`
	BuyOpposite     bool   `json:"BUY_OPPOSITE"`
	OrderSize       int    `json:"ORDER_SIZE"`

	MomentumThreshold             float64  `json:"MOMENTUM_THRESHOLD"`
	MomentumConfirmationSec       int      `json:"MOMENTUM_CONFIRMATION_SEC"`
	MomentumConfirmationMethod    string   `json:"MOMENTUM_CONFIRMATION_METHOD"`
	MomentumConfirmationTolerance *float64 `json:"MOMENTUM_CONFIRMATION_TOLERANCE"`
	EntryThreshold                *float64 `json:"ENTRY_THRESHOLD"`
	MaxReversalEntryPrice         *float64 `json:"MAX_REVERSAL_ENTRY_PRICE"`
	VelocityMinTicks              *int     `json:"VELOCITY_MIN_TICKS"`
	VelocityMinIncrease           *float64 `json:"VELOCITY_MIN_INCREASE"`
	MaxSpread                     *float64 `json:"MAX_SPREAD"`
	WarmupDelaySec                *int     `json:"WARMUP_DELAY_SEC"`
	MinTimeRemaining              *int     `json:"MIN_TIME_REMAINING"`
	MaxReentries                  *int     `json:"MAX_REENTRIES"`

	ExitPrice              *float64 `json:"EXIT_PRICE"`
	ExitBeforeCloseSec     *int     `json:"EXIT_BEFORE_CLOSE_SEC"`
	StopLoss               *float64 `json:"STOP_LOSS"`
	AggressiveExitUnderbid *float64 `json:"AGGRESSIVE_EXIT_UNDERBID"`
	ExitMaxRetries         *int     `json:"EXIT_MAX_RETRIES"`
	ExitPriceDecrement     *float64 `json:"EXIT_PRICE_DECREMENT"`

	SecretsPath string `json:"SECRETS_PATH"`
}
