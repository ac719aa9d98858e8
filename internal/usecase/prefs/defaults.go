package prefs

// The column sets below mirror the dashboard tables one to one: same storage
// keys, same declaration order, same default visibility. The boty-2 table
// persists an array of visible keys; the others persist key->bool maps.

// BotsColumns is the aggregated per-bot results table.
var BotsColumns = ColumnSet{
	Table:      "bots",
	StorageKey: "botsVisibleColumns",
	Order: []string{
		"bot", "status", "owner", "mode",
		"averageRate", "positionsOnTime", "transactions", "missing",
		"noReversalMomentum", "lost", "won", "wonPerTransactions",
		"wonPerPositions", "edge", "balance",
		"averageEntry", "profitPerPosition", "profitPerDay", "roiPerDay",
		"profitPerMonth", "roiPerMonth",
		"botInstance", "dryRun", "crypto", "interval", "strategyName",
		"orderSize", "strategyMode", "buyOpposite", "exitPrice",
		"exitBeforeCloseSec", "momentumThreshold", "entryThreshold",
		"maxReversalEntryPrice", "momentumConfirmationSec",
		"momentumConfirmationTolerance", "momentumConfirmationMethod",
		"velocityMinTicks", "velocityMinIncrease", "maxSpread",
		"warmupDelaySec", "minTimeRemaining", "maxReentries", "stopLoss",
		"aggressiveExitUnderbid", "exitMaxRetries", "exitPriceDecrement",
		"config", "serverIp",
	},
	Defaults: map[string]bool{
		"bot": true, "status": true, "owner": true, "mode": true,
		"averageRate": true, "positionsOnTime": true, "transactions": true,
		"missing": false, "noReversalMomentum": false, "lost": true,
		"won": true, "wonPerTransactions": true, "wonPerPositions": false,
		"edge": true, "balance": true,
		"averageEntry": false, "profitPerPosition": true, "profitPerDay": true,
		"roiPerDay": true, "profitPerMonth": false, "roiPerMonth": false,
		"botInstance": true, "dryRun": false, "crypto": true,
		"interval": true, "strategyName": true, "orderSize": true,
		"strategyMode": false, "buyOpposite": false, "exitPrice": false,
		"exitBeforeCloseSec": false, "momentumThreshold": true,
		"entryThreshold": false, "maxReversalEntryPrice": false,
		"momentumConfirmationSec": false, "momentumConfirmationTolerance": false,
		"momentumConfirmationMethod": false, "velocityMinTicks": false,
		"velocityMinIncrease": false, "maxSpread": false,
		"warmupDelaySec": false, "minTimeRemaining": false,
		"maxReentries": false, "stopLoss": false,
		"aggressiveExitUnderbid": false, "exitMaxRetries": false,
		"exitPriceDecrement": false, "config": false, "serverIp": true,
	},
}

// MarketSessionsColumns is the standalone sessions table.
var MarketSessionsColumns = ColumnSet{
	Table:      "market-sessions",
	StorageKey: "marketSessionsVisibleColumns",
	Order: []string{
		"id", "marketId", "market", "seriesSlug", "bot", "sessionStart",
		"sessionEnd", "marketStartTime", "marketEndTime", "duration",
		"totalEntries", "totalExits", "totalSkips", "trades", "totalPnl",
		"initialYesPrice", "initialNoPrice", "initialSpread",
		"finalYesPrice", "finalNoPrice", "finalOutcome",
		"strategyConfig", "metadata",
	},
	Defaults: map[string]bool{
		"id": true, "marketId": false, "market": true, "seriesSlug": false,
		"bot": true, "sessionStart": true, "sessionEnd": false,
		"marketStartTime": false, "marketEndTime": false, "duration": true,
		"totalEntries": false, "totalExits": false, "totalSkips": false,
		"trades": true, "totalPnl": true, "initialYesPrice": true,
		"initialNoPrice": false, "initialSpread": false,
		"finalYesPrice": true, "finalNoPrice": false, "finalOutcome": true,
		"strategyConfig": false, "metadata": false,
	},
}

// AllViewTradesColumns is the trades half of the combined overview.
var AllViewTradesColumns = ColumnSet{
	Table:      "all-trades",
	StorageKey: "allViewTradesColumns",
	Order: []string{
		"id", "botInstance", "sessionId", "timestamp", "marketId",
		"marketSlug", "marketQuestion", "marketEndTime", "seriesSlug",
		"type", "outcome", "price", "size", "shares", "orderId", "pnl",
		"roi", "result", "metadata",
	},
	Defaults: map[string]bool{
		"id": true, "botInstance": true, "sessionId": true,
		"timestamp": true, "marketId": false, "marketSlug": false,
		"marketQuestion": true, "marketEndTime": false, "seriesSlug": false,
		"type": true, "outcome": true, "price": true, "size": true,
		"shares": true, "orderId": true, "pnl": true, "roi": true,
		"result": true, "metadata": true,
	},
}

// AllViewSessionsColumns is the sessions half of the combined overview.
var AllViewSessionsColumns = ColumnSet{
	Table:      "all-sessions",
	StorageKey: "allViewSessionsColumns",
	Order: []string{
		"id", "marketId", "market", "seriesSlug", "bot", "sessionStart",
		"sessionEnd", "duration", "marketStartTime", "marketEndTime",
		"totalEntries", "totalExits", "totalSkips", "trades", "totalPnl",
		"initialYesPrice", "initialNoPrice", "initialSpread",
		"finalYesPrice", "finalNoPrice", "finalOutcome",
		"strategyConfig", "metadata",
	},
	Defaults: map[string]bool{
		"id": true, "marketId": false, "market": true, "seriesSlug": false,
		"bot": true, "sessionStart": true, "sessionEnd": false,
		"duration": true, "marketStartTime": false, "marketEndTime": false,
		"totalEntries": false, "totalExits": false, "totalSkips": false,
		"trades": true, "totalPnl": true, "initialYesPrice": false,
		"initialNoPrice": false, "initialSpread": false,
		"finalYesPrice": false, "finalNoPrice": false, "finalOutcome": true,
		"strategyConfig": false, "metadata": false,
	},
}

// BotInstancesColumns is the bot management table. Stored as an array of
// visible keys rather than a map.
var BotInstancesColumns = ColumnSet{
	Table:       "bot-instances",
	StorageKey:  "boty2-visible-columns",
	ArrayFormat: true,
	Order: []string{
		"actions", "id", "instance_name", "owner_id", "desired_state",
		"actual_state", "server_id", "last_state_change", "created_at",
		"updated_at",
		"Nazwa", "DRY_RUN", "STRATEGY_MODE", "MARKET_INTERVAL",
		"BASE_SERIES_SLUG", "BOT_INSTANCE", "ORDER_SIZE",
		"STRATEGY_ENABLED", "BUY_OPPOSITE", "EXIT_PRICE",
		"EXIT_BEFORE_CLOSE_SEC", "MOMENTUM_THRESHOLD", "ENTRY_THRESHOLD",
		"MAX_REVERSAL_ENTRY_PRICE", "MOMENTUM_CONFIRMATION_SEC",
		"MOMENTUM_CONFIRMATION_TOLERANCE", "MOMENTUM_CONFIRMATION_METHOD",
		"VELOCITY_MIN_TICKS", "VELOCITY_MIN_INCREASE", "MAX_SPREAD",
		"WARMUP_DELAY_SEC", "MIN_TIME_REMAINING", "MAX_REENTRIES",
		"STOP_LOSS", "AGGRESSIVE_EXIT_UNDERBID", "EXIT_MAX_RETRIES",
		"EXIT_PRICE_DECREMENT", "SECRETS_PATH",
	},
	Defaults: botInstancesDefaults(),
}

func botInstancesDefaults() map[string]bool {
	visible := map[string]bool{
		"actions": true, "id": true, "instance_name": true,
		"desired_state": true, "actual_state": true, "Nazwa": true,
		"MARKET_INTERVAL": true, "ORDER_SIZE": true, "DRY_RUN": true,
	}
	all := []string{
		"actions", "id", "instance_name", "owner_id", "desired_state",
		"actual_state", "server_id", "last_state_change", "created_at",
		"updated_at",
		"Nazwa", "DRY_RUN", "STRATEGY_MODE", "MARKET_INTERVAL",
		"BASE_SERIES_SLUG", "BOT_INSTANCE", "ORDER_SIZE",
		"STRATEGY_ENABLED", "BUY_OPPOSITE", "EXIT_PRICE",
		"EXIT_BEFORE_CLOSE_SEC", "MOMENTUM_THRESHOLD", "ENTRY_THRESHOLD",
		"MAX_REVERSAL_ENTRY_PRICE", "MOMENTUM_CONFIRMATION_SEC",
		"MOMENTUM_CONFIRMATION_TOLERANCE", "MOMENTUM_CONFIRMATION_METHOD",
		"VELOCITY_MIN_TICKS", "VELOCITY_MIN_INCREASE", "MAX_SPREAD",
		"WARMUP_DELAY_SEC", "MIN_TIME_REMAINING", "MAX_REENTRIES",
		"STOP_LOSS", "AGGRESSIVE_EXIT_UNDERBID", "EXIT_MAX_RETRIES",
		"EXIT_PRICE_DECREMENT", "SECRETS_PATH",
	}
	for _, k := range all {
		if _, ok := visible[k]; !ok {
			visible[k] = false
		}
	}
	return visible
}

// Sets returns every declared column set keyed by table name.
func Sets() map[string]ColumnSet {
	return map[string]ColumnSet{
		BotsColumns.Table:           BotsColumns,
		MarketSessionsColumns.Table: MarketSessionsColumns,
		AllViewTradesColumns.Table:  AllViewTradesColumns,
		AllViewSessionsColumns.Table: AllViewSessionsColumns,
		BotInstancesColumns.Table:    BotInstancesColumns,
	}
}
