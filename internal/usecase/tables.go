package usecase

import (
	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/usecase/tableview"
)

// Concrete table declarations for the three dashboard datasets. The list
// endpoints apply these when a query is present; otherwise they return the
// full ordered collection and the page filters client-side with the same
// semantics.

func TradesTable() *tableview.Table[domain.Trade] {
	return tableview.NewTable(
		tableview.Column[domain.Trade]{Key: "id", Label: "ID", GetValue: func(t domain.Trade) any { return t.ID }, Searchable: true, Sortable: true},
		tableview.Column[domain.Trade]{Key: "botInstance", Label: "Bot", GetValue: func(t domain.Trade) any { return t.BotInstance }, Searchable: true, Sortable: true},
		tableview.Column[domain.Trade]{Key: "sessionId", Label: "Session", GetValue: func(t domain.Trade) any { return t.SessionID }, Searchable: true, Sortable: true},
		tableview.Column[domain.Trade]{Key: "timestamp", Label: "Timestamp", GetValue: func(t domain.Trade) any { return t.Timestamp }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "marketQuestion", Label: "Market", GetValue: func(t domain.Trade) any { return t.MarketQuestion }, Searchable: true, Sortable: true},
		tableview.Column[domain.Trade]{Key: "type", Label: "Type", GetValue: func(t domain.Trade) any { return string(t.Type) }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "outcome", Label: "Outcome", GetValue: func(t domain.Trade) any { return t.Outcome }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "price", Label: "Price", GetValue: func(t domain.Trade) any { return t.Price }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "size", Label: "Size", GetValue: func(t domain.Trade) any { return t.Size }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "shares", Label: "Shares", GetValue: func(t domain.Trade) any { return t.Shares }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "orderId", Label: "Order", GetValue: func(t domain.Trade) any { return t.OrderID }, Searchable: true, Sortable: true},
		tableview.Column[domain.Trade]{Key: "pnl", Label: "P&L", GetValue: func(t domain.Trade) any { return t.PnL }, Sortable: true},
		tableview.Column[domain.Trade]{Key: "result", Label: "Result", GetValue: func(t domain.Trade) any { return t.Result }, Sortable: true},
	)
}

func SessionsTable() *tableview.Table[domain.MarketSession] {
	return tableview.NewTable(
		tableview.Column[domain.MarketSession]{Key: "id", Label: "ID", GetValue: func(s domain.MarketSession) any { return s.ID }, Searchable: true, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "market", Label: "Market", GetValue: func(s domain.MarketSession) any { return s.MarketQuestion }, Searchable: true, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "bot", Label: "Bot", GetValue: func(s domain.MarketSession) any { return s.BotInstance }, Searchable: true, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "sessionStart", Label: "Start", GetValue: func(s domain.MarketSession) any { return s.SessionStart }, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "sessionEnd", Label: "End", GetValue: func(s domain.MarketSession) any { return s.SessionEnd }, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "totalPnl", Label: "P&L", GetValue: func(s domain.MarketSession) any { return s.TotalPnL }, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "initialYesPrice", Label: "Initial YES", GetValue: func(s domain.MarketSession) any { return s.InitialYesPrice }, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "finalYesPrice", Label: "Final YES", GetValue: func(s domain.MarketSession) any { return s.FinalYesPrice }, Sortable: true},
		tableview.Column[domain.MarketSession]{Key: "finalOutcome", Label: "Outcome", GetValue: func(s domain.MarketSession) any { return s.FinalOutcome }, Sortable: true},
	)
}

func BotsTable() *tableview.Table[domain.BotInstance] {
	return tableview.NewTable(
		tableview.Column[domain.BotInstance]{Key: "id", Label: "ID", GetValue: func(b domain.BotInstance) any { return b.ID }, Searchable: true, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "instance_name", Label: "Instance Name", GetValue: func(b domain.BotInstance) any { return b.InstanceName }, Searchable: true, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "owner_id", Label: "Owner ID", GetValue: func(b domain.BotInstance) any { return b.OwnerID }, Searchable: true, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "desired_state", Label: "Desired State", GetValue: func(b domain.BotInstance) any { return b.DesiredState }, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "actual_state", Label: "Actual State", GetValue: func(b domain.BotInstance) any { return b.ActualState }, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "server_id", Label: "Server ID", GetValue: func(b domain.BotInstance) any { return b.ServerID }, Searchable: true, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "Nazwa", Label: "Strategy Name", GetValue: func(b domain.BotInstance) any { return b.StrategyConfig.Nazwa }, Searchable: true, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "MARKET_INTERVAL", Label: "Interval", GetValue: func(b domain.BotInstance) any { return b.StrategyConfig.MarketInterval }, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "ORDER_SIZE", Label: "Order Size", GetValue: func(b domain.BotInstance) any { return b.StrategyConfig.OrderSize }, Sortable: true},
		tableview.Column[domain.BotInstance]{Key: "MOMENTUM_THRESHOLD", Label: "Momentum Threshold", GetValue: func(b domain.BotInstance) any { return b.StrategyConfig.MomentumThreshold }, Sortable: true},
	)
}
