package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"botadmin-backend/internal/domain"
)

// PostgresTradeRepository reads the trades table the bots write into.
type PostgresTradeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTradeRepository(pool *pgxpool.Pool) *PostgresTradeRepository {
	return &PostgresTradeRepository{pool: pool}
}

func (r *PostgresTradeRepository) ListAll(ctx context.Context) ([]domain.Trade, error) {
	rows, err := r.pool.Query(ctx, `
		select id, bot_instance, session_id, timestamp,
			market_id, market_slug, market_question, market_end_time, series_slug,
			type, outcome, price, size, shares, order_id, pnl, result, metadata
		from trades
		order by timestamp desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		t, scanErr := scanTrade(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

func scanTrade(s scanner) (*domain.Trade, error) {
	var t domain.Trade
	var sessionID pgtype.Int8
	var marketID, marketSlug, marketQuestion, seriesSlug pgtype.Text
	var marketEndTime pgtype.Timestamptz
	var outcome, orderID, result pgtype.Text
	var price, size, shares, pnl pgtype.Float8

	if err := s.Scan(
		&t.ID,
		&t.BotInstance,
		&sessionID,
		&t.Timestamp,
		&marketID,
		&marketSlug,
		&marketQuestion,
		&marketEndTime,
		&seriesSlug,
		&t.Type,
		&outcome,
		&price,
		&size,
		&shares,
		&orderID,
		&pnl,
		&result,
		&t.Metadata,
	); err != nil {
		return nil, err
	}

	t.SessionID = int64Ptr(sessionID)
	t.MarketID = textPtr(marketID)
	t.MarketSlug = textPtr(marketSlug)
	t.MarketQuestion = textPtr(marketQuestion)
	t.MarketEndTime = timePtr(marketEndTime)
	t.SeriesSlug = textPtr(seriesSlug)
	t.Outcome = textPtr(outcome)
	t.Price = floatPtr(price)
	t.Size = floatPtr(size)
	t.Shares = floatPtr(shares)
	t.OrderID = textPtr(orderID)
	t.PnL = floatPtr(pnl)
	t.Result = textPtr(result)
	return &t, nil
}

var _ domain.TradeRepository = (*PostgresTradeRepository)(nil)
