package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"botadmin-backend/internal/domain"
)

// PostgresSessionRepository reads the market_sessions table.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

func (r *PostgresSessionRepository) ListAll(ctx context.Context) ([]domain.MarketSession, error) {
	rows, err := r.pool.Query(ctx, `
		select id, bot_instance, market_id, market_slug, market_question, series_slug,
			session_start, session_end, market_start_time, market_end_time,
			total_entries, total_exits, total_skips, total_pnl,
			initial_yes_price, initial_no_price, initial_spread,
			final_yes_price, final_no_price, final_outcome,
			strategy_config, metadata
		from market_sessions
		order by session_start desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.MarketSession, 0)
	for rows.Next() {
		s, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func scanSession(sc scanner) (*domain.MarketSession, error) {
	var s domain.MarketSession
	var marketID, marketSlug, marketQuestion, seriesSlug, finalOutcome pgtype.Text
	var sessionEnd, marketStartTime, marketEndTime pgtype.Timestamptz
	var totalPnL, initialYes, initialNo, initialSpread, finalYes, finalNo pgtype.Float8

	if err := sc.Scan(
		&s.ID,
		&s.BotInstance,
		&marketID,
		&marketSlug,
		&marketQuestion,
		&seriesSlug,
		&s.SessionStart,
		&sessionEnd,
		&marketStartTime,
		&marketEndTime,
		&s.TotalEntries,
		&s.TotalExits,
		&s.TotalSkips,
		&totalPnL,
		&initialYes,
		&initialNo,
		&initialSpread,
		&finalYes,
		&finalNo,
		&finalOutcome,
		&s.StrategyConfig,
		&s.Metadata,
	); err != nil {
		return nil, err
	}

	s.MarketID = textPtr(marketID)
	s.MarketSlug = textPtr(marketSlug)
	s.MarketQuestion = textPtr(marketQuestion)
	s.SeriesSlug = textPtr(seriesSlug)
	s.SessionEnd = timePtr(sessionEnd)
	s.MarketStartTime = timePtr(marketStartTime)
	s.MarketEndTime = timePtr(marketEndTime)
	s.TotalPnL = floatPtr(totalPnL)
	s.InitialYesPrice = floatPtr(initialYes)
	s.InitialNoPrice = floatPtr(initialNo)
	s.InitialSpread = floatPtr(initialSpread)
	s.FinalYesPrice = floatPtr(finalYes)
	s.FinalNoPrice = floatPtr(finalNo)
	s.FinalOutcome = textPtr(finalOutcome)
	return &s, nil
}

var _ domain.MarketSessionRepository = (*PostgresSessionRepository)(nil)
