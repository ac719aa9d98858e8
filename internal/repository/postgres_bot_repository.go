package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"botadmin-backend/internal/domain"
)

// PostgresBotRepository is full CRUD over bot_instances. strategy_config is
// stored as jsonb and round-tripped through the typed struct.
type PostgresBotRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBotRepository(pool *pgxpool.Pool) *PostgresBotRepository {
	return &PostgresBotRepository{pool: pool}
}

const botColumns = `id, instance_name, owner_id, desired_state, actual_state,
	last_state_change, strategy_config, server_id, created_at, updated_at`

func (r *PostgresBotRepository) ListAll(ctx context.Context) ([]domain.BotInstance, error) {
	rows, err := r.pool.Query(ctx, `
		select `+botColumns+`
		from bot_instances
		order by id asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bots := make([]domain.BotInstance, 0)
	for rows.Next() {
		b, scanErr := scanBot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bots = append(bots, *b)
	}
	return bots, rows.Err()
}

func (r *PostgresBotRepository) GetByID(ctx context.Context, id int64) (*domain.BotInstance, error) {
	row := r.pool.QueryRow(ctx, `
		select `+botColumns+`
		from bot_instances
		where id = $1
	`, id)

	b, err := scanBot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBotRepository) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.pool.QueryRow(ctx,
		`select coalesce(max(id), 0) + 1 from bot_instances`,
	).Scan(&next)
	return next, err
}

func (r *PostgresBotRepository) Create(ctx context.Context, bot *domain.BotInstance) (*domain.BotInstance, error) {
	if bot == nil {
		return nil, errors.New("nil bot")
	}
	cfg, err := json.Marshal(bot.StrategyConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal strategy config: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		insert into bot_instances(
			instance_name, owner_id, desired_state, actual_state,
			strategy_config, server_id, created_at, updated_at
		) values ($1, $2, $3, $4, $5, $6, now(), now())
		returning `+botColumns+`
	`,
		bot.InstanceName,
		bot.OwnerID,
		bot.DesiredState,
		bot.ActualState,
		cfg,
		nullableText(bot.ServerID),
	)
	return scanBot(row)
}

func (r *PostgresBotRepository) Update(ctx context.Context, bot *domain.BotInstance) (*domain.BotInstance, error) {
	if bot == nil {
		return nil, errors.New("nil bot")
	}
	cfg, err := json.Marshal(bot.StrategyConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal strategy config: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		update bot_instances set
			desired_state = $2,
			strategy_config = $3,
			server_id = $4,
			updated_at = now()
		where id = $1
		returning `+botColumns+`
	`,
		bot.ID,
		bot.DesiredState,
		cfg,
		nullableText(bot.ServerID),
	)

	updated, err := scanBot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PostgresBotRepository) SetDesiredState(ctx context.Context, id int64, state string) error {
	tag, err := r.pool.Exec(ctx, `
		update bot_instances set desired_state = $2, updated_at = now()
		where id = $1
	`, id, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresBotRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `delete from bot_instances where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBot(s scanner) (*domain.BotInstance, error) {
	var b domain.BotInstance
	var lastStateChange pgtype.Timestamptz
	var serverID pgtype.Text
	var cfg []byte

	if err := s.Scan(
		&b.ID,
		&b.InstanceName,
		&b.OwnerID,
		&b.DesiredState,
		&b.ActualState,
		&lastStateChange,
		&cfg,
		&serverID,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.LastStateChange = timePtr(lastStateChange)
	b.ServerID = textPtr(serverID)
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &b.StrategyConfig); err != nil {
			return nil, fmt.Errorf("unmarshal strategy config: %w", err)
		}
	}
	return &b, nil
}

var _ domain.BotInstanceRepository = (*PostgresBotRepository)(nil)
