package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the tables and the server_status view this service reads.
// The bots and supervisors own the schema in production; this idempotent
// bootstrap only makes a fresh database usable without an external tool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists trades (
			id bigserial primary key,
			bot_instance text not null,
			session_id bigint null,
			timestamp timestamptz not null default now(),
			market_id text null,
			market_slug text null,
			market_question text null,
			market_end_time timestamptz null,
			series_slug text null,
			type text not null,
			outcome text null,
			price double precision null,
			size double precision null,
			shares double precision null,
			order_id text null,
			pnl double precision null,
			result text null,
			metadata jsonb null
		);`,
		`create index if not exists trades_timestamp_idx on trades(timestamp desc);`,
		`create index if not exists trades_session_id_idx on trades(session_id);`,
		`create table if not exists market_sessions (
			id bigserial primary key,
			bot_instance text not null,
			market_id text null,
			market_slug text null,
			market_question text null,
			series_slug text null,
			session_start timestamptz not null default now(),
			session_end timestamptz null,
			market_start_time timestamptz null,
			market_end_time timestamptz null,
			total_entries int not null default 0,
			total_exits int not null default 0,
			total_skips int not null default 0,
			total_pnl double precision null,
			initial_yes_price double precision null,
			initial_no_price double precision null,
			initial_spread double precision null,
			final_yes_price double precision null,
			final_no_price double precision null,
			final_outcome text null,
			strategy_config jsonb null,
			metadata jsonb null
		);`,
		`create index if not exists market_sessions_start_idx on market_sessions(session_start desc);`,
		`create table if not exists bot_instances (
			id bigserial primary key,
			instance_name text not null unique,
			owner_id text not null,
			desired_state text not null default 'stopped',
			actual_state text not null default 'stopped',
			last_state_change timestamptz null,
			strategy_config jsonb not null default '{}'::jsonb,
			server_id text null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
		`create table if not exists servers (
			id text primary key,
			max_bots int not null default 10
		);`,
		`create or replace view server_status as
			select s.id,
				count(b.id) filter (where b.desired_state = 'running') as desired_running,
				s.max_bots as available_slots
			from servers s
			left join bot_instances b on b.server_id = s.id
			group by s.id, s.max_bots;`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
