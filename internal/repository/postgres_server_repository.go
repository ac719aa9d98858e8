package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"botadmin-backend/internal/domain"
)

// PostgresServerRepository reads the server_status view. When the view is
// missing it falls back to the servers table, with max_bots as capacity and
// zero reported load.
type PostgresServerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresServerRepository(pool *pgxpool.Pool) *PostgresServerRepository {
	return &PostgresServerRepository{pool: pool}
}

func (r *PostgresServerRepository) ListAll(ctx context.Context) ([]domain.ServerStatus, error) {
	servers, err := r.query(ctx, `
		select id, coalesce(desired_running, 0), coalesce(available_slots, 0)
		from server_status
		order by id
	`)
	if err == nil {
		return servers, nil
	}

	return r.query(ctx, `
		select id, 0, coalesce(max_bots, 10)
		from servers
		order by id
	`)
}

func (r *PostgresServerRepository) query(ctx context.Context, sql string) ([]domain.ServerStatus, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	servers := make([]domain.ServerStatus, 0)
	for rows.Next() {
		var s domain.ServerStatus
		if err := rows.Scan(&s.ID, &s.DesiredRunning, &s.AvailableSlots); err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return servers, rows.Err()
}

var _ domain.ServerStatusRepository = (*PostgresServerRepository)(nil)
