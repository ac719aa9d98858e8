package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"botadmin-backend/internal/domain"
)

// In-memory repositories backing tests and credential-less local runs.

// MemoryTradeRepository holds trades in memory.
type MemoryTradeRepository struct {
	mu     sync.RWMutex
	trades []domain.Trade
}

var _ domain.TradeRepository = (*MemoryTradeRepository)(nil)

func NewMemoryTradeRepository(trades ...domain.Trade) *MemoryTradeRepository {
	return &MemoryTradeRepository{trades: trades}
}

func (r *MemoryTradeRepository) ListAll(ctx context.Context) ([]domain.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Trade, len(r.trades))
	copy(out, r.trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// MemorySessionRepository holds market sessions in memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions []domain.MarketSession
}

var _ domain.MarketSessionRepository = (*MemorySessionRepository)(nil)

func NewMemorySessionRepository(sessions ...domain.MarketSession) *MemorySessionRepository {
	return &MemorySessionRepository{sessions: sessions}
}

func (r *MemorySessionRepository) ListAll(ctx context.Context) ([]domain.MarketSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MarketSession, len(r.sessions))
	copy(out, r.sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SessionStart.After(out[j].SessionStart)
	})
	return out, nil
}

// MemoryBotRepository holds bot instances in memory with full CRUD.
type MemoryBotRepository struct {
	mu   sync.RWMutex
	bots map[int64]*domain.BotInstance
}

var _ domain.BotInstanceRepository = (*MemoryBotRepository)(nil)

func NewMemoryBotRepository(bots ...domain.BotInstance) *MemoryBotRepository {
	r := &MemoryBotRepository{bots: make(map[int64]*domain.BotInstance)}
	for i := range bots {
		b := bots[i]
		r.bots[b.ID] = &b
	}
	return r
}

func (r *MemoryBotRepository) ListAll(ctx context.Context) ([]domain.BotInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.BotInstance, 0, len(r.bots))
	for _, b := range r.bots {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryBotRepository) GetByID(ctx context.Context, id int64) (*domain.BotInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *MemoryBotRepository) NextID(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextIDLocked(), nil
}

func (r *MemoryBotRepository) nextIDLocked() int64 {
	var max int64
	for id := range r.bots {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (r *MemoryBotRepository) Create(ctx context.Context, bot *domain.BotInstance) (*domain.BotInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *bot
	if clone.ID == 0 {
		clone.ID = r.nextIDLocked()
	}
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.bots[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *MemoryBotRepository) Update(ctx context.Context, bot *domain.BotInstance) (*domain.BotInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bots[bot.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing.DesiredState = bot.DesiredState
	existing.StrategyConfig = bot.StrategyConfig
	existing.ServerID = bot.ServerID
	existing.UpdatedAt = time.Now()
	clone := *existing
	return &clone, nil
}

func (r *MemoryBotRepository) SetDesiredState(ctx context.Context, id int64, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bots[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.DesiredState = state
	b.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryBotRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bots, id)
	return nil
}

// MemoryServerRepository holds server status rows in memory.
type MemoryServerRepository struct {
	mu      sync.RWMutex
	servers []domain.ServerStatus
}

var _ domain.ServerStatusRepository = (*MemoryServerRepository)(nil)

func NewMemoryServerRepository(servers ...domain.ServerStatus) *MemoryServerRepository {
	return &MemoryServerRepository{servers: servers}
}

func (r *MemoryServerRepository) ListAll(ctx context.Context) ([]domain.ServerStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ServerStatus, len(r.servers))
	copy(out, r.servers)
	return out, nil
}

// SetServers replaces the server list, for tests exercising the slot guard.
func (r *MemoryServerRepository) SetServers(servers []domain.ServerStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = servers
}
