package domain

import (
	"context"
	"time"
)

// Bot lifecycle states. desired_state is what the operator wants, actual_state
// is what the supervisor on the target server last reported.
const (
	StateRunning = "running"
	StateStopped = "stopped"
	StateError   = "error"
)

// BotInstance is one row of the bot_instances table. The dashboard owns
// instance_name, owner_id, desired_state, strategy_config and server_id;
// actual_state and last_state_change are written by the supervisors.
type BotInstance struct {
	ID              int64          `json:"id"`
	InstanceName    string         `json:"instance_name"`
	OwnerID         string         `json:"owner_id"`
	DesiredState    string         `json:"desired_state"`
	ActualState     string         `json:"actual_state"`
	LastStateChange *time.Time     `json:"last_state_change"`
	StrategyConfig  StrategyConfig `json:"strategy_config"`
	ServerID        *string        `json:"server_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// BotInstanceRepository is full CRUD over bot_instances.
type BotInstanceRepository interface {
	// ListAll returns every bot ordered by id ascending.
	ListAll(ctx context.Context) ([]BotInstance, error)
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*BotInstance, error)
	// NextID returns max(id)+1, or 1 for an empty table. Used for the
	// sequence suffix of generated instance names.
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, bot *BotInstance) (*BotInstance, error)
	// Update rewrites desired_state, strategy_config and server_id of one row.
	Update(ctx context.Context, bot *BotInstance) (*BotInstance, error)
	// SetDesiredState flips only the desired_state column.
	SetDesiredState(ctx context.Context, id int64, state string) error
	Delete(ctx context.Context, id int64) error
}
