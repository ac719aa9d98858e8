package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ServerStatus is one row of the server_status view: current load and
// capacity of one bot host.
type ServerStatus struct {
	ID             string `json:"id"`
	DesiredRunning int    `json:"desired_running"`
	AvailableSlots int    `json:"available_slots"`
}

// HasFreeSlot reports whether one more bot may be scheduled on the server.
func (s ServerStatus) HasFreeSlot() bool {
	return s.DesiredRunning < s.AvailableSlots
}

// ServerStatusRepository reads the server_status view.
type ServerStatusRepository interface {
	ListAll(ctx context.Context) ([]ServerStatus, error)
}
