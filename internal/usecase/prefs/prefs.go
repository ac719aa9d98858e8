// Package prefs models per-table column visibility: named sets of columns
// with hardcoded defaults, loaded and saved through a small key/value port.
// The dashboard keeps the same JSON under the same keys in browser
// localStorage; this package is the single source of the defaults.
package prefs

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Store is the key/value persistence port. The in-memory implementation
// backs tests; the browser's localStorage plays the role in the dashboard.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// ColumnSet declares one table's columns: storage key, declaration order and
// default visibility. ArrayFormat sets persist as an array of visible keys
// instead of a key->bool map.
type ColumnSet struct {
	Table       string
	StorageKey  string
	Order       []string
	Defaults    map[string]bool
	ArrayFormat bool
}

// DefaultVisible returns a copy of the default visibility map.
func (c ColumnSet) DefaultVisible() map[string]bool {
	out := make(map[string]bool, len(c.Defaults))
	for k, v := range c.Defaults {
		out[k] = v
	}
	return out
}

// Load reads the set's stored visibility. Missing or corrupt values fall
// back to the defaults; corruption is logged, never an error. Unknown stored
// keys are dropped and keys absent from the stored value keep their default.
func Load(store Store, set ColumnSet, log *logrus.Logger) map[string]bool {
	visible := set.DefaultVisible()

	raw, ok := store.Get(set.StorageKey)
	if !ok {
		return visible
	}

	if set.ArrayFormat {
		var keys []string
		if err := json.Unmarshal([]byte(raw), &keys); err != nil {
			log.WithError(err).WithField("key", set.StorageKey).
				Warn("corrupt column preferences, using defaults")
			return visible
		}
		for k := range visible {
			visible[k] = false
		}
		for _, k := range keys {
			if _, known := set.Defaults[k]; known {
				visible[k] = true
			}
		}
		return visible
	}

	var stored map[string]bool
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.WithError(err).WithField("key", set.StorageKey).
			Warn("corrupt column preferences, using defaults")
		return visible
	}
	for k, v := range stored {
		if _, known := set.Defaults[k]; known {
			visible[k] = v
		}
	}
	return visible
}

// Save persists a visibility map in the set's storage format.
func Save(store Store, set ColumnSet, visible map[string]bool) error {
	var payload any
	if set.ArrayFormat {
		keys := make([]string, 0, len(set.Order))
		for _, k := range set.Order {
			if visible[k] {
				keys = append(keys, k)
			}
		}
		payload = keys
	} else {
		payload = visible
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	store.Set(set.StorageKey, string(raw))
	return nil
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.values[key] = value
}
