package prefs

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadMissingKeyReturnsDefaults(t *testing.T) {
	visible := Load(NewMemoryStore(), MarketSessionsColumns, quietLogger())
	assert.Equal(t, MarketSessionsColumns.Defaults, visible)
}

func TestLoadCorruptJSONFallsBack(t *testing.T) {
	store := NewMemoryStore()
	store.Set(MarketSessionsColumns.StorageKey, "{not json")

	visible := Load(store, MarketSessionsColumns, quietLogger())
	assert.Equal(t, MarketSessionsColumns.Defaults, visible)
}

func TestLoadMergesStoredOverDefaults(t *testing.T) {
	store := NewMemoryStore()
	store.Set(MarketSessionsColumns.StorageKey, `{"id":false,"metadata":true,"bogus":true}`)

	visible := Load(store, MarketSessionsColumns, quietLogger())
	assert.False(t, visible["id"])
	assert.True(t, visible["metadata"])
	// unknown keys are dropped, untouched keys keep defaults
	_, hasBogus := visible["bogus"]
	assert.False(t, hasBogus)
	assert.True(t, visible["market"])
}

func TestLoadArrayFormat(t *testing.T) {
	store := NewMemoryStore()
	store.Set(BotInstancesColumns.StorageKey, `["id","Nazwa","bogus"]`)

	visible := Load(store, BotInstancesColumns, quietLogger())
	assert.True(t, visible["id"])
	assert.True(t, visible["Nazwa"])
	assert.False(t, visible["actions"])
	_, hasBogus := visible["bogus"]
	assert.False(t, hasBogus)
}

func TestLoadArrayFormatCorrupt(t *testing.T) {
	store := NewMemoryStore()
	store.Set(BotInstancesColumns.StorageKey, `{"id":true}`)

	visible := Load(store, BotInstancesColumns, quietLogger())
	assert.Equal(t, BotInstancesColumns.Defaults, visible)
}

func TestSaveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	visible := MarketSessionsColumns.DefaultVisible()
	visible["metadata"] = true

	require.NoError(t, Save(store, MarketSessionsColumns, visible))
	loaded := Load(store, MarketSessionsColumns, quietLogger())
	assert.Equal(t, visible, loaded)
}

func TestSaveArrayFormatWritesVisibleKeys(t *testing.T) {
	store := NewMemoryStore()
	visible := map[string]bool{"actions": true, "id": false, "Nazwa": true}

	require.NoError(t, Save(store, BotInstancesColumns, visible))

	raw, ok := store.Get(BotInstancesColumns.StorageKey)
	require.True(t, ok)
	var keys []string
	require.NoError(t, json.Unmarshal([]byte(raw), &keys))
	// declaration order, visible only
	assert.Equal(t, []string{"actions", "Nazwa"}, keys)
}

func TestDefaultsCoverEveryDeclaredColumn(t *testing.T) {
	for name, set := range Sets() {
		assert.Len(t, set.Defaults, len(set.Order), name)
		for _, key := range set.Order {
			_, ok := set.Defaults[key]
			assert.True(t, ok, "%s missing default for %s", name, key)
		}
	}
}

func TestBotInstancesDefaultVisibleSet(t *testing.T) {
	visible := BotInstancesColumns.DefaultVisible()
	for _, key := range []string{"actions", "id", "instance_name", "desired_state", "actual_state", "Nazwa", "MARKET_INTERVAL", "ORDER_SIZE", "DRY_RUN"} {
		assert.True(t, visible[key], key)
	}
	assert.False(t, visible["owner_id"])
	assert.False(t, visible["SECRETS_PATH"])
}
