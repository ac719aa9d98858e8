package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db.example.supabase.co/postgres")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.example.supabase.co/postgres", cfg.Database.URL)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("PORT", "-1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 8080, cfg.Server.Port)
}
