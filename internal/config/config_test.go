package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONTRACTS_PLAYERS", "CONTRACTS_SEED", "LOG_LEVEL", "REDIS_ADDR", "HISTORIAN_FLUSH_MS", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.FlushDelay)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONTRACTS_PLAYERS", "6")
	t.Setenv("CONTRACTS_JOKERS", "0")
	t.Setenv("CONTRACTS_SEED", "99")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("HISTORIAN_QUEUE_NAME", "q")

	cfg := Load()
	assert.Equal(t, 6, cfg.Players)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "q", cfg.QueueName)

	overrides := cfg.RulesOverrides()
	assert.Equal(t, false, overrides["includeJokers"])
	assert.Equal(t, 0, overrides["jokerCount"])
}
