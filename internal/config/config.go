// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is everything the commands read from the environment.
type Config struct {
	Players   int
	Decks     int
	Jokers    int
	Seed      int64
	MaxRounds int

	LogLevel string

	RedisAddr string
	RedisDB   int
	QueueName string

	BatchSize  int
	FlushDelay time.Duration
	Inactivity time.Duration

	DatabaseURL string
}

// Load reads the configuration from the environment. Missing or unparsable values
// fall back to defaults. A zero Seed means "pick one at random".
func Load() Config {
	return Config{
		Players:     getEnvInt("CONTRACTS_PLAYERS", 4),
		Decks:       getEnvInt("CONTRACTS_DECKS", 2),
		Jokers:      getEnvInt("CONTRACTS_JOKERS", 4),
		Seed:        int64(getEnvInt("CONTRACTS_SEED", 0)),
		MaxRounds:   getEnvInt("CONTRACTS_MAX_ROUNDS", 20),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		QueueName:   getEnv("HISTORIAN_QUEUE_NAME", "contracts_actions"),
		BatchSize:   getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		FlushDelay:  time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		Inactivity:  time.Duration(getEnvInt("TABLE_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}

// RulesOverrides returns the table rules carried by the environment, in the
// form TableRules.Update accepts.
func (c Config) RulesOverrides() map[string]interface{} {
	return map[string]interface{}{
		"deckCount":     c.Decks,
		"includeJokers": c.Jokers > 0,
		"jokerCount":    c.Jokers,
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else returns a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
