// cmd/contracts/main.go runs a bot-only match and prints each round. With
// REDIS_ADDR set it publishes every action to the historian queue; with
// DATABASE_URL set it stores round results and table snapshots.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/contracts/internal/bot"
	"github.com/jason-s-yu/contracts/internal/cache"
	"github.com/jason-s-yu/contracts/internal/config"
	"github.com/jason-s-yu/contracts/internal/database"
	"github.com/jason-s-yu/contracts/internal/deck"
	"github.com/jason-s-yu/contracts/internal/game"
	"github.com/jason-s-yu/contracts/internal/logging"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := game.ParseRules(cfg.RulesOverrides(), game.DefaultRules())
	if err != nil {
		logger.Fatalf("invalid table rules: %v", err)
	}

	var provider deck.Provider = deck.NewProvider(nil)
	if cfg.Seed != 0 {
		provider = deck.NewSeededProvider(cfg.Seed)
	}

	opts := []game.Option{
		game.WithRules(rules),
		game.WithProvider(provider),
		game.WithLogger(logger),
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.ConnectRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		pub := cache.NewPublisher(rdb, cfg.QueueName)
		opts = append(opts, game.WithActionHook(pub.Hook(ctx, logger)))
		logger.Infof("Publishing actions to %s", cfg.QueueName)
	}

	var store *database.Store
	if cfg.DatabaseURL != "" {
		var pool *pgxpool.Pool
		pool, err = database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatalf("database: %v", err)
		}
		store = database.NewStore(pool)
	}

	names := make([]string, cfg.Players)
	for i := range names {
		names[i] = fmt.Sprintf("bot-%d", i+1)
	}
	table, err := game.NewTable(names, opts...)
	if err != nil {
		logger.Fatalf("new table: %v", err)
	}
	tables := game.NewStore()
	tables.Add(table)
	log := logging.ForTable(logger, table.ID)

	printHeader(table)
	player := bot.NewPlayer(nil, log)
	err = player.PlayMatch(ctx, tables, table.ID, cfg.MaxRounds, func(t *game.Table, results []game.RoundResult) {
		printRound(t, results)
		if store == nil {
			return
		}
		if err := store.RecordRoundResults(ctx, t.ID, t.RoundNumber, results); err != nil {
			log.WithError(err).Error("Failed to record round results")
		}
		if err := store.StoreTableSnapshot(ctx, t.Snapshot()); err != nil {
			log.WithError(err).Error("Failed to store snapshot")
		}
	})
	if err != nil {
		log.Fatalf("match stopped: %v", err)
	}

	_ = tables.With(table.ID, func(t *game.Table) error {
		printStandings(t)
		return nil
	})
}
