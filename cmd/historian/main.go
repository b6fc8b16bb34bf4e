// cmd/historian/main.go pops table actions from the Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/contracts/internal/cache"
	"github.com/jason-s-yu/contracts/internal/config"
	"github.com/jason-s-yu/contracts/internal/database"
	"github.com/jason-s-yu/contracts/internal/historian"
	"github.com/jason-s-yu/contracts/internal/logging"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.ConnectRedis(redisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	pool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatalf("database: %v", err)
	}

	svc := historian.NewService(
		cache.NewQueue(rdb, cfg.QueueName),
		database.NewStore(pool),
		historian.Options{
			BatchSize:  cfg.BatchSize,
			FlushDelay: cfg.FlushDelay,
			Inactivity: cfg.Inactivity,
			QueueName:  cfg.QueueName,
		},
		logger,
	)

	// Run returns after ctx is cancelled and the last batch is flushed.
	svc.Run(ctx)
	logger.Info("Historian shutdown complete.")
}
