package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDB opens a pool for connStr and pings it.
func ConnectDB(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tables (
		id         UUID PRIMARY KEY,
		status     TEXT NOT NULL DEFAULT 'in_progress',
		start_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		end_time   TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS table_actions (
		table_id        UUID NOT NULL REFERENCES tables(id),
		action_index    INT NOT NULL,
		round           INT NOT NULL,
		actor_player_id UUID,
		action_type     TEXT NOT NULL,
		action_payload  JSONB,
		created_at      TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (table_id, action_index)
	)`,
	`CREATE TABLE IF NOT EXISTS round_results (
		table_id     UUID NOT NULL REFERENCES tables(id),
		round        INT NOT NULL,
		seat         INT NOT NULL,
		player_id    UUID NOT NULL,
		points       INT NOT NULL,
		score        INT NOT NULL,
		went_down    BOOLEAN NOT NULL,
		current_hand INT NOT NULL,
		winner       BOOLEAN NOT NULL,
		PRIMARY KEY (table_id, round, seat)
	)`,
	`CREATE TABLE IF NOT EXISTS table_snapshots (
		table_id   UUID PRIMARY KEY REFERENCES tables(id),
		round      INT NOT NULL,
		phase      TEXT NOT NULL,
		snapshot   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables this package writes to, if missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}
