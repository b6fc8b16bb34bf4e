// internal/database/tables.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/contracts/internal/game"
	"github.com/jason-s-yu/contracts/internal/models"
)

// Store persists table history to PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const upsertTableQ = `
	INSERT INTO tables (id, status)
	VALUES ($1, 'in_progress')
	ON CONFLICT (id) DO NOTHING
`

// InsertActions writes a batch of action records in one transaction. Records
// already stored are skipped, so a batch can be replayed safely.
func (s *Store) InsertActions(ctx context.Context, records []models.ActionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertActionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insert action %s/%d: %w", rec.TableID, rec.ActionIndex, err)
			}
		}
		return nil
	})
}

func insertActionTx(ctx context.Context, tx pgx.Tx, rec models.ActionRecord) error {
	if _, err := tx.Exec(ctx, upsertTableQ, rec.TableID); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.ActionPayload)
	if err != nil {
		return err
	}
	var actor *uuid.UUID
	if rec.ActorPlayerID != uuid.Nil {
		actor = &rec.ActorPlayerID
	}
	insertQ := `
		INSERT INTO table_actions (
			table_id, action_index, round, actor_player_id, action_type, action_payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (table_id, action_index) DO NOTHING
	`
	_, err = tx.Exec(ctx, insertQ,
		rec.TableID, rec.ActionIndex, rec.Round, actor, rec.ActionType, payload, time.UnixMilli(rec.Timestamp),
	)
	if err != nil {
		return err
	}

	if rec.ActionType == game.ActionGameEnd {
		finalizeQ := `
			UPDATE tables
			SET status = 'completed', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		if _, err := tx.Exec(ctx, finalizeQ, rec.TableID); err != nil {
			return err
		}
	}
	return nil
}

// RecordRoundResults stores every seat's outcome for one round.
func (s *Store) RecordRoundResults(ctx context.Context, tableID uuid.UUID, round int, results []game.RoundResult) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertTableQ, tableID); err != nil {
			return err
		}
		q := `
			INSERT INTO round_results (table_id, round, seat, player_id, points, score, went_down, current_hand, winner)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (table_id, round, seat)
			DO UPDATE SET points=$5, score=$6, went_down=$7, current_hand=$8, winner=$9
		`
		for _, res := range results {
			_, err := tx.Exec(ctx, q,
				tableID, round, res.Seat, res.PlayerID, res.Points, res.Score, res.WentDown, res.CurrentHand, res.Winner,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx record round results: %w", err)
	}
	return nil
}

// StoreTableSnapshot replaces the latest snapshot kept for the table.
func (s *Store) StoreTableSnapshot(ctx context.Context, snap game.TableSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertTableQ, snap.TableID); err != nil {
			return err
		}
		q := `
			INSERT INTO table_snapshots (table_id, round, phase, snapshot, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (table_id)
			DO UPDATE SET round=$2, phase=$3, snapshot=$4, updated_at=NOW()
		`
		_, err := tx.Exec(ctx, q, snap.TableID, snap.Round, string(snap.Phase), data)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx store snapshot: %w", err)
	}
	return nil
}

// LoadTableSnapshot returns the latest stored snapshot for the table.
func (s *Store) LoadTableSnapshot(ctx context.Context, tableID uuid.UUID) (game.TableSnapshot, error) {
	var (
		snap game.TableSnapshot
		data []byte
	)
	err := s.pool.QueryRow(ctx, `SELECT snapshot FROM table_snapshots WHERE table_id = $1`, tableID).Scan(&data)
	if err != nil {
		return snap, fmt.Errorf("load snapshot %s: %w", tableID, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", tableID, err)
	}
	return snap, nil
}

// CountActions returns how many actions are stored for the table.
func (s *Store) CountActions(ctx context.Context, tableID uuid.UUID) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM table_actions WHERE table_id = $1`, tableID).Scan(&n)
	return n, err
}

// MarkAbandoned marks a table as abandoned if it was still in progress.
func (s *Store) MarkAbandoned(ctx context.Context, tableID uuid.UUID) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			UPDATE tables
			SET status = 'abandoned', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		_, err := tx.Exec(ctx, q, tableID)
		return err
	})
}
