package bot

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/game"
)

// MaxTurnsPerRound ends a round with no winner when nobody has gone out by then.
const MaxTurnsPerRound = 400

// RoundHook is called after every round, still holding the table lock.
type RoundHook func(t *game.Table, results []game.RoundResult)

// PlayMatch drives the table in store until the match ends, maxRounds have been
// played or ctx is cancelled. Each step takes the table lock separately.
func (b *Player) PlayMatch(ctx context.Context, store *game.Store, id uuid.UUID, maxRounds int, onRound RoundHook) error {
	for round := 0; round < maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := store.With(id, func(t *game.Table) error {
			if err := t.StartRound(); err != nil {
				return err
			}
			return t.FlipFirstCold()
		})
		if err != nil {
			return err
		}

		results, err := b.playRound(ctx, store, id)
		if err != nil {
			return err
		}

		var over bool
		err = store.With(id, func(t *game.Table) error {
			if onRound != nil {
				onRound(t, results)
			}
			if err := t.PrepareNextRound(); err != nil {
				if errors.Is(err, game.ErrGameOver) {
					over = true
					return nil
				}
				return err
			}
			return nil
		})
		if err != nil || over {
			return err
		}
	}
	return nil
}

func (b *Player) playRound(ctx context.Context, store *game.Store, id uuid.UUID) ([]game.RoundResult, error) {
	var results []game.RoundResult
	for turn := 0; results == nil; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := store.With(id, func(t *game.Table) error {
			if turn >= MaxTurnsPerRound {
				b.log.WithField("table", id).Warn("Turn limit reached, ending round without a winner")
				res, err := t.EndRound(game.NoWinner)
				results = res
				return err
			}

			b.OfferClaims(t)
			out, err := b.PlayTurn(t)
			if errors.Is(err, game.ErrDeckExhausted) {
				res, err := t.EndRound(game.NoWinner)
				results = res
				return err
			}
			if err != nil {
				return err
			}
			if out {
				results = t.LastRoundResults()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
