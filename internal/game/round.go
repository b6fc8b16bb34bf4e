package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
)

// ActionGameEnd is the action type emitted once the last contract is completed.
const ActionGameEnd = "game_end"

// NoWinner ends a round in which nobody went out (e.g. the deck ran dry); every hand is scored.
const NoWinner = -1

// RoundResult is one player's outcome from EndRound.
type RoundResult struct {
	Seat        int       `json:"seat"`
	PlayerID    uuid.UUID `json:"playerId"`
	Points      int       `json:"points"`
	Score       int       `json:"score"`
	WentDown    bool      `json:"wentDown"`
	CurrentHand int       `json:"currentHand"`
	Winner      bool      `json:"winner"`
}

// StartRound deals HandSize cards to every player one at a time, starting left
// of the dealer and finishing on the dealer, then exposes the hot card.
func (t *Table) StartRound() error {
	if err := t.requirePhase("start round", PhaseDeal); err != nil {
		return err
	}
	need := t.Rules.HandSize * len(t.Players)
	if t.drawableCount() < need {
		return fmt.Errorf("%w: need %d cards to deal, have %d", ErrDeckExhausted, need, t.drawableCount())
	}

	n := len(t.Players)
	for c := 0; c < t.Rules.HandSize; c++ {
		for offset := 1; offset <= n; offset++ {
			seat := (t.DealerSeat + offset) % n
			card, err := t.takeHot()
			if err != nil {
				// unreachable after the count check above
				return err
			}
			t.Players[seat].Hand = append(t.Players[seat].Hand, card)
		}
	}
	if err := t.ensureHot(); err != nil {
		t.logger().Warn("No hot card after dealing.")
	}
	t.Phase = PhaseAnalyze

	t.logger().Infof("Dealt %d cards to %d players (dealer seat %d).", t.Rules.HandSize, n, t.DealerSeat)
	t.logAction(uuid.Nil, "round_start", map[string]interface{}{
		"dealerSeat": t.DealerSeat,
		"stockSize":  len(t.UndealtPile.Remaining),
	})
	return nil
}

// FlipFirstCold turns the hot card face up as the first cold card and opens play
// with the player left of the dealer.
func (t *Table) FlipFirstCold() error {
	if err := t.requirePhase("flip first cold", PhaseAnalyze); err != nil {
		return err
	}
	if err := t.ensureHot(); err != nil {
		return err
	}
	hot := *t.UndealtPile.Hot
	t.UndealtPile.Hot = nil
	t.DiscardPile.bury(hot)
	if err := t.ensureHot(); err != nil {
		t.logger().Warn("No hot card after flipping the first cold card.")
	}
	t.Phase = PhasePlay
	t.ActiveSeat = t.nextSeat(t.DealerSeat)

	t.logger().Debugf("First cold card is %s; seat %d to play.", hot, t.ActiveSeat)
	t.logAction(uuid.Nil, "flip_first_cold", map[string]interface{}{"cardId": hot.ID})
	return nil
}

// AdvanceTurn passes play to the next seat. Turn order is the host's to enforce;
// the engine only moves the marker.
func (t *Table) AdvanceTurn() error {
	if err := t.requirePhase("advance turn", PhasePlay); err != nil {
		return err
	}
	t.ActiveSeat = t.nextSeat(t.ActiveSeat)
	t.logAction(t.Players[t.ActiveSeat].ID, "turn_start", map[string]interface{}{"seat": t.ActiveSeat})
	return nil
}

// TryGoOut ends the round with seat as winner if its hand is empty.
func (t *Table) TryGoOut(seat int) (bool, error) {
	if err := t.requirePhase("go out", PhasePlay); err != nil {
		return false, err
	}
	p, err := t.Player(seat)
	if err != nil {
		return false, err
	}
	if len(p.Hand) > 0 {
		return false, nil
	}
	if _, err := t.EndRound(seat); err != nil {
		return false, err
	}
	return true, nil
}

// EndRound scores every hand except the winner's and advances the contract level
// of every player who went down. If a player completed the last contract this
// round the match ends.
func (t *Table) EndRound(winnerSeat int) ([]RoundResult, error) {
	if err := t.requirePhase("end round", PhasePlay); err != nil {
		return nil, err
	}
	if winnerSeat != NoWinner {
		if _, err := t.Player(winnerSeat); err != nil {
			return nil, err
		}
	}

	finished := false
	results := make([]RoundResult, 0, len(t.Players))
	for _, p := range t.Players {
		res := RoundResult{Seat: p.SeatIndex, PlayerID: p.ID, WentDown: p.HasGoneDown}
		if p.SeatIndex == winnerSeat {
			res.Winner = true
		} else {
			res.Points = t.scorer.Total(p.Hand)
			p.Score += res.Points
		}
		if p.HasGoneDown {
			if p.CurrentHand == models.MaxHandLevel {
				finished = true
			}
			if p.CurrentHand < models.MaxHandLevel {
				p.CurrentHand++
			}
		}
		res.Score = p.Score
		res.CurrentHand = p.CurrentHand
		results = append(results, res)
	}

	t.lastResults = results
	t.Phase = PhaseRoundEnd
	if finished {
		t.Phase = PhaseGameEnd
	}

	t.logger().Infof("Round ended (winner seat %d, phase %s).", winnerSeat, t.Phase)
	t.logAction(uuid.Nil, "round_end", map[string]interface{}{"winnerSeat": winnerSeat, "results": results})
	if finished {
		t.logAction(uuid.Nil, ActionGameEnd, map[string]interface{}{"rounds": t.RoundNumber})
	}
	return results, nil
}

// PrepareNextRound rotates the dealer, shuffles a fresh stock and clears every
// per-round field, returning the table to the deal phase.
func (t *Table) PrepareNextRound() error {
	if t.Phase == PhaseGameEnd {
		return ErrGameOver
	}
	if err := t.requirePhase("prepare next round", PhaseRoundEnd); err != nil {
		return err
	}
	stock, err := t.produceStock()
	if err != nil {
		return err
	}

	t.DealerSeat = t.nextSeat(t.DealerSeat)
	t.ActiveSeat = t.nextSeat(t.DealerSeat)
	t.RoundNumber++
	t.UndealtPile = UndealtPile{Remaining: stock}
	t.DiscardPile = DiscardPile{Dead: []models.Card{}}
	for _, p := range t.Players {
		p.ResetForRound()
	}
	t.Phase = PhaseDeal

	t.logger().Infof("Prepared round %d; dealer is seat %d.", t.RoundNumber, t.DealerSeat)
	t.logAction(uuid.Nil, "round_prepare", map[string]interface{}{"dealerSeat": t.DealerSeat})
	return nil
}

// LastRoundResults returns the outcome of the most recently ended round, or nil.
func (t *Table) LastRoundResults() []RoundResult {
	return append([]RoundResult(nil), t.lastResults...)
}

// Standings returns the players ordered by score, lowest (best) first; ties keep seat order.
func (t *Table) Standings() []*models.PlayerState {
	out := append([]*models.PlayerState(nil), t.Players...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}
