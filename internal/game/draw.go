package game

import (
	"fmt"

	"github.com/jason-s-yu/contracts/internal/models"
)

// ClaimColdViaMe lets any seat take the cold card out of turn. The claimant must
// also take the hot card, so a claim always gains two cards.
func (t *Table) ClaimColdViaMe(seat int) error {
	if err := t.requirePhase("claim", PhasePlay); err != nil {
		return err
	}
	p, err := t.Player(seat)
	if err != nil {
		return err
	}
	if p.MeClaimsUsed >= t.Rules.MeClaimLimit {
		return fmt.Errorf("%w: seat %d used %d", ErrMeClaimLimitReached, seat, p.MeClaimsUsed)
	}
	if t.DiscardPile.Cold == nil {
		return ErrNoColdCard
	}
	// The forced hot draw must be possible before anything moves.
	if t.drawableCount() == 0 {
		return ErrDeckExhausted
	}

	hot, err := t.takeHot()
	if err != nil {
		return err
	}
	cold := *t.DiscardPile.Cold
	t.DiscardPile.Cold = nil
	p.Hand = append(p.Hand, cold, hot)
	p.MeClaimsUsed++

	t.logger().Debugf("Seat %d claimed %s via Me! (%d/%d).", seat, cold, p.MeClaimsUsed, t.Rules.MeClaimLimit)
	t.logAction(p.ID, "me_claim", map[string]interface{}{
		"coldCardId": cold.ID,
		"hotCardId":  hot.ID,
		"claimsUsed": p.MeClaimsUsed,
	})
	return nil
}

// ActiveDrawsCold moves the cold card into the active player's hand. The taken
// card leaves the discard pile entirely; it never becomes dead.
func (t *Table) ActiveDrawsCold() error {
	if err := t.requirePhase("draw cold", PhasePlay); err != nil {
		return err
	}
	if t.DiscardPile.Cold == nil {
		return ErrNoColdCard
	}
	p := t.Players[t.ActiveSeat]
	cold := *t.DiscardPile.Cold
	t.DiscardPile.Cold = nil
	p.Hand = append(p.Hand, cold)

	t.logger().Debugf("Seat %d drew cold card %s.", t.ActiveSeat, cold)
	t.logAction(p.ID, "draw_cold", map[string]interface{}{"cardId": cold.ID})
	return nil
}

// ActiveDrawsHot moves the hot card into the active player's hand and exposes the next one.
func (t *Table) ActiveDrawsHot() error {
	if err := t.requirePhase("draw hot", PhasePlay); err != nil {
		return err
	}
	hot, err := t.takeHot()
	if err != nil {
		return err
	}
	p := t.Players[t.ActiveSeat]
	p.Hand = append(p.Hand, hot)

	t.logger().Debugf("Seat %d drew the hot card.", t.ActiveSeat)
	t.logAction(p.ID, "draw_hot", map[string]interface{}{"cardId": hot.ID, "stockSize": len(t.UndealtPile.Remaining)})
	return nil
}

// Discard puts a card from seat's hand face up as the new cold card, burying the old one.
func (t *Table) Discard(seat int, card models.Card) error {
	if err := t.requirePhase("discard", PhasePlay); err != nil {
		return err
	}
	p, err := t.Player(seat)
	if err != nil {
		return err
	}
	if card.IsWild() {
		return fmt.Errorf("%w: %s", ErrCardNotDiscardable, card)
	}
	idx := p.HandIndex(card.ID)
	if idx < 0 || !p.Hand[idx].SameFace(card) {
		return fmt.Errorf("%w: %s", ErrCardNotOwned, card)
	}

	held := p.Hand[idx]
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	t.DiscardPile.bury(held)

	t.logger().Debugf("Seat %d discarded %s.", seat, held)
	t.logAction(p.ID, "discard", map[string]interface{}{"cardId": held.ID, "rank": held.Rank, "suit": held.Suit})
	return nil
}
