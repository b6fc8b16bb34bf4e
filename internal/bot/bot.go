// Package bot plays contract rummy automatically. It only uses the public table
// operations, so every move it makes goes through the same checks as a person's.
package bot

import (
	"errors"

	"github.com/jason-s-yu/contracts/internal/game"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/jason-s-yu/contracts/internal/rules"
	"github.com/jason-s-yu/contracts/internal/scoring"
	"github.com/sirupsen/logrus"
)

// Player is a greedy bot. One Player can drive every seat at a table.
type Player struct {
	scorer scoring.Calculator
	log    logrus.FieldLogger
}

func NewPlayer(scorer scoring.Calculator, logger logrus.FieldLogger) *Player {
	if scorer == nil {
		scorer = scoring.Standard{}
	}
	return &Player{scorer: scorer, log: logger}
}

// OfferClaims gives every seat but the active one, in turn order, the chance to
// claim the cold card. It returns the claiming seat or -1.
func (b *Player) OfferClaims(t *game.Table) int {
	if t.DiscardPile.Cold == nil {
		return -1
	}
	cold := *t.DiscardPile.Cold
	n := len(t.Players)
	for offset := 1; offset < n; offset++ {
		seat := (t.ActiveSeat + offset) % n
		p := t.Players[seat]
		if p.MeClaimsUsed >= t.Rules.MeClaimLimit || !wantsCard(p.Hand, cold, 2) {
			continue
		}
		if err := t.ClaimColdViaMe(seat); err != nil {
			b.log.WithError(err).WithField("seat", seat).Debug("Claim refused")
			continue
		}
		return seat
	}
	return -1
}

// PlayTurn plays the active seat's whole turn: draw, go down or lay off,
// discard, then either go out or pass play on. It reports whether the round ended.
func (b *Player) PlayTurn(t *game.Table) (bool, error) {
	seat := t.ActiveSeat
	p := t.Players[seat]

	if err := b.draw(t, p); err != nil {
		return false, err
	}

	if !p.HasGoneDown {
		req, err := rules.Requirement(p.CurrentHand)
		if err != nil {
			return false, err
		}
		opts := rules.RunOptions{AllowAceWrap: t.Rules.AllowAceWrap}
		if melds, ok := FindContract(p.Hand, req, opts); ok {
			if err := t.GoDown(seat, melds); err != nil {
				b.log.WithError(err).WithField("seat", seat).Warn("Going down refused")
			}
		}
	}
	if p.HasGoneDown {
		b.layOff(t, seat)
	}

	if out, err := t.TryGoOut(seat); err != nil || out {
		return out, err
	}
	if card, ok := ChooseDiscard(p.Hand, b.scorer); ok {
		if err := t.Discard(seat, card); err != nil {
			return false, err
		}
		if out, err := t.TryGoOut(seat); err != nil || out {
			return out, err
		}
	}
	return false, t.AdvanceTurn()
}

func (b *Player) draw(t *game.Table, p *models.PlayerState) error {
	if t.DiscardPile.Cold != nil && wantsCard(p.Hand, *t.DiscardPile.Cold, 1) {
		return t.ActiveDrawsCold()
	}
	err := t.ActiveDrawsHot()
	if errors.Is(err, game.ErrDeckExhausted) && t.DiscardPile.Cold != nil {
		return t.ActiveDrawsCold()
	}
	return err
}

// layOff adds hand cards to any meld that takes them, own melds first, until nothing fits.
func (b *Player) layOff(t *game.Table, seat int) {
	p := t.Players[seat]
	for progress := true; progress; {
		progress = false
		for _, c := range append([]models.Card(nil), p.Hand...) {
			if b.tryLayOff(t, seat, c) {
				progress = true
			}
		}
	}
}

func (b *Player) tryLayOff(t *game.Table, seat int, c models.Card) bool {
	cards := []models.Card{c}
	for _, m := range t.Players[seat].Melds {
		if t.AddToOwnMeld(seat, m.MeldID(), cards) == nil {
			return true
		}
	}
	if c.IsWild() {
		return false
	}
	for target, other := range t.Players {
		if target == seat || !other.HasGoneDown {
			continue
		}
		for _, m := range other.Melds {
			if t.AddToOtherMeld(seat, target, m.MeldID(), cards) == nil {
				return true
			}
		}
	}
	return false
}
