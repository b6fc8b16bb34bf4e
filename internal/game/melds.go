package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/jason-s-yu/contracts/internal/rules"
)

// GoDown lays the player's contract melds face up. Composition, validity and
// ownership are all checked before the hand is touched.
func (t *Table) GoDown(seat int, melds []models.Meld) error {
	if err := t.requirePhase("go down", PhasePlay); err != nil {
		return err
	}
	p, err := t.Player(seat)
	if err != nil {
		return err
	}
	if p.HasGoneDown {
		return fmt.Errorf("%w: seat %d", ErrAlreadyDown, seat)
	}

	req, err := rules.Requirement(p.CurrentHand)
	if err != nil {
		return err
	}
	if err := req.Satisfies(melds); err != nil {
		return fmt.Errorf("%w: level %d: %w", ErrInvalidMeldComposition, p.CurrentHand, err)
	}
	var used []models.Card
	for _, m := range melds {
		if err := rules.ValidateMeldWith(m, t.runOptions()); err != nil {
			return err
		}
		used = append(used, m.CardList()...)
	}
	idx, err := ownedIndices(p, used)
	if err != nil {
		return err
	}

	placed := make([]models.Meld, 0, len(melds))
	for _, m := range melds {
		m = cloneMeld(m)
		if m.MeldID() == uuid.Nil {
			id, err := uuid.NewRandom()
			if err != nil {
				return err
			}
			m = models.WithID(m, id)
		}
		placed = append(placed, m)
	}

	removeFromHand(p, idx)
	p.Melds = append(p.Melds, placed...)
	p.HasGoneDown = true

	ids := make([]uuid.UUID, 0, len(placed))
	for _, m := range placed {
		ids = append(ids, m.MeldID())
	}
	t.logger().Infof("Seat %d went down with %d meld(s) at level %d.", seat, len(placed), p.CurrentHand)
	t.logAction(p.ID, "go_down", map[string]interface{}{"meldIds": ids, "level": p.CurrentHand})
	return nil
}

// AddToOwnMeld extends one of seat's own face-up melds with cards from its hand.
func (t *Table) AddToOwnMeld(seat int, meldID uuid.UUID, cards []models.Card) error {
	if err := t.requirePhase("add to meld", PhasePlay); err != nil {
		return err
	}
	p, err := t.Player(seat)
	if err != nil {
		return err
	}
	return t.extendMeld(p, p, meldID, cards, "add_to_own_meld")
}

// AddToOtherMeld extends another player's meld. Only natural cards may be
// added, and only once that player has gone down.
func (t *Table) AddToOtherMeld(seat, targetSeat int, meldID uuid.UUID, cards []models.Card) error {
	if err := t.requirePhase("add to meld", PhasePlay); err != nil {
		return err
	}
	p, err := t.Player(seat)
	if err != nil {
		return err
	}
	target, err := t.Player(targetSeat)
	if err != nil {
		return err
	}
	if seat == targetSeat {
		return ErrSameSeat
	}
	if !target.HasGoneDown {
		return fmt.Errorf("%w: seat %d", ErrTargetNotDown, targetSeat)
	}
	for _, c := range cards {
		if c.IsWild() {
			return fmt.Errorf("%w: %s", ErrWildNotAllowed, c)
		}
	}
	return t.extendMeld(p, target, meldID, cards, "add_to_other_meld")
}

func (t *Table) extendMeld(p, owner *models.PlayerState, meldID uuid.UUID, cards []models.Card, actionType string) error {
	mi := owner.FindMeld(meldID)
	if mi < 0 {
		return fmt.Errorf("%w: %s", ErrMeldNotFound, meldID)
	}
	cand, err := rules.Extend(owner.Melds[mi], cards, t.runOptions())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtensionInvalid, err)
	}
	idx, err := ownedIndices(p, cards)
	if err != nil {
		return err
	}

	removeFromHand(p, idx)
	owner.Melds[mi] = cand

	t.logger().Debugf("Seat %d added %d card(s) to meld %s of seat %d.", p.SeatIndex, len(cards), meldID, owner.SeatIndex)
	t.logAction(p.ID, actionType, map[string]interface{}{
		"meldId":    meldID,
		"ownerSeat": owner.SeatIndex,
		"cards":     len(cards),
	})
	return nil
}

// ownedIndices maps each card to a distinct hand slot holding the same card.
func ownedIndices(p *models.PlayerState, cards []models.Card) ([]int, error) {
	taken := make(map[int]bool, len(cards))
	idx := make([]int, 0, len(cards))
	for _, c := range cards {
		i := p.HandIndex(c.ID)
		if i < 0 || taken[i] || !p.Hand[i].SameFace(c) {
			return nil, fmt.Errorf("%w: %s", ErrCardNotOwned, c)
		}
		taken[i] = true
		idx = append(idx, i)
	}
	return idx, nil
}

func removeFromHand(p *models.PlayerState, idx []int) {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	kept := make([]models.Card, 0, len(p.Hand)-len(drop))
	for i, c := range p.Hand {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
}

// cloneMeld copies the card and wild slices so the caller's meld can't alias table state.
func cloneMeld(m models.Meld) models.Meld {
	wilds := append([]int{}, m.Wilds()...)
	sort.Ints(wilds)
	switch v := m.(type) {
	case models.SetMeld:
		v.Cards = append([]models.Card(nil), v.Cards...)
		v.WildPositions = wilds
		return v
	case models.RunMeld:
		v.Cards = append([]models.Card(nil), v.Cards...)
		v.WildPositions = wilds
		return v
	}
	return m
}
