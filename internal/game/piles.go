package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
)

// DiscardPile holds the single takeable cold card on top of the buried dead cards.
type DiscardPile struct {
	Cold *models.Card  `json:"cold,omitempty"`
	Dead []models.Card `json:"dead"`
}

// bury makes c the cold card, moving the previous cold card to dead.
func (d *DiscardPile) bury(c models.Card) {
	if d.Cold != nil {
		d.Dead = append(d.Dead, *d.Cold)
	}
	d.Cold = &c
}

// UndealtPile is the face-down stock with its exposed hot card.
type UndealtPile struct {
	Hot       *models.Card  `json:"hot,omitempty"`
	Remaining []models.Card `json:"remaining"`
}

// drawableCount is every card the hot slot could still produce this round.
func (t *Table) drawableCount() int {
	n := len(t.UndealtPile.Remaining) + len(t.DiscardPile.Dead)
	if t.UndealtPile.Hot != nil {
		n++
	}
	return n
}

// ensureHot fills the hot slot if it is empty. Calling it again without a draw
// in between changes nothing. When the stock is empty the dead cards are
// reshuffled into a new stock; emptiness is checked first so a failed refill
// never discards the dead pile.
func (t *Table) ensureHot() error {
	if t.UndealtPile.Hot != nil {
		return nil
	}
	if len(t.UndealtPile.Remaining) == 0 {
		if len(t.DiscardPile.Dead) == 0 {
			return ErrDeckExhausted
		}
		t.reshuffleDead()
	}
	last := len(t.UndealtPile.Remaining) - 1
	c := t.UndealtPile.Remaining[last]
	t.UndealtPile.Remaining = t.UndealtPile.Remaining[:last]
	t.UndealtPile.Hot = &c
	return nil
}

// reshuffleDead turns the dead cards into the stock. The cold card stays put.
func (t *Table) reshuffleDead() {
	stock := t.DiscardPile.Dead
	t.DiscardPile.Dead = []models.Card{}
	t.provider.Shuffle(stock)
	t.UndealtPile.Remaining = stock

	t.logger().Warnf("Stock empty. Reshuffled %d dead card(s) into the stock.", len(stock))
	t.logAction(uuid.Nil, "reshuffle_dead", map[string]interface{}{"stockSize": len(stock)})
}

// takeHot removes the hot card and lazily exposes the next one. If nothing is
// left to expose the slot stays empty and the next draw fails instead.
func (t *Table) takeHot() (models.Card, error) {
	if err := t.ensureHot(); err != nil {
		return models.Card{}, err
	}
	c := *t.UndealtPile.Hot
	t.UndealtPile.Hot = nil
	if err := t.ensureHot(); err != nil {
		t.logger().Warn("Undealt and dead piles are empty; hot slot left empty.")
	}
	return c, nil
}
