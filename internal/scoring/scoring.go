// Package scoring totals the penalty points left in a hand at round end.
package scoring

import "github.com/jason-s-yu/contracts/internal/models"

// Calculator turns cards into points.
type Calculator interface {
	Points(card models.Card) int
	Total(cards []models.Card) int
}

// Standard is the house point table: 2=25, 3-9=5, 10/J/Q/K=10, A=20, joker=50.
type Standard struct{}

func (Standard) Points(c models.Card) int {
	if c.IsJoker() {
		return 50
	}
	switch {
	case c.Rank == models.Two:
		return 25
	case c.Rank >= models.Three && c.Rank <= models.Nine:
		return 5
	case c.Rank >= models.Ten && c.Rank <= models.King:
		return 10
	case c.Rank == models.Ace:
		return 20
	}
	return 0
}

func (s Standard) Total(cards []models.Card) int {
	sum := 0
	for _, c := range cards {
		sum += s.Points(c)
	}
	return sum
}
