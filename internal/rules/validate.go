// Package rules decides whether an arrangement of cards forms a legal meld.
// Every function here is pure: no shared state, no mutation of its inputs.
package rules

import (
	"errors"

	"github.com/jason-s-yu/contracts/internal/models"
)

// ErrInvalidMeld matches every *MeldError.
var ErrInvalidMeld = errors.New("invalid meld")

// MeldError explains why a meld was rejected.
type MeldError struct {
	Reason string
}

func (e *MeldError) Error() string { return "invalid meld: " + e.Reason }

func (e *MeldError) Is(target error) bool { return target == ErrInvalidMeld }

func invalid(reason string) error { return &MeldError{Reason: reason} }

const (
	minSetLength = 3
	minRunLength = 4
	// maxRunLength is every distinct rank once around the 2..A cycle, plus one.
	maxRunLength = 14
)

// RunOptions tune run validation.
type RunOptions struct {
	// AllowAceWrap permits K-A-2 adjacency. Ace is always allowed high or low.
	AllowAceWrap bool
}

// DefaultRunOptions allows the King-Ace-2 wrap.
func DefaultRunOptions() RunOptions {
	return RunOptions{AllowAceWrap: true}
}

// ValidateSet checks a set meld.
func ValidateSet(m models.SetMeld) error {
	if m.Rank == models.Two {
		return invalid("sets of natural 2s are not allowed")
	}
	if len(m.Cards) < minSetLength {
		return invalid("set must have at least 3 cards")
	}

	wild := wildIndex(m.WildPositions)
	for i, c := range m.Cards {
		if wild[i] {
			continue
		}
		if c.IsJoker() || c.Rank == models.Two || c.Rank != m.Rank {
			return invalid("natural cards in a set must match the set rank and cannot be jokers or 2s")
		}
	}

	wildCount := len(wild)
	naturalCount := len(m.Cards) - wildCount
	if wildCount > max(0, naturalCount-1) {
		return invalid("too many wilds in set (must be <= natural - 1)")
	}

	if err := checkWildPositions(m.Cards, m.WildPositions); err != nil {
		return err
	}
	return nil
}

// ValidateRun checks a run meld.
func ValidateRun(m models.RunMeld, opts RunOptions) error {
	n := len(m.Cards)
	if n < minRunLength {
		return invalid("run must have at least 4 cards")
	}
	if n > maxRunLength {
		return invalid("run cannot exceed 14 cards")
	}

	wild := wildIndex(m.WildPositions)
	for i := 1; i < n; i++ {
		if wild[i-1] && wild[i] {
			return invalid("no consecutive wilds allowed in runs")
		}
	}

	if err := checkWildPositions(m.Cards, m.WildPositions); err != nil {
		return err
	}

	seen := make(map[int]bool, n)
	for i, c := range m.Cards {
		if wild[i] {
			continue
		}
		if !c.IsNatural() {
			return invalid("natural cards must have rank and suit")
		}
		if c.Suit != m.Suit {
			return invalid("all natural cards in a run must match the run suit")
		}
		v := c.Rank.Value()
		if seen[v] {
			return invalid("runs cannot contain duplicate ranks")
		}
		seen[v] = true
	}

	wildCount := len(wild)
	naturalCount := n - wildCount
	if naturalCount == 0 {
		return invalid("run must contain at least one natural card")
	}
	if wildCount > naturalCount {
		return invalid("too many wilds in run (must be <= natural count)")
	}

	if _, err := InferRunValues(m, opts); err != nil {
		return err
	}
	return nil
}

// ValidateMeld dispatches on the meld variant, allowing the ace wrap.
func ValidateMeld(m models.Meld) error {
	return ValidateMeldWith(m, DefaultRunOptions())
}

// ValidateMeldWith dispatches on the meld variant using the given run options.
func ValidateMeldWith(m models.Meld, opts RunOptions) error {
	switch v := m.(type) {
	case models.SetMeld:
		return ValidateSet(v)
	case models.RunMeld:
		return ValidateRun(v, opts)
	case nil:
		return invalid("missing meld")
	default:
		return invalid("unknown meld type")
	}
}

// wildIndex turns a position list into a lookup; duplicate entries collapse.
func wildIndex(positions []int) map[int]bool {
	idx := make(map[int]bool, len(positions))
	for _, p := range positions {
		idx[p] = true
	}
	return idx
}

func checkWildPositions(cards []models.Card, positions []int) error {
	for _, p := range positions {
		if p < 0 || p >= len(cards) || !cards[p].IsWild() {
			return invalid("wild position must contain a wild card (joker or 2)")
		}
	}
	return nil
}
