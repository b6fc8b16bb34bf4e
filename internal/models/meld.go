// internal/models/meld.go
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// MeldType tags the two meld shapes.
type MeldType string

const (
	MeldTypeSet MeldType = "set"
	MeldTypeRun MeldType = "run"
)

// Meld is a face-up grouping of cards. It is implemented only by SetMeld and RunMeld.
type Meld interface {
	MeldID() uuid.UUID
	Type() MeldType
	CardList() []Card
	Wilds() []int
	isMeld()
}

// SetMeld is a group of cards of one natural rank (never 2), wilds allowed below a majority.
type SetMeld struct {
	ID            uuid.UUID
	Rank          Rank
	Cards         []Card
	WildPositions []int
}

// RunMeld is a same-suit sequence ordered from lowest to highest logical value.
type RunMeld struct {
	ID            uuid.UUID
	Suit          Suit
	Cards         []Card
	WildPositions []int
}

func (m SetMeld) MeldID() uuid.UUID { return m.ID }
func (m SetMeld) Type() MeldType    { return MeldTypeSet }
func (m SetMeld) CardList() []Card  { return m.Cards }
func (m SetMeld) Wilds() []int      { return m.WildPositions }
func (SetMeld) isMeld()             {}

func (m RunMeld) MeldID() uuid.UUID { return m.ID }
func (m RunMeld) Type() MeldType    { return MeldTypeRun }
func (m RunMeld) CardList() []Card  { return m.Cards }
func (m RunMeld) Wilds() []int      { return m.WildPositions }
func (RunMeld) isMeld()             {}

// IsWildPosition reports whether idx is listed in the meld's wild positions.
func IsWildPosition(m Meld, idx int) bool {
	for _, p := range m.Wilds() {
		if p == idx {
			return true
		}
	}
	return false
}

// WithID returns a copy of m carrying the given id.
func WithID(m Meld, id uuid.UUID) Meld {
	switch v := m.(type) {
	case SetMeld:
		v.ID = id
		return v
	case RunMeld:
		v.ID = id
		return v
	}
	return m
}

// MeldRecord is the flat JSON form of a meld, used for snapshots and persistence.
type MeldRecord struct {
	ID            uuid.UUID `json:"id"`
	Type          MeldType  `json:"type"`
	Rank          Rank      `json:"rank,omitempty"`
	Suit          Suit      `json:"suit,omitempty"`
	Cards         []Card    `json:"cards"`
	WildPositions []int     `json:"wildPositions"`
}

// ToRecord flattens a meld for serialisation.
func ToRecord(m Meld) MeldRecord {
	rec := MeldRecord{
		ID:            m.MeldID(),
		Type:          m.Type(),
		Cards:         append([]Card(nil), m.CardList()...),
		WildPositions: append([]int{}, m.Wilds()...),
	}
	switch v := m.(type) {
	case SetMeld:
		rec.Rank = v.Rank
	case RunMeld:
		rec.Suit = v.Suit
	}
	return rec
}

// FromRecord rebuilds a meld from its flat form.
func FromRecord(rec MeldRecord) (Meld, error) {
	switch rec.Type {
	case MeldTypeSet:
		return SetMeld{ID: rec.ID, Rank: rec.Rank, Cards: rec.Cards, WildPositions: rec.WildPositions}, nil
	case MeldTypeRun:
		return RunMeld{ID: rec.ID, Suit: rec.Suit, Cards: rec.Cards, WildPositions: rec.WildPositions}, nil
	default:
		return nil, fmt.Errorf("unknown meld type %q", rec.Type)
	}
}
