package models

import "github.com/google/uuid"

// MaxHandLevel is the last contract a player can be asked to satisfy.
const MaxHandLevel = 7

// PlayerState is one seat at the table.
type PlayerState struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SeatIndex int       `json:"seatIndex"`

	// Hand is private to the player.
	Hand []Card `json:"hand"`
	// Melds are face-up; only the owner (or others with natural cards) may extend them.
	Melds []Meld `json:"-"`

	HasGoneDown bool `json:"hasGoneDown"`
	// CurrentHand is the contract level (1..7) the player must meet to go down.
	CurrentHand int `json:"currentHand"`
	// Score is cumulative; lower is better.
	Score        int `json:"score"`
	MeClaimsUsed int `json:"meClaimsUsed"`
}

func NewPlayer(name string, seat int) (*PlayerState, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	return &PlayerState{
		ID:          id,
		Name:        name,
		SeatIndex:   seat,
		Hand:        []Card{},
		Melds:       []Meld{},
		CurrentHand: 1,
	}, nil
}

// FindMeld returns the index of the meld with the given id, or -1.
func (p *PlayerState) FindMeld(id uuid.UUID) int {
	for i, m := range p.Melds {
		if m.MeldID() == id {
			return i
		}
	}
	return -1
}

// HandIndex returns the index of the card with the given id in the hand, or -1.
func (p *PlayerState) HandIndex(id uuid.UUID) int {
	for i, c := range p.Hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ResetForRound clears everything that only lives for one round.
func (p *PlayerState) ResetForRound() {
	p.Hand = []Card{}
	p.Melds = []Meld{}
	p.HasGoneDown = false
	p.MeClaimsUsed = 0
}
