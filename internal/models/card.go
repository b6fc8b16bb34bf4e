// internal/models/card.go
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Suit is one of the four standard suits. The zero value means "no suit" and only appears on jokers.
type Suit uint8

const (
	SuitNone Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// Suits lists the four playable suits in deck order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var suitNames = map[Suit]string{
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
	Hearts:   "Hearts",
	Spades:   "Spades",
}

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "None"
}

// Symbol returns the unicode suit glyph, or an empty string for SuitNone.
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Valid reports whether s is one of the four playable suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid suit %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	for k, v := range suitNames {
		if strings.EqualFold(v, string(b)) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", string(b))
}

// Rank is the rank of a normal card. Its numeric value is the logical
// sequence value used by runs: 2..10, Jack=11, Queen=12, King=13, Ace=14.
type Rank uint8

const (
	RankNone Rank = 0
	Two      Rank = 2
	Three    Rank = 3
	Four     Rank = 4
	Five     Rank = 5
	Six      Rank = 6
	Seven    Rank = 7
	Eight    Rank = 8
	Nine     Rank = 9
	Ten      Rank = 10
	Jack     Rank = 11
	Queen    Rank = 12
	King     Rank = 13
	Ace      Rank = 14
)

// Ranks lists every rank in ascending order.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is a playable rank.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Value returns the logical sequence value of the rank (Ace high).
func (r Rank) Value() int {
	return int(r)
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.Valid() {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rank %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	s := strings.ToUpper(string(b))
	for _, rk := range Ranks {
		if rk.String() == s {
			*r = rk
			return nil
		}
	}
	return fmt.Errorf("unknown rank %q", string(b))
}

// CardKind separates normal cards from jokers.
type CardKind string

const (
	KindNormal CardKind = "normal"
	KindJoker  CardKind = "joker"
)

// Card is one physical card. Suit and Rank are only meaningful for KindNormal;
// use NewCard and NewJoker to build cards so the two shapes cannot be mixed.
type Card struct {
	ID       uuid.UUID `json:"id"`
	Kind     CardKind  `json:"kind"`
	Suit     Suit      `json:"suit,omitempty"`
	Rank     Rank      `json:"rank,omitempty"`
	FromDeck int       `json:"fromDeck"`
}

// NewCard builds a normal card.
func NewCard(id uuid.UUID, suit Suit, rank Rank, fromDeck int) Card {
	return Card{ID: id, Kind: KindNormal, Suit: suit, Rank: rank, FromDeck: fromDeck}
}

// NewJoker builds a joker.
func NewJoker(id uuid.UUID, fromDeck int) Card {
	return Card{ID: id, Kind: KindJoker, FromDeck: fromDeck}
}

// IsJoker reports whether the card is a joker.
func (c Card) IsJoker() bool {
	return c.Kind == KindJoker
}

// IsNatural reports whether the card is a normal card with a playable suit and rank.
func (c Card) IsNatural() bool {
	return c.Kind == KindNormal && c.Suit.Valid() && c.Rank.Valid()
}

// IsWild reports whether the card can stand in as a substitute: jokers and natural 2s.
func (c Card) IsWild() bool {
	return c.IsJoker() || (c.Kind == KindNormal && c.Rank == Two)
}

// SameFace reports whether two cards show the same face, ignoring identity.
func (c Card) SameFace(o Card) bool {
	if c.IsJoker() || o.IsJoker() {
		return c.IsJoker() && o.IsJoker()
	}
	return c.Kind == o.Kind && c.Suit == o.Suit && c.Rank == o.Rank
}

func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	return c.Rank.String() + c.Suit.Symbol()
}
