// Package deck builds and shuffles the physical card stock.
package deck

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
)

// Provider produces freshly shuffled stock and reshuffles cards with the same randomness source.
type Provider interface {
	Produce(deckCount int, includeJokers bool, jokerCount int) ([]models.Card, error)
	Shuffle(cards []models.Card)
}

// StandardProvider builds standard 52-card decks plus jokers.
// Card ids are drawn from the same source as the shuffle, so a seeded
// *rand.Rand yields the same deck, ids included, every time.
type StandardProvider struct {
	rng *rand.Rand
}

// NewProvider returns a provider driven by rng. A nil rng gets a randomly seeded source.
func NewProvider(rng *rand.Rand) *StandardProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &StandardProvider{rng: rng}
}

// NewSeededProvider is shorthand for a deterministic provider.
func NewSeededProvider(seed int64) *StandardProvider {
	return NewProvider(rand.New(rand.NewSource(seed)))
}

// Produce returns deckCount decks plus jokerCount jokers (if includeJokers), shuffled.
func (p *StandardProvider) Produce(deckCount int, includeJokers bool, jokerCount int) ([]models.Card, error) {
	if deckCount < 1 {
		return nil, fmt.Errorf("deck count must be at least 1, got %d", deckCount)
	}
	if jokerCount < 0 {
		return nil, fmt.Errorf("joker count must be non-negative, got %d", jokerCount)
	}

	size := deckCount * len(models.Suits) * len(models.Ranks)
	if includeJokers {
		size += jokerCount
	}
	cards := make([]models.Card, 0, size)

	for d := 1; d <= deckCount; d++ {
		for _, suit := range models.Suits {
			for _, rank := range models.Ranks {
				id, err := p.newID()
				if err != nil {
					return nil, err
				}
				cards = append(cards, models.NewCard(id, suit, rank, d))
			}
		}
	}
	if includeJokers {
		for i := 0; i < jokerCount; i++ {
			id, err := p.newID()
			if err != nil {
				return nil, err
			}
			// spread jokers across the physical decks
			cards = append(cards, models.NewJoker(id, i%deckCount+1))
		}
	}

	p.Shuffle(cards)
	return cards, nil
}

// Shuffle permutes cards in place.
func (p *StandardProvider) Shuffle(cards []models.Card) {
	p.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func (p *StandardProvider) newID() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(p.rng)
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate card id: %w", err)
	}
	return id, nil
}
