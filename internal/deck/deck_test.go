package deck

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduceStandardDeal(t *testing.T) {
	p := NewSeededProvider(1)
	cards, err := p.Produce(2, true, 4)
	require.NoError(t, err)
	assert.Len(t, cards, 108)

	ids := make(map[uuid.UUID]bool, len(cards))
	jokers := 0
	perDeck := map[int]int{}
	for _, c := range cards {
		assert.False(t, ids[c.ID], "duplicate card id %s", c.ID)
		ids[c.ID] = true
		perDeck[c.FromDeck]++
		if c.IsJoker() {
			jokers++
			assert.Equal(t, models.SuitNone, c.Suit)
			continue
		}
		assert.True(t, c.IsNatural())
	}
	assert.Equal(t, 4, jokers)
	assert.Equal(t, 54, perDeck[1])
	assert.Equal(t, 54, perDeck[2])
}

func TestProduceWithoutJokers(t *testing.T) {
	cards, err := NewSeededProvider(2).Produce(3, false, 4)
	require.NoError(t, err)
	assert.Len(t, cards, 156)
	for _, c := range cards {
		assert.False(t, c.IsJoker())
	}
}

func TestProduceRejectsBadCounts(t *testing.T) {
	p := NewSeededProvider(3)
	_, err := p.Produce(0, true, 4)
	assert.Error(t, err)
	_, err = p.Produce(2, true, -1)
	assert.Error(t, err)
}

func TestSeededProviderIsDeterministic(t *testing.T) {
	a, err := NewSeededProvider(42).Produce(2, true, 4)
	require.NoError(t, err)
	b, err := NewSeededProvider(42).Produce(2, true, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeededProvider(43).Produce(2, true, 4)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestShuffleKeepsCards(t *testing.T) {
	p := NewSeededProvider(7)
	cards, err := p.Produce(1, false, 0)
	require.NoError(t, err)
	before := append([]models.Card(nil), cards...)
	p.Shuffle(cards)
	assert.ElementsMatch(t, before, cards)
}
