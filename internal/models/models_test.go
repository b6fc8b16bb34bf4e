package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardWildness(t *testing.T) {
	joker := NewJoker(uuid.New(), 0)
	two := NewCard(uuid.New(), Hearts, Two, 0)
	ace := NewCard(uuid.New(), Spades, Ace, 1)

	assert.True(t, joker.IsWild())
	assert.False(t, joker.IsNatural())
	assert.True(t, two.IsWild())
	assert.True(t, two.IsNatural())
	assert.False(t, ace.IsWild())
	assert.Equal(t, 14, ace.Rank.Value())
}

func TestSameFaceIgnoresIdentity(t *testing.T) {
	a := NewCard(uuid.New(), Clubs, Seven, 0)
	b := NewCard(uuid.New(), Clubs, Seven, 1)
	c := NewCard(uuid.New(), Diamonds, Seven, 0)

	assert.True(t, a.SameFace(b))
	assert.False(t, a.SameFace(c))
	assert.True(t, NewJoker(uuid.New(), 0).SameFace(NewJoker(uuid.New(), 1)))
	assert.False(t, NewJoker(uuid.New(), 0).SameFace(a))
}

func TestCardJSON(t *testing.T) {
	c := NewCard(uuid.New(), Hearts, Queen, 1)
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"suit":"Hearts"`)
	assert.Contains(t, string(b), `"rank":"Q"`)

	var back Card
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c, back)

	j := NewJoker(uuid.New(), 0)
	b, err = json.Marshal(j)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "suit")
	assert.NotContains(t, string(b), "rank")
}

func TestUnmarshalRejectsUnknownFaces(t *testing.T) {
	var s Suit
	assert.Error(t, s.UnmarshalText([]byte("Stars")))
	var r Rank
	assert.Error(t, r.UnmarshalText([]byte("1")))
	require.NoError(t, r.UnmarshalText([]byte("k")))
	assert.Equal(t, King, r)
}

func TestMeldRecord(t *testing.T) {
	run := RunMeld{
		ID:            uuid.New(),
		Suit:          Spades,
		Cards:         []Card{NewCard(uuid.New(), Spades, Five, 0), NewJoker(uuid.New(), 0), NewCard(uuid.New(), Spades, Seven, 0)},
		WildPositions: []int{1},
	}
	rec := ToRecord(run)
	assert.Equal(t, MeldTypeRun, rec.Type)
	assert.Equal(t, Spades, rec.Suit)

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, run, back)
	assert.True(t, IsWildPosition(back, 1))
	assert.False(t, IsWildPosition(back, 0))

	_, err = FromRecord(MeldRecord{Type: "triple"})
	assert.Error(t, err)
}

func TestWithID(t *testing.T) {
	id := uuid.New()
	m := WithID(SetMeld{Rank: Nine}, id)
	assert.Equal(t, id, m.MeldID())
	assert.Equal(t, MeldTypeSet, m.Type())
}
