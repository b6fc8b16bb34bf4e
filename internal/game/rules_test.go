// internal/game/rules_test.go
package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesUpdate(t *testing.T) {
	r := DefaultRules()
	err := r.Update(map[string]interface{}{
		"handSize":     float64(9),
		"allowAceWrap": false,
		"jokerCount":   int64(2),
		"playWindowMs": 45000,
		"deckCount":    nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, r.HandSize)
	assert.False(t, r.AllowAceWrap)
	assert.Equal(t, 2, r.JokerCount)
	assert.Equal(t, 45*time.Second, r.Timers.PlayWindow)
	assert.Equal(t, 2, r.DeckCount)
	assert.Equal(t, 15*time.Second, r.Timers.Analyze)
}

func TestRulesUpdateIsAllOrNothing(t *testing.T) {
	r := DefaultRules()
	err := r.Update(map[string]interface{}{
		"handSize":     7,
		"allowAceWrap": "no",
	})
	assert.Error(t, err)
	assert.Equal(t, DefaultRules(), r)

	err = r.Update(map[string]interface{}{"deckCount": 0})
	assert.Error(t, err)
	assert.Equal(t, 2, r.DeckCount)
}

func TestParseRules(t *testing.T) {
	out, err := ParseRules(map[string]interface{}{"meClaimLimit": 1}, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 1, out.MeClaimLimit)
	assert.NoError(t, out.Validate())
}

func TestRulesDriveTable(t *testing.T) {
	r := DefaultRules()
	r.DeckCount = 1
	r.IncludeJokers = false
	r.HandSize = 7
	r.MeClaimLimit = 1
	tbl := setupPlay(t, 3, WithRules(r))

	requireUniqueCards(t, tbl, 52)
	for _, p := range tbl.Players {
		assert.Len(t, p.Hand, 7)
	}
	require.NoError(t, tbl.ClaimColdViaMe(0))
	assert.ErrorIs(t, tbl.ClaimColdViaMe(0), ErrMeClaimLimitReached)
}
