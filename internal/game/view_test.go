package game

import (
	"encoding/json"
	"testing"

	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatViewHidesOtherHands(t *testing.T) {
	tbl := setupPlay(t, 3)
	downWithTwoSets(t, tbl, 2)

	v, err := tbl.SeatView(0)
	require.NoError(t, err)
	assert.Equal(t, PhasePlay, v.Phase)
	assert.Equal(t, 0, v.ViewerSeat)
	assert.True(t, v.HotPresent)
	require.NotNil(t, v.Cold)
	assert.Equal(t, tbl.DiscardPile.Cold.ID, v.Cold.ID)
	assert.Equal(t, 2, v.Requirement.Sets)
	require.Len(t, v.Players, 3)

	assert.Len(t, v.Players[0].Hand, 11)
	assert.Nil(t, v.Players[1].Hand)
	assert.Equal(t, 11, v.Players[1].HandSize)
	assert.True(t, v.Players[1].IsActive)
	assert.Len(t, v.Players[2].Melds, 2)
	assert.Equal(t, models.MeldTypeSet, v.Players[2].Melds[0].Type)

	_, err = tbl.SeatView(3)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestSeatViewJSONHasNoHotCard(t *testing.T) {
	tbl := setupPlay(t, 3)
	v, err := tbl.SeatView(1)
	require.NoError(t, err)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), tbl.UndealtPile.Hot.ID.String())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tbl := setupPlay(t, 3)
	downWithTwoSets(t, tbl, 1)
	snap := tbl.Snapshot()

	assert.Equal(t, tbl.ID, snap.TableID)
	require.NotNil(t, snap.Undealt.Hot)
	assert.Len(t, snap.Players[1].Melds, 2)

	snap.Players[0].Hand[0] = joker()
	snap.Undealt.Remaining[0] = joker()
	assert.NotEqual(t, snap.Players[0].Hand[0].ID, tbl.Players[0].Hand[0].ID)
	assert.NotEqual(t, snap.Undealt.Remaining[0].ID, tbl.UndealtPile.Remaining[0].ID)
	assert.NotSame(t, snap.Discard.Cold, tbl.DiscardPile.Cold)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"melds"`)
}
