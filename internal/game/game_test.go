// internal/game/game_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/deck"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stackProvider always produces the same cards, unshuffled, and counts reshuffles.
type stackProvider struct {
	cards    []models.Card
	shuffles int
}

func (s *stackProvider) Produce(int, bool, int) ([]models.Card, error) {
	return append([]models.Card(nil), s.cards...), nil
}

func (s *stackProvider) Shuffle([]models.Card) {
	s.shuffles++
}

func card(suit models.Suit, rank models.Rank) models.Card {
	return models.NewCard(uuid.New(), suit, rank, 1)
}

func joker() models.Card {
	return models.NewJoker(uuid.New(), 1)
}

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("player%d", i+1)
	}
	return names
}

// setupTable creates a seeded table with n players.
func setupTable(t *testing.T, n int, opts ...Option) *Table {
	t.Helper()
	opts = append([]Option{WithProvider(deck.NewSeededProvider(42))}, opts...)
	tbl, err := NewTable(playerNames(n), opts...)
	require.NoError(t, err)
	return tbl
}

// setupPlay creates a table and advances it to the play phase.
func setupPlay(t *testing.T, n int, opts ...Option) *Table {
	t.Helper()
	tbl := setupTable(t, n, opts...)
	require.NoError(t, tbl.StartRound())
	require.NoError(t, tbl.FlipFirstCold())
	return tbl
}

// allCards gathers every card the table knows about, wherever it sits.
func allCards(tbl *Table) []models.Card {
	var out []models.Card
	for _, p := range tbl.Players {
		out = append(out, p.Hand...)
		for _, m := range p.Melds {
			out = append(out, m.CardList()...)
		}
	}
	if tbl.DiscardPile.Cold != nil {
		out = append(out, *tbl.DiscardPile.Cold)
	}
	out = append(out, tbl.DiscardPile.Dead...)
	if tbl.UndealtPile.Hot != nil {
		out = append(out, *tbl.UndealtPile.Hot)
	}
	return append(out, tbl.UndealtPile.Remaining...)
}

func requireUniqueCards(t *testing.T, tbl *Table, total int) {
	t.Helper()
	cards := allCards(tbl)
	require.Len(t, cards, total)
	seen := make(map[uuid.UUID]bool, len(cards))
	for _, c := range cards {
		require.False(t, seen[c.ID], "card %s appears twice", c)
		seen[c.ID] = true
	}
}

func TestNewTableRejectsPlayerCount(t *testing.T) {
	for _, n := range []int{0, 2, 7} {
		_, err := NewTable(playerNames(n))
		assert.ErrorIs(t, err, ErrInvalidPlayerCount, "n=%d", n)
	}
}

func TestNewTableRejectsBadRules(t *testing.T) {
	r := DefaultRules()
	r.DeckCount = 0
	_, err := NewTable(playerNames(3), WithRules(r))
	assert.Error(t, err)
}

func TestStartRoundAndFlip(t *testing.T) {
	tbl := setupTable(t, 3)
	assert.Equal(t, PhaseDeal, tbl.Phase)
	assert.Len(t, tbl.UndealtPile.Remaining, 108)

	require.NoError(t, tbl.StartRound())
	assert.Equal(t, PhaseAnalyze, tbl.Phase)
	assert.NotNil(t, tbl.UndealtPile.Hot)

	require.NoError(t, tbl.FlipFirstCold())
	assert.Equal(t, PhasePlay, tbl.Phase)
	assert.Equal(t, 1, tbl.ActiveSeat)
	require.NotNil(t, tbl.DiscardPile.Cold)
	assert.NotNil(t, tbl.UndealtPile.Hot)
	assert.Empty(t, tbl.DiscardPile.Dead)
	for _, p := range tbl.Players {
		assert.Len(t, p.Hand, 11)
	}
}

func TestDealConservesCards(t *testing.T) {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			tbl := setupPlay(t, n)
			// hot plus remaining stock
			assert.Equal(t, 108-11*n-1, len(tbl.UndealtPile.Remaining)+1)
			requireUniqueCards(t, tbl, 108)
		})
	}
}

func TestDealOrderStartsLeftOfDealer(t *testing.T) {
	cards := make([]models.Card, 0, 8)
	for _, r := range []models.Rank{models.Three, models.Four, models.Five, models.Six, models.Seven, models.Eight, models.Nine, models.Ten} {
		cards = append(cards, card(models.Hearts, r))
	}
	r := DefaultRules()
	r.HandSize = 2
	tbl := setupTable(t, 3, WithProvider(&stackProvider{cards: cards}), WithRules(r))
	require.NoError(t, tbl.StartRound())

	// The stock is popped from the end: 10 goes to seat 1, 9 to seat 2, 8 to the dealer.
	assert.Equal(t, models.Ten, tbl.Players[1].Hand[0].Rank)
	assert.Equal(t, models.Nine, tbl.Players[2].Hand[0].Rank)
	assert.Equal(t, models.Eight, tbl.Players[0].Hand[0].Rank)
	assert.Equal(t, models.Seven, tbl.Players[1].Hand[1].Rank)
	require.NotNil(t, tbl.UndealtPile.Hot)
	assert.Equal(t, models.Four, tbl.UndealtPile.Hot.Rank)
}

func TestStartRoundNotEnoughCards(t *testing.T) {
	cards := []models.Card{
		card(models.Hearts, models.Three), card(models.Hearts, models.Four), card(models.Hearts, models.Five),
		card(models.Hearts, models.Six), card(models.Hearts, models.Seven),
	}
	r := DefaultRules()
	r.HandSize = 2
	tbl := setupTable(t, 3, WithProvider(&stackProvider{cards: cards}), WithRules(r))

	err := tbl.StartRound()
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, PhaseDeal, tbl.Phase)
	for _, p := range tbl.Players {
		assert.Empty(t, p.Hand)
	}
	assert.Len(t, tbl.UndealtPile.Remaining, 5)
}

func TestEnsureHotIsIdempotent(t *testing.T) {
	tbl := setupPlay(t, 4)
	hot := *tbl.UndealtPile.Hot
	remaining := len(tbl.UndealtPile.Remaining)

	require.NoError(t, tbl.ensureHot())
	require.NoError(t, tbl.ensureHot())
	assert.Equal(t, hot.ID, tbl.UndealtPile.Hot.ID)
	assert.Len(t, tbl.UndealtPile.Remaining, remaining)
}

func TestPhaseGuards(t *testing.T) {
	tbl := setupTable(t, 3)
	assert.ErrorIs(t, tbl.FlipFirstCold(), ErrWrongPhase)
	assert.ErrorIs(t, tbl.ActiveDrawsHot(), ErrWrongPhase)
	assert.ErrorIs(t, tbl.ClaimColdViaMe(1), ErrWrongPhase)
	_, err := tbl.EndRound(0)
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.ErrorIs(t, tbl.PrepareNextRound(), ErrWrongPhase)

	require.NoError(t, tbl.StartRound())
	assert.ErrorIs(t, tbl.StartRound(), ErrWrongPhase)
}

func TestAdvanceTurnWraps(t *testing.T) {
	tbl := setupPlay(t, 3)
	require.NoError(t, tbl.AdvanceTurn())
	assert.Equal(t, 2, tbl.ActiveSeat)
	require.NoError(t, tbl.AdvanceTurn())
	assert.Equal(t, 0, tbl.ActiveSeat)
}

func TestActionHookNumbersActions(t *testing.T) {
	var recs []models.ActionRecord
	tbl := setupPlay(t, 3, WithActionHook(func(rec models.ActionRecord) {
		recs = append(recs, rec)
	}))

	require.GreaterOrEqual(t, len(recs), 3)
	assert.Equal(t, "table_create", recs[0].ActionType)
	assert.Equal(t, "round_start", recs[1].ActionType)
	assert.Equal(t, "flip_first_cold", recs[2].ActionType)
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.ActionIndex)
		assert.Equal(t, tbl.ID, rec.TableID)
		assert.Equal(t, 1, rec.Round)
	}
}

func TestEndRoundScoresAndAdvances(t *testing.T) {
	tbl := setupPlay(t, 3)
	tbl.Players[0].Hand = nil
	tbl.Players[0].HasGoneDown = true
	tbl.Players[1].Hand = []models.Card{card(models.Clubs, models.King)}
	tbl.Players[1].HasGoneDown = true
	tbl.Players[1].CurrentHand = 3
	tbl.Players[2].Hand = []models.Card{card(models.Spades, models.Ace), joker()}

	results, err := tbl.EndRound(0)
	require.NoError(t, err)
	assert.Equal(t, PhaseRoundEnd, tbl.Phase)
	require.Len(t, results, 3)

	assert.True(t, results[0].Winner)
	assert.Equal(t, 0, tbl.Players[0].Score)
	assert.Equal(t, 2, tbl.Players[0].CurrentHand)

	assert.Equal(t, 10, results[1].Points)
	assert.Equal(t, 10, tbl.Players[1].Score)
	assert.Equal(t, 4, tbl.Players[1].CurrentHand)

	assert.Equal(t, 70, results[2].Points)
	assert.Equal(t, 70, tbl.Players[2].Score)
	assert.Equal(t, 1, tbl.Players[2].CurrentHand)

	standings := tbl.Standings()
	assert.Equal(t, 0, standings[0].SeatIndex)
	assert.Equal(t, 2, standings[2].SeatIndex)
}

func TestEndRoundWithoutWinnerScoresEveryone(t *testing.T) {
	tbl := setupPlay(t, 3)
	for _, p := range tbl.Players {
		p.Hand = []models.Card{card(models.Hearts, models.Five)}
	}
	results, err := tbl.EndRound(NoWinner)
	require.NoError(t, err)
	for i, res := range results {
		assert.False(t, res.Winner)
		assert.Equal(t, 5, tbl.Players[i].Score)
	}
}

func TestEndRoundInvalidWinner(t *testing.T) {
	tbl := setupPlay(t, 3)
	_, err := tbl.EndRound(5)
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.Equal(t, PhasePlay, tbl.Phase)
}

func TestLastContractEndsGame(t *testing.T) {
	tbl := setupPlay(t, 3)
	tbl.Players[1].CurrentHand = models.MaxHandLevel
	tbl.Players[1].HasGoneDown = true
	tbl.Players[2].CurrentHand = models.MaxHandLevel

	_, err := tbl.EndRound(1)
	require.NoError(t, err)
	assert.Equal(t, PhaseGameEnd, tbl.Phase)
	assert.Equal(t, models.MaxHandLevel, tbl.Players[1].CurrentHand)
	assert.Equal(t, models.MaxHandLevel, tbl.Players[2].CurrentHand)
	assert.ErrorIs(t, tbl.PrepareNextRound(), ErrGameOver)
}

func TestPrepareNextRound(t *testing.T) {
	tbl := setupPlay(t, 4)
	require.NoError(t, tbl.ClaimColdViaMe(3))
	tbl.Players[2].HasGoneDown = true
	_, err := tbl.EndRound(NoWinner)
	require.NoError(t, err)

	require.NoError(t, tbl.PrepareNextRound())
	assert.Equal(t, PhaseDeal, tbl.Phase)
	assert.Equal(t, 2, tbl.RoundNumber)
	assert.Equal(t, 1, tbl.DealerSeat)
	assert.Equal(t, 2, tbl.ActiveSeat)
	assert.Nil(t, tbl.DiscardPile.Cold)
	assert.Empty(t, tbl.DiscardPile.Dead)
	assert.Nil(t, tbl.UndealtPile.Hot)
	assert.Len(t, tbl.UndealtPile.Remaining, 108)
	for _, p := range tbl.Players {
		assert.Empty(t, p.Hand)
		assert.Empty(t, p.Melds)
		assert.False(t, p.HasGoneDown)
		assert.Zero(t, p.MeClaimsUsed)
	}
	assert.Equal(t, 2, tbl.Players[2].CurrentHand)

	require.NoError(t, tbl.StartRound())
	require.NoError(t, tbl.FlipFirstCold())
	assert.Equal(t, 2, tbl.ActiveSeat)
	requireUniqueCards(t, tbl, 108)
}

func TestTryGoOut(t *testing.T) {
	tbl := setupPlay(t, 3)
	out, err := tbl.TryGoOut(1)
	require.NoError(t, err)
	assert.False(t, out)
	assert.Equal(t, PhasePlay, tbl.Phase)

	tbl.Players[1].Hand = []models.Card{}
	out, err = tbl.TryGoOut(1)
	require.NoError(t, err)
	assert.True(t, out)
	assert.Equal(t, PhaseRoundEnd, tbl.Phase)
	assert.Zero(t, tbl.Players[1].Score)
	assert.NotZero(t, tbl.Players[0].Score)
}
