// internal/game/view.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/jason-s-yu/contracts/internal/rules"
)

// PlayerView is one seat as seen by a requesting seat. Hands are only
// revealed to their owner; everyone sees melds and counts.
type PlayerView struct {
	PlayerID     uuid.UUID           `json:"playerId"`
	Name         string              `json:"name"`
	Seat         int                 `json:"seat"`
	HandSize     int                 `json:"handSize"`
	Hand         []models.Card       `json:"hand,omitempty"`
	Melds        []models.MeldRecord `json:"melds"`
	HasGoneDown  bool                `json:"hasGoneDown"`
	CurrentHand  int                 `json:"currentHand"`
	Score        int                 `json:"score"`
	MeClaimsUsed int                 `json:"meClaimsUsed"`
	IsActive     bool                `json:"isActive"`
}

// TableView is what a single seat may see of the table. The hot card is face
// down, so only its presence is reported.
type TableView struct {
	TableID     uuid.UUID             `json:"tableId"`
	Round       int                   `json:"round"`
	Phase       Phase                 `json:"phase"`
	DealerSeat  int                   `json:"dealerSeat"`
	ActiveSeat  int                   `json:"activeSeat"`
	ViewerSeat  int                   `json:"viewerSeat"`
	Cold        *models.Card          `json:"cold,omitempty"`
	HotPresent  bool                  `json:"hotPresent"`
	StockSize   int                   `json:"stockSize"`
	DeadSize    int                   `json:"deadSize"`
	Requirement rules.HandRequirement `json:"requirement"`
	Players     []PlayerView          `json:"players"`
	Rules       TableRules            `json:"rules"`
}

// SeatView builds the table as seen from seat.
func (t *Table) SeatView(seat int) (TableView, error) {
	viewer, err := t.Player(seat)
	if err != nil {
		return TableView{}, err
	}
	req, err := rules.Requirement(viewer.CurrentHand)
	if err != nil {
		return TableView{}, err
	}

	v := TableView{
		TableID:     t.ID,
		Round:       t.RoundNumber,
		Phase:       t.Phase,
		DealerSeat:  t.DealerSeat,
		ActiveSeat:  t.ActiveSeat,
		ViewerSeat:  seat,
		HotPresent:  t.UndealtPile.Hot != nil,
		StockSize:   len(t.UndealtPile.Remaining),
		DeadSize:    len(t.DiscardPile.Dead),
		Requirement: req,
		Rules:       t.Rules,
	}
	if t.DiscardPile.Cold != nil {
		cold := *t.DiscardPile.Cold
		v.Cold = &cold
	}
	for i, p := range t.Players {
		pv := PlayerView{
			PlayerID:     p.ID,
			Name:         p.Name,
			Seat:         p.SeatIndex,
			HandSize:     len(p.Hand),
			Melds:        meldRecords(p.Melds),
			HasGoneDown:  p.HasGoneDown,
			CurrentHand:  p.CurrentHand,
			Score:        p.Score,
			MeClaimsUsed: p.MeClaimsUsed,
			IsActive:     i == t.ActiveSeat,
		}
		if i == seat {
			pv.Hand = append([]models.Card{}, p.Hand...)
		}
		v.Players = append(v.Players, pv)
	}
	return v, nil
}

// PlayerSnapshot is a full, unredacted player record.
type PlayerSnapshot struct {
	models.PlayerState
	Melds []models.MeldRecord `json:"melds"`
}

// TableSnapshot is the complete table state, suitable for persistence.
type TableSnapshot struct {
	TableID     uuid.UUID        `json:"tableId"`
	Round       int              `json:"round"`
	Phase       Phase            `json:"phase"`
	DealerSeat  int              `json:"dealerSeat"`
	ActiveSeat  int              `json:"activeSeat"`
	Discard     DiscardPile      `json:"discard"`
	Undealt     UndealtPile      `json:"undealt"`
	Players     []PlayerSnapshot `json:"players"`
	Rules       TableRules       `json:"rules"`
	ActionIndex int              `json:"actionIndex"`
}

// Snapshot deep-copies the table state.
func (t *Table) Snapshot() TableSnapshot {
	s := TableSnapshot{
		TableID:     t.ID,
		Round:       t.RoundNumber,
		Phase:       t.Phase,
		DealerSeat:  t.DealerSeat,
		ActiveSeat:  t.ActiveSeat,
		Rules:       t.Rules,
		ActionIndex: t.actionIndex,
		Discard: DiscardPile{
			Cold: copyCard(t.DiscardPile.Cold),
			Dead: append([]models.Card{}, t.DiscardPile.Dead...),
		},
		Undealt: UndealtPile{
			Hot:       copyCard(t.UndealtPile.Hot),
			Remaining: append([]models.Card{}, t.UndealtPile.Remaining...),
		},
	}
	for _, p := range t.Players {
		ps := PlayerSnapshot{PlayerState: *p, Melds: meldRecords(p.Melds)}
		ps.Hand = append([]models.Card{}, p.Hand...)
		ps.PlayerState.Melds = nil
		s.Players = append(s.Players, ps)
	}
	return s
}

func meldRecords(melds []models.Meld) []models.MeldRecord {
	out := make([]models.MeldRecord, 0, len(melds))
	for _, m := range melds {
		out = append(out, models.ToRecord(m))
	}
	return out
}

func copyCard(c *models.Card) *models.Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
