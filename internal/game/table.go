// internal/game/table.go
package game

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/contracts/internal/deck"
	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/jason-s-yu/contracts/internal/rules"
	"github.com/jason-s-yu/contracts/internal/scoring"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers = 3
	MaxPlayers = 6
)

// Phase is the externally observable progress marker of a table.
type Phase string

const (
	PhaseDeal     Phase = "deal"
	PhaseAnalyze  Phase = "analyze"
	PhasePlay     Phase = "play"
	PhaseRoundEnd Phase = "round_end"
	PhaseGameEnd  Phase = "game_end"
)

// OnActionFunc receives every committed operation, e.g. to push it to the historian queue.
type OnActionFunc func(rec models.ActionRecord)

// Table is the whole mutable state of one match. It has no lock of its own:
// callers must serialise every operation on a table (see Store).
type Table struct {
	ID          uuid.UUID
	Players     []*models.PlayerState
	DealerSeat  int
	ActiveSeat  int
	Phase       Phase
	DiscardPile DiscardPile
	UndealtPile UndealtPile
	RoundNumber int
	Rules       TableRules

	// OnAction is invoked after each committed operation. If nil, nothing is recorded.
	OnAction OnActionFunc

	provider    deck.Provider
	scorer      scoring.Calculator
	log         logrus.FieldLogger
	actionIndex int
	lastResults []RoundResult
	now         func() time.Time
}

// Option configures a table at creation.
type Option func(*Table)

// WithProvider swaps the deck provider (and with it the randomness source).
func WithProvider(p deck.Provider) Option {
	return func(t *Table) { t.provider = p }
}

// WithScorer swaps the scoring calculator.
func WithScorer(s scoring.Calculator) Option {
	return func(t *Table) { t.scorer = s }
}

// WithLogger sets the logger; the table adds its own fields.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Table) { t.log = l }
}

// WithRules replaces the default table rules.
func WithRules(r TableRules) Option {
	return func(t *Table) { t.Rules = r }
}

// WithActionHook sets OnAction.
func WithActionHook(fn OnActionFunc) Option {
	return func(t *Table) { t.OnAction = fn }
}

// NewTable seats the named players in order, shuffles a fresh stock and leaves
// the table in the deal phase with seat 0 dealing.
func NewTable(names []string, opts ...Option) (*Table, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(names))
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	t := &Table{
		ID:          id,
		RoundNumber: 1,
		Phase:       PhaseDeal,
		Rules:       DefaultRules(),
		DiscardPile: DiscardPile{Dead: []models.Card{}},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.Rules.Validate(); err != nil {
		return nil, err
	}
	if t.provider == nil {
		t.provider = deck.NewProvider(nil)
	}
	if t.scorer == nil {
		t.scorer = scoring.Standard{}
	}
	if t.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		t.log = quiet
	}
	t.log = t.log.WithField("table", t.ID)

	for i, name := range names {
		p, err := models.NewPlayer(name, i)
		if err != nil {
			return nil, err
		}
		t.Players = append(t.Players, p)
	}

	stock, err := t.produceStock()
	if err != nil {
		return nil, err
	}
	t.UndealtPile = UndealtPile{Remaining: stock}
	t.DealerSeat = 0
	t.ActiveSeat = 1 % len(t.Players)

	t.logger().Infof("Table created with %d players and %d cards.", len(t.Players), len(stock))
	t.logAction(uuid.Nil, "table_create", map[string]interface{}{"players": len(t.Players), "stockSize": len(stock)})
	return t, nil
}

// Player returns the player in seat, or ErrInvalidSeat.
func (t *Table) Player(seat int) (*models.PlayerState, error) {
	if seat < 0 || seat >= len(t.Players) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return t.Players[seat], nil
}

// runOptions derives validator options from the table rules.
func (t *Table) runOptions() rules.RunOptions {
	return rules.RunOptions{AllowAceWrap: t.Rules.AllowAceWrap}
}

func (t *Table) produceStock() ([]models.Card, error) {
	return t.provider.Produce(t.Rules.DeckCount, t.Rules.IncludeJokers, t.Rules.JokerCount)
}

// requirePhase fails with ErrWrongPhase unless the table is in one of the given phases.
func (t *Table) requirePhase(op string, phases ...Phase) error {
	for _, ph := range phases {
		if t.Phase == ph {
			return nil
		}
	}
	return fmt.Errorf("%w: %s during %s", ErrWrongPhase, op, t.Phase)
}

func (t *Table) nextSeat(seat int) int {
	return (seat + 1) % len(t.Players)
}

func (t *Table) logger() logrus.FieldLogger {
	return t.log.WithField("round", t.RoundNumber)
}

// logAction numbers the action and hands it to OnAction.
func (t *Table) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	t.actionIndex++
	if t.OnAction == nil {
		return
	}
	t.OnAction(models.ActionRecord{
		TableID:       t.ID,
		Round:         t.RoundNumber,
		ActionIndex:   t.actionIndex,
		ActorPlayerID: actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     t.now().UnixMilli(),
	})
}
