// internal/game/rules.go
package game

import (
	"errors"
	"fmt"
	"time"
)

// Timers are the configured turn windows. The engine stores them for the host's
// turn clock but never expires a turn itself.
type Timers struct {
	Analyze    time.Duration `json:"analyze"`
	DrawWindow time.Duration `json:"drawWindow"`
	PlayWindow time.Duration `json:"playWindow"`
}

// TableRules holds the per-table configuration.
type TableRules struct {
	DeckCount     int    `json:"deckCount"`     // physical decks shuffled together
	IncludeJokers bool   `json:"includeJokers"` // standard rules always include jokers
	JokerCount    int    `json:"jokerCount"`    // jokers added to the stock
	HandSize      int    `json:"handSize"`      // cards dealt to each player
	MeClaimLimit  int    `json:"meClaimLimit"`  // "Me!" claims per player per round
	AllowAceWrap  bool   `json:"allowAceWrap"`  // permit K-A-2 in runs
	Timers        Timers `json:"timers"`
}

// DefaultRules returns the standard two-deck, four-joker table.
func DefaultRules() TableRules {
	return TableRules{
		DeckCount:     2,
		IncludeJokers: true,
		JokerCount:    4,
		HandSize:      11,
		MeClaimLimit:  3,
		AllowAceWrap:  true,
		Timers: Timers{
			Analyze:    15 * time.Second,
			DrawWindow: 15 * time.Second,
			PlayWindow: 30 * time.Second,
		},
	}
}

// Update applies the rules present in newRules. Missing or nil keys keep their current value.
// Durations are given in milliseconds under analyzeMs, drawWindowMs and playWindowMs.
func (rules *TableRules) Update(newRules map[string]interface{}) error {
	next := *rules

	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	assignInt := func(field *int, key string, minVal int) error {
		if val, exists := newRules[key]; exists && val != nil {
			n, err := toInt(val)
			if err != nil {
				return fmt.Errorf("invalid type for %s", key)
			}
			if n < minVal {
				return fmt.Errorf("%s must be at least %d", key, minVal)
			}
			*field = n
		}
		return nil
	}

	assignMillis := func(field *time.Duration, key string) error {
		ms := int(*field / time.Millisecond)
		if err := assignInt(&ms, key, 0); err != nil {
			return err
		}
		*field = time.Duration(ms) * time.Millisecond
		return nil
	}

	steps := []func() error{
		func() error { return assignInt(&next.DeckCount, "deckCount", 1) },
		func() error { return assignBool(&next.IncludeJokers, "includeJokers") },
		func() error { return assignInt(&next.JokerCount, "jokerCount", 0) },
		func() error { return assignInt(&next.HandSize, "handSize", 1) },
		func() error { return assignInt(&next.MeClaimLimit, "meClaimLimit", 0) },
		func() error { return assignBool(&next.AllowAceWrap, "allowAceWrap") },
		func() error { return assignMillis(&next.Timers.Analyze, "analyzeMs") },
		func() error { return assignMillis(&next.Timers.DrawWindow, "drawWindowMs") },
		func() error { return assignMillis(&next.Timers.PlayWindow, "playWindowMs") },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	*rules = next
	return nil
}

// ParseRules applies a map of rules on top of current, returning the result.
func ParseRules(rules map[string]interface{}, current TableRules) (TableRules, error) {
	out := current
	err := out.Update(rules)
	return out, err
}

// Validate reports rules that could never produce a playable table.
func (rules TableRules) Validate() error {
	switch {
	case rules.DeckCount < 1:
		return errors.New("deckCount must be at least 1")
	case rules.JokerCount < 0:
		return errors.New("jokerCount must be non-negative")
	case rules.HandSize < 1:
		return errors.New("handSize must be at least 1")
	case rules.MeClaimLimit < 0:
		return errors.New("meClaimLimit must be non-negative")
	}
	return nil
}

// toInt accepts the numeric shapes JSON decoding and callers commonly produce.
func toInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("not a number: %T", val)
	}
}
