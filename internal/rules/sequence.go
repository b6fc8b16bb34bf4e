package rules

import "github.com/jason-s-yu/contracts/internal/models"

const (
	lowValue  = 2
	highValue = 14
	// cycleAttempts bounds the alignment search to one full trip around the rank cycle.
	cycleAttempts = 14
)

// nextValue returns the successor of v, or ok=false when the ace wrap is disabled and v is an Ace.
func nextValue(v int, wrap bool) (int, bool) {
	if v == highValue {
		if !wrap {
			return 0, false
		}
		return lowValue, true
	}
	return v + 1, true
}

// prevValue returns the predecessor of v, or ok=false when the ace wrap is disabled and v is a 2.
func prevValue(v int, wrap bool) (int, bool) {
	if v == lowValue {
		if !wrap {
			return 0, false
		}
		return highValue, true
	}
	return v - 1, true
}

type fixedValue struct {
	idx   int
	value int
}

// InferRunValues assigns a logical value to every position of the run, wilds included.
// It anchors on the first natural card, extends outward, then rotates the whole
// chain until every natural sits on its own value.
func InferRunValues(m models.RunMeld, opts RunOptions) ([]int, error) {
	n := len(m.Cards)
	wild := wildIndex(m.WildPositions)

	var fixed []fixedValue
	for i, c := range m.Cards {
		if !wild[i] {
			fixed = append(fixed, fixedValue{idx: i, value: c.Rank.Value()})
		}
	}
	if len(fixed) == 0 {
		return nil, invalid("run must contain at least one natural card")
	}

	values := make([]int, n)
	anchor := fixed[0]
	values[anchor.idx] = anchor.value

	for i := anchor.idx - 1; i >= 0; i-- {
		v, ok := prevValue(values[i+1], opts.AllowAceWrap)
		if !ok {
			return nil, invalid("run sequence invalid without wrap")
		}
		values[i] = v
	}
	for i := anchor.idx + 1; i < n; i++ {
		v, ok := nextValue(values[i-1], opts.AllowAceWrap)
		if !ok {
			return nil, invalid("run sequence invalid without wrap")
		}
		values[i] = v
	}

	aligned := false
	for rot := 0; rot < cycleAttempts; rot++ {
		if matchesFixed(values, fixed) {
			aligned = true
			break
		}
		for i := range values {
			values[i], _ = nextValue(values[i], true)
		}
	}
	if !aligned {
		return nil, invalid("natural cards cannot align into a single continuous sequence")
	}

	for i := 1; i < n; i++ {
		if values[i] == values[i-1] {
			return nil, invalid("runs cannot repeat a rank")
		}
	}
	return values, nil
}

func matchesFixed(values []int, fixed []fixedValue) bool {
	for _, f := range fixed {
		if values[f.idx] != f.value {
			return false
		}
	}
	return true
}
