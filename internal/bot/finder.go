package bot

import (
	"sort"

	"github.com/jason-s-yu/contracts/internal/models"
	"github.com/jason-s-yu/contracts/internal/rules"
	"github.com/jason-s-yu/contracts/internal/scoring"
)

const minRunLength = 4

// pool is the set of hand cards not yet committed to a meld.
type pool struct {
	naturals []models.Card
	wilds    []models.Card
}

func newPool(hand []models.Card) *pool {
	p := &pool{}
	for _, c := range hand {
		if c.IsWild() {
			p.wilds = append(p.wilds, c)
		} else {
			p.naturals = append(p.naturals, c)
		}
	}
	return p
}

func (p *pool) take(ids map[int]bool) {
	kept := p.naturals[:0:0]
	for i, c := range p.naturals {
		if !ids[i] {
			kept = append(kept, c)
		}
	}
	p.naturals = kept
}

func (p *pool) takeWilds(n int) []models.Card {
	out := p.wilds[:n:n]
	p.wilds = p.wilds[n:]
	return out
}

// FindContract greedily looks for melds in hand that exactly match req. Runs are
// built first since they are harder to complete, then sets from what is left.
func FindContract(hand []models.Card, req rules.HandRequirement, opts rules.RunOptions) ([]models.Meld, bool) {
	p := newPool(hand)
	var melds []models.Meld

	for i := 0; i < req.Runs; i++ {
		minLen := minRunLength
		// one long run is enough to satisfy the floor
		if i == 0 && req.RunMinLength > minLen {
			minLen = req.RunMinLength
		}
		run, ok := p.findRun(minLen)
		if !ok {
			return nil, false
		}
		melds = append(melds, run)
	}
	for i := 0; i < req.Sets; i++ {
		set, ok := p.findSet()
		if !ok {
			return nil, false
		}
		melds = append(melds, set)
	}

	for _, m := range melds {
		if rules.ValidateMeldWith(m, opts) != nil {
			return nil, false
		}
	}
	if req.Satisfies(melds) != nil {
		return nil, false
	}
	return melds, true
}

// findSet takes the largest natural group, topping up a pair with one wild.
func (p *pool) findSet() (models.SetMeld, bool) {
	byRank := make(map[models.Rank][]int)
	for i, c := range p.naturals {
		byRank[c.Rank] = append(byRank[c.Rank], i)
	}
	var best models.Rank
	for r, idx := range byRank {
		if len(idx) > len(byRank[best]) || (len(idx) == len(byRank[best]) && r > best) {
			best = r
		}
	}
	idx := byRank[best]
	switch {
	case len(idx) >= 3:
	case len(idx) == 2 && len(p.wilds) > 0:
	default:
		return models.SetMeld{}, false
	}

	set := models.SetMeld{Rank: best}
	taken := make(map[int]bool, len(idx))
	for _, i := range idx {
		set.Cards = append(set.Cards, p.naturals[i])
		taken[i] = true
	}
	if len(idx) == 2 {
		set.Cards = append(set.Cards, p.takeWilds(1)...)
		set.WildPositions = []int{2}
	}
	p.take(taken)
	return set, true
}

// findRun looks for a same-suit chain of at least minLen cards. Single missing
// values may be bridged with a wild as long as wilds never outnumber naturals.
func (p *pool) findRun(minLen int) (models.RunMeld, bool) {
	for _, suit := range models.Suits {
		byValue := make(map[int]int)
		var values []int
		for i, c := range p.naturals {
			if c.Suit != suit {
				continue
			}
			v := c.Rank.Value()
			if _, dup := byValue[v]; dup {
				continue
			}
			byValue[v] = i
			values = append(values, v)
		}
		sort.Ints(values)

		for start := range values {
			run, ok := p.chainFrom(suit, values[start:], byValue, minLen)
			if ok {
				return run, true
			}
		}
	}
	return models.RunMeld{}, false
}

func (p *pool) chainFrom(suit models.Suit, values []int, byValue map[int]int, minLen int) (models.RunMeld, bool) {
	chain := []int{values[0]}
	gaps := 0
	for _, v := range values[1:] {
		last := chain[len(chain)-1]
		if v == last+1 {
			chain = append(chain, v)
			continue
		}
		// a bridged chain always has more naturals than wilds
		if v == last+2 && gaps < len(p.wilds) {
			chain = append(chain, -1, v)
			gaps++
			continue
		}
		break
	}
	if len(chain) < minLen {
		return models.RunMeld{}, false
	}

	run := models.RunMeld{Suit: suit}
	taken := make(map[int]bool, len(chain))
	wilds := p.takeWilds(gaps)
	for pos, v := range chain {
		if v < 0 {
			run.Cards = append(run.Cards, wilds[0])
			wilds = wilds[1:]
			run.WildPositions = append(run.WildPositions, pos)
			continue
		}
		i := byValue[v]
		run.Cards = append(run.Cards, p.naturals[i])
		taken[i] = true
	}
	p.take(taken)
	return run, true
}

// ChooseDiscard picks the costliest natural card, keeping cards that pair up
// with another of the same rank when there is a choice.
func ChooseDiscard(hand []models.Card, scorer scoring.Calculator) (models.Card, bool) {
	counts := make(map[models.Rank]int)
	for _, c := range hand {
		if !c.IsWild() {
			counts[c.Rank]++
		}
	}

	var (
		best      models.Card
		bestScore = -1
	)
	for _, c := range hand {
		if c.IsWild() {
			continue
		}
		score := scorer.Points(c) * 2
		if counts[c.Rank] == 1 {
			score++
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}

// wantsCard reports whether c matches at least need naturals of the same rank in hand.
func wantsCard(hand []models.Card, c models.Card, need int) bool {
	if c.IsWild() {
		return true
	}
	n := 0
	for _, h := range hand {
		if !h.IsWild() && h.Rank == c.Rank {
			n++
		}
	}
	return n >= need
}
