package rules

import "github.com/jason-s-yu/contracts/internal/models"

// Extend returns the meld that results from adding cards to m, or an error when no legal
// placement exists. Sets grow at the end. Runs grow at the left end first, then the right;
// cards are never inserted into the middle of a run. Wild cards among the additions are
// flagged as wild positions. m itself is never modified.
func Extend(m models.Meld, cards []models.Card, opts RunOptions) (models.Meld, error) {
	if len(cards) == 0 {
		return nil, invalid("no cards to add")
	}
	switch v := m.(type) {
	case models.SetMeld:
		cand := models.SetMeld{
			ID:            v.ID,
			Rank:          v.Rank,
			Cards:         appendCards(v.Cards, cards, false),
			WildPositions: shiftWilds(v.WildPositions, cards, len(v.Cards), false),
		}
		if err := ValidateSet(cand); err != nil {
			return nil, err
		}
		return cand, nil

	case models.RunMeld:
		for _, left := range []bool{true, false} {
			cand := models.RunMeld{
				ID:            v.ID,
				Suit:          v.Suit,
				Cards:         appendCards(v.Cards, cards, left),
				WildPositions: shiftWilds(v.WildPositions, cards, len(v.Cards), left),
			}
			if ValidateRun(cand, opts) == nil {
				return cand, nil
			}
		}
		return nil, invalid("cannot append cards to run at either end while preserving validity")
	}
	return nil, invalid("unknown meld type")
}

func appendCards(existing, added []models.Card, left bool) []models.Card {
	out := make([]models.Card, 0, len(existing)+len(added))
	if left {
		out = append(out, added...)
		return append(out, existing...)
	}
	out = append(out, existing...)
	return append(out, added...)
}

func shiftWilds(existing []int, added []models.Card, oldLen int, left bool) []int {
	offset := 0
	if left {
		offset = len(added)
	}
	out := make([]int, 0, len(existing)+len(added))
	for _, p := range existing {
		out = append(out, p+offset)
	}
	for i, c := range added {
		if !c.IsWild() {
			continue
		}
		if left {
			out = append(out, i)
		} else {
			out = append(out, oldLen+i)
		}
	}
	return out
}
