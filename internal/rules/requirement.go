package rules

import (
	"fmt"

	"github.com/jason-s-yu/contracts/internal/models"
)

// HandRequirement is the contract a player must satisfy to go down.
type HandRequirement struct {
	Sets int `json:"sets"`
	Runs int `json:"runs"`
	// RunMinLength is 0 when the contract has no run length floor.
	RunMinLength int `json:"runMinLength,omitempty"`
}

var handRequirements = [models.MaxHandLevel]HandRequirement{
	{Sets: 2, Runs: 0},
	{Sets: 1, Runs: 1},
	{Sets: 0, Runs: 2},
	{Sets: 2, Runs: 1},
	{Sets: 1, Runs: 2},
	{Sets: 3, Runs: 0},
	{Sets: 1, Runs: 1, RunMinLength: 7},
}

// Requirement returns the contract for a level in 1..7.
func Requirement(level int) (HandRequirement, error) {
	if level < 1 || level > models.MaxHandLevel {
		return HandRequirement{}, fmt.Errorf("hand level %d out of range 1..%d", level, models.MaxHandLevel)
	}
	return handRequirements[level-1], nil
}

// Satisfies reports whether the melds match the requirement's composition and run length floor.
// It does not validate the melds themselves.
func (r HandRequirement) Satisfies(melds []models.Meld) error {
	sets, runs := 0, 0
	longestRun := 0
	for _, m := range melds {
		switch v := m.(type) {
		case models.SetMeld:
			sets++
		case models.RunMeld:
			runs++
			longestRun = max(longestRun, len(v.Cards))
		}
	}
	if sets != r.Sets || runs != r.Runs {
		return fmt.Errorf("need %d set(s) and %d run(s), got %d and %d", r.Sets, r.Runs, sets, runs)
	}
	if r.RunMinLength > 0 && longestRun < r.RunMinLength {
		return fmt.Errorf("need a run of at least %d cards", r.RunMinLength)
	}
	return nil
}
