package main

import (
	"fmt"

	"github.com/jason-s-yu/contracts/internal/game"
	"github.com/jason-s-yu/contracts/internal/rules"
	"github.com/pterm/pterm"
)

func printHeader(t *game.Table) {
	pterm.DefaultHeader.WithFullWidth().Printfln("Contracts table %s", t.ID)
	pterm.Info.Printfln("%d players, %d deck(s), %d joker(s), %d cards each",
		len(t.Players), t.Rules.DeckCount, jokers(t.Rules), t.Rules.HandSize)
}

func jokers(r game.TableRules) int {
	if !r.IncludeJokers {
		return 0
	}
	return r.JokerCount
}

func printRound(t *game.Table, results []game.RoundResult) {
	pterm.DefaultSection.Printfln("Round %d", t.RoundNumber)

	data := pterm.TableData{{"Seat", "Player", "Contract", "Down", "Points", "Score"}}
	for _, res := range results {
		p := t.Players[res.Seat]
		name := p.Name
		if res.Winner {
			name = pterm.LightGreen(name + " (out)")
		}
		down := "no"
		if res.WentDown {
			down = "yes"
		}
		data = append(data, []string{
			fmt.Sprint(res.Seat),
			name,
			contract(res.CurrentHand),
			down,
			fmt.Sprint(res.Points),
			fmt.Sprint(res.Score),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
	if t.Phase == game.PhaseGameEnd {
		pterm.Success.Println("Last contract completed, match over.")
	}
}

// contract describes the next contract a player must meet.
func contract(level int) string {
	req, err := rules.Requirement(level)
	if err != nil {
		return fmt.Sprint(level)
	}
	s := fmt.Sprintf("%d: %d set(s) %d run(s)", level, req.Sets, req.Runs)
	if req.RunMinLength > 0 {
		s += fmt.Sprintf(", run of %d+", req.RunMinLength)
	}
	return s
}

func printStandings(t *game.Table) {
	pterm.DefaultSection.Println("Standings")
	items := make([]pterm.BulletListItem, 0, len(t.Players))
	for i, p := range t.Standings() {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  fmt.Sprintf("%d. %s: %d points, contract %d", i+1, p.Name, p.Score, p.CurrentHand),
		})
	}
	if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
		pterm.Error.Println(err)
	}
}
