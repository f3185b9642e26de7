package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// Common influence patterns, written from Red's point of view.
var (
	CenterOnly = []string{"XXXXX", "XXXXX", "XXCXX", "XXXXX", "XXXXX"}
	RightStep  = []string{"XXXXX", "XXXXX", "XXCIX", "XXXXX", "XXXXX"}
	Cross      = []string{"XXXXX", "XXIXX", "XICIX", "XXIXX", "XXXXX"}
	Diagonals  = []string{"XXXXX", "XIXIX", "XXCXX", "XIXIX", "XXXXX"}
	Lance      = []string{"XXXXX", "XXXXX", "XXCII", "XXXXX", "XXXXX"}
)

// MustCard builds a card and panics on invalid input.
func MustCard(name string, owner core.Role, cost, value int, rows []string) *core.Card {
	c, err := core.NewCardFromRows(name, owner, cost, value, rows)
	if err != nil {
		panic(err)
	}
	return c
}

// CreateTestDeck creates n cards for owner. Costs cycle 1,2,3 and values
// cycle 1..4; patterns rotate through the common fixtures.
func CreateTestDeck(owner core.Role, n int) []*core.Card {
	patterns := [][]string{Cross, RightStep, Diagonals, Lance}
	deck := make([]*core.Card, n)
	for i := 0; i < n; i++ {
		deck[i] = MustCard(fmt.Sprintf("card-%d", i), owner, i%3+1, i%4+1, patterns[i%len(patterns)])
	}
	return deck
}

// CreateTestDeckWithCosts creates one card per entry of costs.
func CreateTestDeckWithCosts(owner core.Role, costs ...int) []*core.Card {
	deck := make([]*core.Card, len(costs))
	for i, cost := range costs {
		deck[i] = MustCard(fmt.Sprintf("cost%d-%d", cost, i), owner, cost, 1, Cross)
	}
	return deck
}

// Placer is a bare hand that satisfies core.Placer.
type Placer struct {
	R     core.Role
	Cards []*core.Card
}

func (p *Placer) Role() core.Role    { return p.R }
func (p *Placer) Hand() []*core.Card { return p.Cards }
func (p *Placer) HandSize() int      { return len(p.Cards) }
func (p *Placer) DeckSize() int      { return 0 }
func (p *Placer) RemoveFromHand(idx int) error {
	if idx < 0 || idx >= len(p.Cards) {
		return core.ErrInvalidHandIndex
	}
	p.Cards = append(p.Cards[:idx], p.Cards[idx+1:]...)
	return nil
}

// CreateInitializedBoard returns a rows x cols board seeded for Red and Blue.
func CreateInitializedBoard(rows, cols int) *core.Board {
	b, err := core.NewBoard(rows, cols)
	if err != nil {
		panic(err)
	}
	if err := b.Initialize(&Placer{R: core.Red}, &Placer{R: core.Blue}); err != nil {
		panic(err)
	}
	return b
}
