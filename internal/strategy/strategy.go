package strategy

import (
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/rules"
)

// View is the read-only game surface strategies consume. Both methods
// return copies, so strategies are free to mutate what they get back.
type View interface {
	Board() (*core.Board, error)
	Hand(role core.Role) ([]*core.Card, error)
}

// Strategy picks a move for role. Decide never fails: anything that goes
// wrong yields a pass.
type Strategy interface {
	Name() string
	Decide(view View, role core.Role) core.Move
}

var legal = rules.NewLegalPlacementCalculator()

// snapshot fetches the board and role's hand. ok is false when either is
// unavailable.
func snapshot(view View, role core.Role) (*core.Board, []*core.Card, bool) {
	if view == nil {
		return nil, nil, false
	}
	board, err := view.Board()
	if err != nil || board == nil {
		return nil, nil, false
	}
	hand, err := view.Hand(role)
	if err != nil {
		return nil, nil, false
	}
	return board, hand, true
}

// syntheticPlayer holds a single card and nothing else. It satisfies
// core.Placer so speculative placements never touch a real player.
type syntheticPlayer struct {
	role core.Role
	hand []*core.Card
}

func newSyntheticPlayer(role core.Role, card *core.Card) *syntheticPlayer {
	return &syntheticPlayer{role: role, hand: []*core.Card{card}}
}

func (s *syntheticPlayer) Role() core.Role    { return s.role }
func (s *syntheticPlayer) Hand() []*core.Card { return s.hand }
func (s *syntheticPlayer) RemoveFromHand(idx int) error {
	if idx < 0 || idx >= len(s.hand) {
		return core.ErrInvalidHandIndex
	}
	s.hand = append(s.hand[:idx], s.hand[idx+1:]...)
	return nil
}

// simulate places card for role at (row, col) on a clone of board. board
// itself is never modified.
func simulate(board *core.Board, role core.Role, card *core.Card, row, col int) (*core.Board, bool) {
	if board == nil || card == nil {
		return nil, false
	}
	clone := board.Clone()
	if err := clone.Place(newSyntheticPlayer(role, card), 0, row, col); err != nil {
		return nil, false
	}
	return clone, true
}

var neutralCards = func() [2]*core.Card {
	var pattern core.Pattern
	pattern[core.PatternSize/2][core.PatternSize/2] = core.InfluenceCenter

	var cards [2]*core.Card
	for _, role := range core.Roles {
		c, err := core.NewCard("neutral", role, 1, 1, pattern)
		if err != nil {
			panic(err)
		}
		cards[role] = c
	}
	return cards
}()

// neutralCard is the cost-1, value-1, centre-only card used to model an
// unknown opponent reply.
func neutralCard(role core.Role) *core.Card {
	if !role.IsValid() {
		return nil
	}
	return neutralCards[role]
}

// outranks reports whether candidate should replace best under the
// (row, col, card index) ascending tie-break.
func outranks(candidate, best core.Move, haveBest bool) bool {
	return !haveBest || candidate.Less(best)
}
