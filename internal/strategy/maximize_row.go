package strategy

import "github.com/mitchelldurbincs/PawnsBoard/internal/game/core"

// MaximizeRowScore works rows top to bottom and plays into the first row it
// is not winning with a card whose value at least ties that row. With no
// such row it falls back to FillFirst.
type MaximizeRowScore struct{}

func (MaximizeRowScore) Name() string { return NameMaximizeRowScore }

func (MaximizeRowScore) Decide(view View, role core.Role) core.Move {
	board, hand, ok := snapshot(view, role)
	if !ok {
		return core.PassMove()
	}

	for row := 0; row < board.Rows(); row++ {
		scores, err := board.RowScores(row)
		if err != nil {
			continue
		}
		mine, theirs := scores.Of(role), scores.Of(role.Opponent())
		if mine > theirs {
			continue
		}
		for col := 0; col < board.Cols(); col++ {
			for cardIdx, card := range hand {
				if !board.CanPlace(role, card, row, col) {
					continue
				}
				if mine+card.Value() >= theirs {
					return core.PlaceMove(cardIdx, row, col)
				}
			}
		}
	}
	return fillFirst(board, hand, role)
}
