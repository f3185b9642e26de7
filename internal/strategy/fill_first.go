package strategy

import "github.com/mitchelldurbincs/PawnsBoard/internal/game/core"

// FillFirst plays the first legal placement it finds, scanning the hand in
// order and the board row-major.
type FillFirst struct{}

func (FillFirst) Name() string { return NameFillFirst }

func (FillFirst) Decide(view View, role core.Role) core.Move {
	board, hand, ok := snapshot(view, role)
	if !ok {
		return core.PassMove()
	}
	return fillFirst(board, hand, role)
}

func fillFirst(board *core.Board, hand []*core.Card, role core.Role) core.Move {
	move, _ := legal.FirstLegalPlacement(board, hand, role)
	return move
}
