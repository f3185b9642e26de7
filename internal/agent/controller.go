package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

var (
	ErrNotYourTurn  = errors.New("not this controller's turn")
	ErrNoStrategies = errors.New("no strategies configured")
	ErrNoController = errors.New("no controller for role")
	ErrNilGame      = errors.New("game cannot be nil")
	ErrNoInput      = errors.New("human controller needs an input and an output")
	ErrInputClosed  = errors.New("input ended before a move was entered")
)

// Controller plays one side of a game.
type Controller interface {
	Role() core.Role
	TakeTurn(ctx context.Context, g *game.Game) (core.Move, error)
}

// checkTurn fails unless ctx is live and role is the one to move.
func checkTurn(ctx context.Context, g *game.Game, role core.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := g.CurrentPlayer()
	if err != nil {
		return err
	}
	if current != role {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, current)
	}
	return nil
}

// endTurn records a placement or a pass and hands the turn over.
func endTurn(g *game.Game, placed bool) error {
	record := g.IncreaseConsecutivePass
	if placed {
		record = g.ResetConsecutivePass
	}
	if err := record(); err != nil {
		return err
	}
	return g.SwitchCurrentPlayer()
}
