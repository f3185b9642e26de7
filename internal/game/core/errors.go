package core

import (
	"errors"
	"fmt"
)

var (
	// Placement errors
	ErrInvalidPosition    = errors.New("position out of board bounds")
	ErrInvalidHandIndex   = errors.New("card index out of hand range")
	ErrCellOccupied       = errors.New("cell already holds a card")
	ErrInsufficientPawns  = errors.New("not enough pawns to cover card cost")
	ErrOpponentControlled = errors.New("cell is controlled by the opponent")

	// Lifecycle errors
	ErrGameNotStarted = errors.New("game has not started")
	ErrAlreadyStarted = errors.New("game has already started")

	// Setup errors
	ErrDeckTooSmall       = errors.New("not enough cards in deck to fill the board")
	ErrHandSizeTooLarge   = errors.New("hand size exceeds a third of the deck size")
	ErrMissingLowCostCard = errors.New("deck has no card with cost 1")
	ErrInvalidDimensions  = errors.New("board needs positive rows and an odd column count greater than 1")
	ErrInvalidHandSize    = errors.New("hand size must be positive")
	ErrInvalidCard        = errors.New("invalid card")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNilPlayer          = errors.New("player cannot be nil")
)

// PlacementError carries the attempted placement alongside the rule it broke.
type PlacementError struct {
	Role      Role
	CardIndex int
	Row, Col  int
	Err       error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s placing card %d at (%d,%d): %v", e.Role, e.CardIndex, e.Row, e.Col, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// WrapPlacementError attaches placement context to err. A nil err stays nil.
func WrapPlacementError(role Role, cardIdx, row, col int, err error) error {
	if err == nil {
		return nil
	}
	return &PlacementError{Role: role, CardIndex: cardIdx, Row: row, Col: col, Err: err}
}

// WrapSetupError attaches the role being configured to a setup failure.
func WrapSetupError(role Role, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s setup: %w", role, err)
}

// WrapCommandError attaches the command name to a lifecycle failure.
func WrapCommandError(command string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", command, err)
}
