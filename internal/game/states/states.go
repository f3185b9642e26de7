package states

import (
	"errors"
	"time"
)

// NotStartedState represents a constructed game waiting for decks
type NotStartedState struct{}

func NewNotStartedState() State {
	return &NotStartedState{}
}

func (s *NotStartedState) Phase() GamePhase {
	return PhaseNotStarted
}

func (s *NotStartedState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering NotStarted state")
	return nil
}

func (s *NotStartedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting NotStarted state")
	return nil
}

func (s *NotStartedState) Validate(ctx *GameContext) error {
	return nil
}

// StartedState represents active play
type StartedState struct{}

func NewStartedState() State {
	return &StartedState{}
}

func (s *StartedState) Phase() GamePhase {
	return PhaseStarted
}

func (s *StartedState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Msg("Game started")
	return nil
}

func (s *StartedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Leaving Started state")
	return nil
}

func (s *StartedState) Validate(ctx *GameContext) error {
	if ctx.GameID == "" {
		return errors.New("game id must be set before starting")
	}
	return nil
}

// OverState represents a finished game
type OverState struct{}

func NewOverState() State {
	return &OverState{}
}

func (s *OverState) Phase() GamePhase {
	return PhaseOver
}

func (s *OverState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Str("winner", ctx.Winner.String()).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *OverState) Exit(ctx *GameContext) error {
	return errors.New("cannot exit terminal state")
}

func (s *OverState) Validate(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		return errors.New("game cannot end before it starts")
	}
	return nil
}
