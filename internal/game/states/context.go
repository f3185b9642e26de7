package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// GameContext is the match data the phase states read and stamp.
type GameContext struct {
	GameID string
	Logger zerolog.Logger

	// StartTime is set on entering PhaseStarted, EndTime on entering PhaseOver.
	StartTime time.Time
	EndTime   time.Time

	// Winner is NoRole until the game is over, and stays NoRole on a tie.
	Winner core.Role
}

func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: core.NoRole,
	}
}

// GetElapsedTime is the time since the game started, frozen once it ends.
func (gc *GameContext) GetElapsedTime() time.Duration {
	switch {
	case gc.StartTime.IsZero():
		return 0
	case !gc.EndTime.IsZero():
		return gc.EndTime.Sub(gc.StartTime)
	default:
		return time.Since(gc.StartTime)
	}
}
