package rules

import (
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/rs/zerolog"
)

// PassLimit is the number of consecutive passes that ends a game.
const PassLimit = 2

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Contender interface to avoid circular imports
type Contender interface {
	Role() core.Role
	HandSize() int
	DeckSize() int
}

// CheckGameOver reports whether the game has ended: two consecutive passes,
// a full board, or every contender out of cards.
func (wc *WinConditionChecker) CheckGameOver(consecutivePasses int, board *core.Board, contenders ...Contender) bool {
	if consecutivePasses >= PassLimit {
		wc.logger.Debug().Int("consecutive_passes", consecutivePasses).Msg("Game over by passes")
		return true
	}
	if board != nil && board.RemainingEmptyCells() == 0 {
		wc.logger.Debug().Msg("Game over by full board")
		return true
	}
	if len(contenders) == 0 {
		return false
	}
	for _, c := range contenders {
		if c == nil || c.HandSize() > 0 || c.DeckSize() > 0 {
			return false
		}
	}
	wc.logger.Debug().Msg("Game over by exhausted cards")
	return true
}

// Winner returns the side with the higher total score, NoRole on a tie.
func (wc *WinConditionChecker) Winner(board *core.Board) core.Role {
	scores := board.TotalScores()
	winner := scores.Leader()
	wc.logger.Debug().
		Int("red_score", scores.Red).
		Int("blue_score", scores.Blue).
		Str("winner", winner.String()).
		Msg("Winner determined")
	return winner
}
