package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/rules"
)

// Result summarises a finished (or cut short) match.
type Result struct {
	Winner core.Role
	Scores core.Scores
	Turns  int
	Passes int
	// Truncated is set when the turn cap stopped the match early.
	Truncated bool
}

type option func(o *Orchestrator)

// WithMaxTurns stops the match after n turns. Zero means no cap.
func WithMaxTurns(n int) option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.maxTurns = n
		}
	}
}

// WithLogger sets the orchestrator's logger.
func WithLogger(logger zerolog.Logger) option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator hands the turn to whichever controller owns the current role
// until the game ends.
type Orchestrator struct {
	game        *game.Game
	controllers map[core.Role]Controller
	maxTurns    int
	calc        *rules.LegalPlacementCalculator
	logger      zerolog.Logger
}

func NewOrchestrator(g *game.Game, red, blue Controller, options ...option) (*Orchestrator, error) {
	if g == nil {
		return nil, ErrNilGame
	}
	o := &Orchestrator{
		game:        g,
		controllers: make(map[core.Role]Controller, 2),
		calc:        rules.NewLegalPlacementCalculator(),
		logger:      log.Logger,
	}
	for _, c := range []Controller{red, blue} {
		if c == nil {
			continue
		}
		if _, dup := o.controllers[c.Role()]; dup {
			return nil, fmt.Errorf("two controllers for %s", c.Role())
		}
		o.controllers[c.Role()] = c
	}
	for _, option := range options {
		option(o)
	}
	o.logger = o.logger.With().Str("component", "Orchestrator").Str("game_id", g.GameID()).Logger()
	return o, nil
}

// Run plays turns until the game is over, the turn cap is hit or ctx is
// cancelled. The game must already be started.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	var turns, passes int
	switchID := o.game.SubscribeFunc(events.TypePlayerSwitched, func(events.Event) { turns++ })
	passID := o.game.SubscribeFunc(events.TypePassRecorded, func(events.Event) { passes++ })
	defer o.game.UnsubscribeFunc(switchID)
	defer o.game.UnsubscribeFunc(passID)

	result := Result{Winner: core.NoRole}
	for {
		over, err := o.game.IsGameOver()
		if err != nil {
			return result, err
		}
		if over {
			break
		}
		if err := ctx.Err(); err != nil {
			return o.finish(result, turns, passes), err
		}
		if o.maxTurns > 0 && turns >= o.maxTurns {
			o.logger.Info().Int("max_turns", o.maxTurns).Msg("Turn cap reached")
			result.Truncated = true
			break
		}

		current, err := o.game.CurrentPlayer()
		if err != nil {
			return result, err
		}
		ctrl, ok := o.controllers[current]
		if !ok {
			return o.finish(result, turns, passes), fmt.Errorf("%w: %s", ErrNoController, current)
		}

		o.logBranching(current, turns)
		move, err := ctrl.TakeTurn(ctx, o.game)
		if err != nil {
			return o.finish(result, turns, passes), fmt.Errorf("turn %d (%s): %w", turns, current, err)
		}
		o.logger.Debug().
			Int("turn", turns).
			Str("role", current.String()).
			Str("move", move.String()).
			Msg("Turn played")
	}

	result = o.finish(result, turns, passes)
	o.logger.Info().
		Str("winner", result.Winner.String()).
		Int("red_score", result.Scores.Red).
		Int("blue_score", result.Scores.Blue).
		Int("turns", result.Turns).
		Int("passes", result.Passes).
		Bool("truncated", result.Truncated).
		Msg("Match finished")
	return result, nil
}

func (o *Orchestrator) finish(result Result, turns, passes int) Result {
	result.Turns = turns
	result.Passes = passes
	if winner, err := o.game.Winner(); err == nil {
		result.Winner = winner
	}
	if scores, err := o.game.Scores(); err == nil {
		result.Scores = scores
	}
	return result
}

// logBranching logs how many placements role has available this turn.
func (o *Orchestrator) logBranching(role core.Role, turn int) {
	e := o.logger.Debug()
	if !e.Enabled() {
		return
	}
	board, err := o.game.Board()
	if err != nil {
		e.Discard()
		return
	}
	hand, err := o.game.Hand(role)
	if err != nil {
		e.Discard()
		return
	}
	legal := 0
	for _, ok := range o.calc.PlacementMask(board, hand, role) {
		if ok {
			legal++
		}
	}
	e.Int("turn", turn).
		Str("role", role.String()).
		Int("hand", len(hand)).
		Int("legal_placements", legal).
		Msg("Turn starting")
}
