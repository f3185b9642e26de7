package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/strategy"
)

// Machine plays by letting a selector pick one of its strategies each turn.
type Machine struct {
	role       core.Role
	strategies []strategy.Strategy
	selector   *strategy.Selector
	logger     zerolog.Logger
}

// NewMachine creates a machine controller for role. A nil selector gets a
// default one.
func NewMachine(role core.Role, strategies []strategy.Strategy, selector *strategy.Selector, logger zerolog.Logger) (*Machine, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	if len(strategies) == 0 {
		return nil, ErrNoStrategies
	}
	for i, strat := range strategies {
		if strat == nil {
			return nil, fmt.Errorf("%w: strategy %d is nil", ErrNoStrategies, i)
		}
	}
	if selector == nil {
		selector = strategy.NewSelector(strategy.WithLogger(logger))
	}
	return &Machine{
		role:       role,
		strategies: strategies,
		selector:   selector,
		logger:     logger.With().Str("component", "Machine").Str("role", role.String()).Logger(),
	}, nil
}

func (m *Machine) Role() core.Role { return m.role }

// TakeTurn plays the move the selector judged best and hands the turn over.
// A placement the game rejects is logged and counted as a pass.
func (m *Machine) TakeTurn(ctx context.Context, g *game.Game) (core.Move, error) {
	if err := checkTurn(ctx, g, m.role); err != nil {
		return core.PassMove(), err
	}

	chosen := m.selector.Choose(m.strategies, g, m.role)
	move := chosen.Move
	name := chosen.Strategy.Name()

	if move.IsPass() {
		m.logger.Debug().Str("strategy", name).Msg("Passing")
		return move, endTurn(g, false)
	}
	if err := g.PlaceCard(move.Row(), move.Col(), move.CardIndex()); err != nil {
		m.logger.Warn().
			Err(err).
			Str("strategy", name).
			Str("move", move.String()).
			Msg("Placement rejected, passing")
		return core.PassMove(), endTurn(g, false)
	}
	m.logger.Debug().
		Str("strategy", name).
		Str("move", move.String()).
		Msg("Card placed")
	return move, endTurn(g, true)
}
