package strategy

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// Evaluation is one strategy's proposal and how it scores when played on
// a copy of the current board.
type Evaluation struct {
	Strategy Strategy
	Move     core.Move
	// Differential is role's total minus the opponent's after the move.
	Differential int
	// Simulated is false for passes and for proposals that failed to place.
	Simulated bool
}

type selectorOption func(s *Selector)

// WithLogger sets the selector's logger.
func WithLogger(logger zerolog.Logger) selectorOption {
	return func(s *Selector) {
		s.logger = logger
	}
}

// WithParallelism asks up to n strategies for their move at once.
func WithParallelism(n int) selectorOption {
	return func(s *Selector) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// Selector picks, among several strategies, the one whose proposal scores
// best after a one-move simulation.
type Selector struct {
	logger      zerolog.Logger
	parallelism int
}

func NewSelector(options ...selectorOption) *Selector {
	s := &Selector{logger: log.Logger, parallelism: 1}
	for _, option := range options {
		option(s)
	}
	s.logger = s.logger.With().Str("component", "StrategySelector").Logger()
	return s
}

// Evaluate asks every strategy for a move and simulates each placement.
// Results keep the order of strategies.
func (s *Selector) Evaluate(strategies []Strategy, view View, role core.Role) []Evaluation {
	evals := make([]Evaluation, len(strategies))

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i, strat := range strategies {
		i, strat := i, strat
		g.Go(func() error {
			evals[i] = s.evaluate(strat, view, role)
			return nil
		})
	}
	_ = g.Wait()
	return evals
}

func (s *Selector) evaluate(strat Strategy, view View, role core.Role) Evaluation {
	eval := Evaluation{Strategy: strat, Move: core.PassMove()}
	if strat == nil {
		return eval
	}
	eval.Move = strat.Decide(view, role)
	if eval.Move.IsPass() {
		return eval
	}

	board, hand, ok := snapshot(view, role)
	if !ok || eval.Move.CardIndex() < 0 || eval.Move.CardIndex() >= len(hand) {
		return eval
	}
	after, ok := simulate(board, role, hand[eval.Move.CardIndex()], eval.Move.Row(), eval.Move.Col())
	if !ok {
		return eval
	}
	eval.Differential = after.TotalScores().Diff(role)
	eval.Simulated = true
	return eval
}

// Choose returns the evaluation with the highest differential, so the
// winning move can be played without asking its strategy again. The first
// strategy wins ties and is the fallback when no proposal could be
// simulated. An empty list yields a pass with no strategy.
func (s *Selector) Choose(strategies []Strategy, view View, role core.Role) Evaluation {
	if len(strategies) == 0 {
		return Evaluation{Move: core.PassMove()}
	}

	evals := s.Evaluate(strategies, view, role)
	best, found := evals[0], false
	for _, eval := range evals {
		if !eval.Simulated {
			continue
		}
		if !found || eval.Differential > best.Differential {
			best, found = eval, true
		}
	}

	s.logger.Debug().
		Str("role", role.String()).
		Str("strategy", nameOf(best.Strategy)).
		Str("move", best.Move.String()).
		Int("differential", best.Differential).
		Bool("simulated", found).
		Msg("Strategy selected")
	return best
}

// SelectBest returns the strategy Choose picks. It returns nil only for an
// empty list.
func (s *Selector) SelectBest(strategies []Strategy, view View, role core.Role) Strategy {
	return s.Choose(strategies, view, role).Strategy
}

func nameOf(strat Strategy) string {
	if strat == nil {
		return "none"
	}
	return strat.Name()
}
