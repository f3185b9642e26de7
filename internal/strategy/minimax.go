package strategy

import (
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"golang.org/x/sync/errgroup"
)

type minimaxOption func(m *Minimax)

// WithGoroutines evaluates candidate placements on up to n goroutines.
func WithGoroutines(n int) minimaxOption {
	return func(m *Minimax) {
		if n > 0 {
			m.goroutines = n
		}
	}
}

// WithResponseLimit caps how many opponent replies are examined per
// candidate. Zero examines all of them.
func WithResponseLimit(n int) minimaxOption {
	return func(m *Minimax) {
		if n >= 0 {
			m.responseLimit = n
		}
	}
}

// Minimax looks one reply ahead: each candidate is scored by the best
// opponent reply with a neutral card, and the candidate with the mildest
// worst case wins.
type Minimax struct {
	goroutines    int
	responseLimit int
}

func NewMinimax(options ...minimaxOption) *Minimax {
	m := &Minimax{goroutines: 1}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Name() string { return NameMinimax }

func (m *Minimax) Decide(view View, role core.Role) core.Move {
	board, hand, ok := snapshot(view, role)
	if !ok {
		return core.PassMove()
	}

	candidates := legal.LegalPlacements(board, hand, role)
	if len(candidates) == 0 {
		return core.PassMove()
	}

	type outcome struct {
		worst int
		ok    bool
	}
	outcomes := make([]outcome, len(candidates))

	var g errgroup.Group
	g.SetLimit(m.goroutines)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			after, ok := simulate(board, role, hand[c.CardIndex()], c.Row(), c.Col())
			if ok {
				outcomes[i] = outcome{worst: m.worstReply(after, role.Opponent()), ok: true}
			}
			return nil
		})
	}
	_ = g.Wait()

	best, bestWorst, haveBest := core.PassMove(), 0, false
	for i, c := range candidates {
		o := outcomes[i]
		if !o.ok {
			continue
		}
		if !haveBest || o.worst < bestWorst || (o.worst == bestWorst && c.Less(best)) {
			best, bestWorst, haveBest = c, o.worst, true
		}
	}
	return best
}

// WorstCase returns the worst differential the opponent can force after
// role plays move, or false when move cannot be simulated.
func (m *Minimax) WorstCase(board *core.Board, hand []*core.Card, role core.Role, move core.Move) (int, bool) {
	if move.IsPass() || move.CardIndex() < 0 || move.CardIndex() >= len(hand) {
		return 0, false
	}
	after, ok := simulate(board, role, hand[move.CardIndex()], move.Row(), move.Col())
	if !ok {
		return 0, false
	}
	return m.worstReply(after, role.Opponent()), true
}

// worstReply is the highest opponent-minus-mover total the opponent reaches
// with one neutral card, or 0 when it has no legal reply.
func (m *Minimax) worstReply(board *core.Board, opponent core.Role) int {
	card := neutralCard(opponent)
	worst, seen := 0, false
	examined := 0
	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Cols(); col++ {
			if !board.CanPlace(opponent, card, row, col) {
				continue
			}
			if m.responseLimit > 0 && examined >= m.responseLimit {
				return worst
			}
			examined++
			after, ok := simulate(board, opponent, card, row, col)
			if !ok {
				continue
			}
			diff := after.TotalScores().Diff(opponent)
			if !seen || diff > worst {
				worst, seen = diff, true
			}
		}
	}
	return worst
}
