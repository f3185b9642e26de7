package strategy

import "github.com/mitchelldurbincs/PawnsBoard/internal/game/core"

// ControlBoard plays the placement that leaves role owning the most cells.
type ControlBoard struct{}

func (ControlBoard) Name() string { return NameControlBoard }

func (ControlBoard) Decide(view View, role core.Role) core.Move {
	board, hand, ok := snapshot(view, role)
	if !ok {
		return core.PassMove()
	}

	best, bestCount, haveBest := core.PassMove(), -1, false
	for _, m := range legal.LegalPlacements(board, hand, role) {
		after, ok := simulate(board, role, hand[m.CardIndex()], m.Row(), m.Col())
		if !ok {
			continue
		}
		count := after.OwnedCount(role)
		if count > bestCount || (count == bestCount && outranks(m, best, haveBest)) {
			best, bestCount, haveBest = m, count, true
		}
	}
	return best
}
