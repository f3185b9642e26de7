package rules

import "github.com/mitchelldurbincs/PawnsBoard/internal/game/core"

// LegalPlacementCalculator computes legal placements for a hand
type LegalPlacementCalculator struct{}

// NewLegalPlacementCalculator creates a new legal placement calculator
func NewLegalPlacementCalculator() *LegalPlacementCalculator {
	return &LegalPlacementCalculator{}
}

// LegalPlacements lists every legal placement for role, hand-major then
// row-major, columns ascending.
func (lpc *LegalPlacementCalculator) LegalPlacements(board *core.Board, hand []*core.Card, role core.Role) []core.Move {
	var moves []core.Move
	for cardIdx, card := range hand {
		for row := 0; row < board.Rows(); row++ {
			for col := 0; col < board.Cols(); col++ {
				if board.CanPlace(role, card, row, col) {
					moves = append(moves, core.PlaceMove(cardIdx, row, col))
				}
			}
		}
	}
	return moves
}

// FirstLegalPlacement returns the first placement in LegalPlacements order.
func (lpc *LegalPlacementCalculator) FirstLegalPlacement(board *core.Board, hand []*core.Card, role core.Role) (core.Move, bool) {
	for cardIdx, card := range hand {
		for row := 0; row < board.Rows(); row++ {
			for col := 0; col < board.Cols(); col++ {
				if board.CanPlace(role, card, row, col) {
					return core.PlaceMove(cardIdx, row, col), true
				}
			}
		}
	}
	return core.PassMove(), false
}

// HasLegalPlacement reports whether role can place any card in hand.
func (lpc *LegalPlacementCalculator) HasLegalPlacement(board *core.Board, hand []*core.Card, role core.Role) bool {
	_, ok := lpc.FirstLegalPlacement(board, hand, role)
	return ok
}

// PlacementMask returns a flattened boolean mask of legal placements.
// For a hand of N cards on a rows x cols board:
// - Total entries = N * rows * cols
// - Index = (cardIdx*rows + row)*cols + col
// - true = legal placement
func (lpc *LegalPlacementCalculator) PlacementMask(board *core.Board, hand []*core.Card, role core.Role) []bool {
	rows, cols := board.Rows(), board.Cols()
	mask := make([]bool, len(hand)*rows*cols)
	for _, m := range lpc.LegalPlacements(board, hand, role) {
		mask[MaskIndex(m, rows, cols)] = true
	}
	return mask
}

// MaskIndex maps a placement to its PlacementMask index.
func MaskIndex(m core.Move, rows, cols int) int {
	return (m.CardIndex()*rows+m.Row())*cols + m.Col()
}
