package core

// Placer is the part of a player the board needs to place a card.
type Placer interface {
	Role() Role
	Hand() []*Card
	RemoveFromHand(idx int) error
}

// Board is a rows x cols grid of cells stored row-major.
type Board struct {
	rows, cols int
	cells      []Cell
}

// NewBoard creates an empty board. cols must be odd and greater than 1.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 1 || cols%2 == 0 {
		return nil, ErrInvalidDimensions
	}
	b := &Board{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	b.clear()
	return b, nil
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = emptyCell()
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }
func (b *Board) Size() int { return len(b.cells) }

func (b *Board) Idx(row, col int) int { return row*b.cols + col }

// InBounds checks if row, col lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Initialize clears the board and seeds one pawn per cell on the first
// column for first and on the last column for second.
func (b *Board) Initialize(first, second Placer) error {
	if first == nil || second == nil {
		return ErrNilPlayer
	}
	b.clear()
	for r := 0; r < b.rows; r++ {
		b.cells[b.Idx(r, 0)].seed(first.Role())
		b.cells[b.Idx(r, b.cols-1)].seed(second.Role())
	}
	return nil
}

// CellAt returns a copy of the cell at row, col.
func (b *Board) CellAt(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, ErrInvalidPosition
	}
	return b.cells[b.Idx(row, col)], nil
}

// Grid returns a copied [row][col] view of the cells.
func (b *Board) Grid() [][]Cell {
	g := make([][]Cell, b.rows)
	for r := range g {
		g[r] = make([]Cell, b.cols)
		copy(g[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return g
}

// CanPlace reports whether role may put card on row, col.
func (b *Board) CanPlace(role Role, card *Card, row, col int) bool {
	return card != nil && b.checkCell(role, card, row, col) == nil
}

func (b *Board) checkCell(role Role, card *Card, row, col int) error {
	if !b.InBounds(row, col) {
		return ErrInvalidPosition
	}
	cell := b.cells[b.Idx(row, col)]
	if cell.HasCard() {
		return ErrCellOccupied
	}
	if cell.owner != NoRole && cell.owner != role {
		return ErrOpponentControlled
	}
	if cell.pawns < card.Cost() {
		return ErrInsufficientPawns
	}
	return nil
}

// ValidatePlacement checks every placement rule for p's hand card cardIdx
// at row, col. Failures are *PlacementError values wrapping a sentinel.
func (b *Board) ValidatePlacement(p Placer, cardIdx, row, col int) error {
	if p == nil {
		return ErrNilPlayer
	}
	role := p.Role()
	if !b.InBounds(row, col) {
		return WrapPlacementError(role, cardIdx, row, col, ErrInvalidPosition)
	}
	hand := p.Hand()
	if cardIdx < 0 || cardIdx >= len(hand) {
		return WrapPlacementError(role, cardIdx, row, col, ErrInvalidHandIndex)
	}
	return WrapPlacementError(role, cardIdx, row, col, b.checkCell(role, hand[cardIdx], row, col))
}

// IsLegalPlacement reports whether ValidatePlacement would succeed.
func (b *Board) IsLegalPlacement(p Placer, cardIdx, row, col int) bool {
	return b.ValidatePlacement(p, cardIdx, row, col) == nil
}

// Place puts p's hand card cardIdx on row, col and propagates its influence.
func (b *Board) Place(p Placer, cardIdx, row, col int) error {
	if err := b.ValidatePlacement(p, cardIdx, row, col); err != nil {
		return err
	}
	role := p.Role()
	card := p.Hand()[cardIdx]
	if err := p.RemoveFromHand(cardIdx); err != nil {
		return WrapPlacementError(role, cardIdx, row, col, err)
	}
	if card.Owner() != role {
		card = card.WithOwner(role)
	}
	b.cells[b.Idx(row, col)].setCard(card)
	b.applyInfluence(card, row, col)
	return nil
}

func (b *Board) applyInfluence(card *Card, row, col int) {
	origin := Position{Row: row, Col: col}
	for _, off := range card.offsets {
		target := origin.Add(off)
		if !b.InBounds(target.Row, target.Col) {
			continue
		}
		b.cells[b.Idx(target.Row, target.Col)].addPawns(card.Owner())
	}
}

// Scores holds a value per side.
type Scores struct {
	Red, Blue int
}

// Of returns role's score.
func (s Scores) Of(role Role) int {
	switch role {
	case Red:
		return s.Red
	case Blue:
		return s.Blue
	default:
		return 0
	}
}

// Diff returns role's score minus its opponent's.
func (s Scores) Diff(role Role) int {
	return s.Of(role) - s.Of(role.Opponent())
}

// Leader returns the side with the strictly higher score, NoRole on a tie.
func (s Scores) Leader() Role {
	switch {
	case s.Red > s.Blue:
		return Red
	case s.Blue > s.Red:
		return Blue
	default:
		return NoRole
	}
}

// RowScores sums placed card values per side in one row.
func (b *Board) RowScores(row int) (Scores, error) {
	if row < 0 || row >= b.rows {
		return Scores{}, ErrInvalidPosition
	}
	return b.rowScores(row), nil
}

func (b *Board) rowScores(row int) Scores {
	var s Scores
	for _, cell := range b.cells[row*b.cols : (row+1)*b.cols] {
		if cell.card == nil {
			continue
		}
		switch cell.owner {
		case Red:
			s.Red += cell.card.Value()
		case Blue:
			s.Blue += cell.card.Value()
		}
	}
	return s
}

// TotalScores awards each row's score to the side that strictly leads it.
func (b *Board) TotalScores() Scores {
	var total Scores
	for r := 0; r < b.rows; r++ {
		rs := b.rowScores(r)
		switch rs.Leader() {
		case Red:
			total.Red += rs.Red
		case Blue:
			total.Blue += rs.Blue
		}
	}
	return total
}

// RemainingEmptyCells counts cells without a card.
func (b *Board) RemainingEmptyCells() int {
	n := 0
	for _, cell := range b.cells {
		if cell.IsEmpty() {
			n++
		}
	}
	return n
}

// OwnedCount counts cells controlled by role, carded or not.
func (b *Board) OwnedCount(role Role) int {
	n := 0
	for _, cell := range b.cells {
		if cell.IsOwnedBy(role) {
			n++
		}
	}
	return n
}

// MaxPawns returns the highest pawn count on any cell role owns, or 0.
func (b *Board) MaxPawns(role Role) int {
	best := 0
	for _, cell := range b.cells {
		if cell.IsOwnedBy(role) && cell.pawns > best {
			best = cell.pawns
		}
	}
	return best
}

// Clone returns a deep copy. Cards are immutable and shared.
func (b *Board) Clone() *Board {
	cp := &Board{rows: b.rows, cols: b.cols, cells: make([]Cell, len(b.cells))}
	copy(cp.cells, b.cells)
	return cp
}
