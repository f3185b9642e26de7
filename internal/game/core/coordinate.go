package core

import "fmt"

// Position addresses a board cell by row and column.
type Position struct {
	Row, Col int
}

// NewPosition creates a position at row, col.
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// FromIndex creates a position from a row-major board index.
func FromIndex(idx, cols int) Position {
	return Position{Row: idx / cols, Col: idx % cols}
}

// IsValid checks if the position is within a rows x cols board.
func (p Position) IsValid(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// ToIndex converts the position to a row-major board index.
func (p Position) ToIndex(cols int) int {
	return p.Row*cols + p.Col
}

// Add shifts the position by an influence offset.
func (p Position) Add(o Offset) Position {
	return Position{Row: p.Row + o.DRow, Col: p.Col + o.DCol}
}

// Less orders positions row-major.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move is either a placement of a hand card on a cell or a pass.
type Move struct {
	pass      bool
	cardIndex int
	pos       Position
}

// PlaceMove plays hand card cardIdx at row, col.
func PlaceMove(cardIdx, row, col int) Move {
	return Move{cardIndex: cardIdx, pos: Position{Row: row, Col: col}}
}

// PassMove skips the turn.
func PassMove() Move {
	return Move{pass: true, cardIndex: -1, pos: Position{Row: -1, Col: -1}}
}

func (m Move) IsPass() bool       { return m.pass }
func (m Move) CardIndex() int     { return m.cardIndex }
func (m Move) Row() int           { return m.pos.Row }
func (m Move) Col() int           { return m.pos.Col }
func (m Move) Position() Position { return m.pos }

// Less orders placements by row, then column, then hand index. Passes sort last.
func (m Move) Less(other Move) bool {
	if m.pass != other.pass {
		return other.pass
	}
	if m.pos != other.pos {
		return m.pos.Less(other.pos)
	}
	return m.cardIndex < other.cardIndex
}

func (m Move) String() string {
	if m.pass {
		return "pass"
	}
	return fmt.Sprintf("place card %d at %s", m.cardIndex, m.pos)
}
