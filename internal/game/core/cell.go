package core

// MaxPawns caps the pawn count any cell can hold.
const MaxPawns = 3

// Cell is one board slot. It holds either pawns or a placed card, never both.
type Cell struct {
	owner Role
	card  *Card
	pawns int
}

func emptyCell() Cell { return Cell{owner: NoRole} }

func (c Cell) Owner() Role   { return c.owner }
func (c Cell) Card() *Card   { return c.card }
func (c Cell) Pawns() int    { return c.pawns }
func (c Cell) HasCard() bool { return c.card != nil }

// IsEmpty reports whether the cell has no card. Pawns do not fill a cell.
func (c Cell) IsEmpty() bool { return c.card == nil }

// IsOwnedBy reports whether role controls the cell.
func (c Cell) IsOwnedBy(role Role) bool { return c.owner == role && role != NoRole }

// addPawns applies one unit of influence from role. Carded cells are left alone.
func (c *Cell) addPawns(role Role) {
	if c.card != nil {
		return
	}
	switch c.owner {
	case NoRole:
		c.owner = role
		c.pawns = min(c.pawns+1, MaxPawns)
	case role:
		c.pawns = min(c.pawns+1, MaxPawns)
	default:
		// Control flips; the opponent's pawns carry over to the new owner.
		c.owner = role
		c.pawns = min(c.pawns, MaxPawns)
	}
}

// seed gives role a single pawn on an empty cell.
func (c *Cell) seed(role Role) {
	c.owner = role
	c.pawns = 1
	c.card = nil
}

func (c *Cell) setCard(card *Card) {
	c.card = card
	c.owner = card.Owner()
	c.pawns = 0
}

// Symbol renders the cell for the text view: a card's owner letter, a pawn
// count, or "_" when empty.
func (c Cell) Symbol() string {
	switch {
	case c.card != nil:
		return c.owner.Symbol()
	case c.pawns > 0:
		return string(rune('0' + c.pawns))
	default:
		return "_"
	}
}
