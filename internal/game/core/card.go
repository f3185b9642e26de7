package core

import (
	"fmt"
	"strings"
)

const (
	// PatternSize is the width and height of a card's influence grid.
	PatternSize = 5
	// patternCenter is the index of the grid's centre row and column.
	patternCenter = PatternSize / 2

	MinCardCost = 1
	MaxCardCost = 3
)

// Influence is one entry of a card's 5x5 influence grid.
type Influence uint8

const (
	InfluenceNone Influence = iota
	InfluenceMark
	InfluenceCenter
)

// Rune returns the deck-file character for the influence.
func (i Influence) Rune() rune {
	switch i {
	case InfluenceMark:
		return 'I'
	case InfluenceCenter:
		return 'C'
	default:
		return 'X'
	}
}

// ParseInfluence maps a deck-file character to an Influence.
func ParseInfluence(r rune) (Influence, error) {
	switch r {
	case 'X', 'x':
		return InfluenceNone, nil
	case 'I', 'i':
		return InfluenceMark, nil
	case 'C', 'c':
		return InfluenceCenter, nil
	default:
		return InfluenceNone, fmt.Errorf("%w: unknown influence symbol %q", ErrInvalidCard, r)
	}
}

// Pattern is a card's influence grid indexed [row][col].
type Pattern [PatternSize][PatternSize]Influence

// Offset is a row/column displacement from a card's placement cell.
type Offset struct {
	DRow, DCol int
}

// Card is an immutable playing card. The pattern is stored as written;
// owner-relative views are derived on demand.
type Card struct {
	name    string
	owner   Role
	cost    int
	value   int
	pattern Pattern
	offsets []Offset
}

// NewCard validates and builds a card.
func NewCard(name string, owner Role, cost, value int, pattern Pattern) (*Card, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidCard)
	}
	if !owner.IsValid() {
		return nil, fmt.Errorf("%w: card %q has owner %s", ErrInvalidCard, name, owner)
	}
	if cost < MinCardCost || cost > MaxCardCost {
		return nil, fmt.Errorf("%w: card %q cost %d outside [%d,%d]", ErrInvalidCard, name, cost, MinCardCost, MaxCardCost)
	}
	if value < 0 {
		return nil, fmt.Errorf("%w: card %q has negative value %d", ErrInvalidCard, name, value)
	}
	for i := 0; i < PatternSize; i++ {
		for j := 0; j < PatternSize; j++ {
			isCenter := i == patternCenter && j == patternCenter
			if isCenter && pattern[i][j] != InfluenceCenter {
				return nil, fmt.Errorf("%w: card %q centre must be C", ErrInvalidCard, name)
			}
			if !isCenter && pattern[i][j] == InfluenceCenter {
				return nil, fmt.Errorf("%w: card %q has extra centre at (%d,%d)", ErrInvalidCard, name, i, j)
			}
		}
	}

	c := &Card{name: name, owner: owner, cost: cost, value: value, pattern: pattern}
	c.offsets = c.computeOffsets()
	return c, nil
}

// NewCardFromRows builds a card from five strings of five X/I/C characters.
func NewCardFromRows(name string, owner Role, cost, value int, rows []string) (*Card, error) {
	if len(rows) != PatternSize {
		return nil, fmt.Errorf("%w: card %q needs %d pattern rows, got %d", ErrInvalidCard, name, PatternSize, len(rows))
	}
	var p Pattern
	for i, row := range rows {
		runes := []rune(row)
		if len(runes) != PatternSize {
			return nil, fmt.Errorf("%w: card %q row %d has %d symbols", ErrInvalidCard, name, i, len(runes))
		}
		for j, r := range runes {
			inf, err := ParseInfluence(r)
			if err != nil {
				return nil, err
			}
			p[i][j] = inf
		}
	}
	return NewCard(name, owner, cost, value, p)
}

func (c *Card) computeOffsets() []Offset {
	dir := c.owner.ColumnDirection()
	var out []Offset
	for i := 0; i < PatternSize; i++ {
		for j := 0; j < PatternSize; j++ {
			if c.pattern[i][j] == InfluenceMark {
				out = append(out, Offset{DRow: i - patternCenter, DCol: dir * (j - patternCenter)})
			}
		}
	}
	return out
}

func (c *Card) Name() string { return c.name }
func (c *Card) Owner() Role  { return c.owner }
func (c *Card) Cost() int    { return c.cost }
func (c *Card) Value() int   { return c.value }

// Pattern returns the grid as written in the deck.
func (c *Card) Pattern() Pattern { return c.pattern }

// OwnerView returns the grid as seen by the owner: Blue cards are
// column-mirrored.
func (c *Card) OwnerView() Pattern {
	if c.owner.ColumnDirection() > 0 {
		return c.pattern
	}
	var v Pattern
	for i := 0; i < PatternSize; i++ {
		for j := 0; j < PatternSize; j++ {
			v[i][PatternSize-1-j] = c.pattern[i][j]
		}
	}
	return v
}

// Offsets lists the cells a placement influences, relative to the
// placement cell and already oriented for the owner.
func (c *Card) Offsets() []Offset {
	out := make([]Offset, len(c.offsets))
	copy(out, c.offsets)
	return out
}

// Clone returns an independent copy of the card.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	cp.offsets = c.Offsets()
	return &cp
}

// WithOwner returns a copy of the card owned by role.
func (c *Card) WithOwner(role Role) *Card {
	cp := c.Clone()
	cp.owner = role
	cp.offsets = cp.computeOffsets()
	return cp
}

func (c *Card) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (cost %d, value %d)\n", c.name, c.cost, c.value)
	for i := 0; i < PatternSize; i++ {
		for j := 0; j < PatternSize; j++ {
			sb.WriteRune(c.pattern[i][j].Rune())
		}
		if i < PatternSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
