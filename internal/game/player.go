package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// DrawRegime is the board situation that decides how a player draws.
type DrawRegime int

const (
	// RegimeSeed - deck has shrunk past the seed ratio, draws are uniform
	RegimeSeed DrawRegime = iota
	// RegimeScarcity - no owned cell has more than one pawn, cheapest first
	RegimeScarcity
	// RegimePlateau - best owned cell has exactly two pawns
	RegimePlateau
	// RegimeNormal - anything else
	RegimeNormal
)

func (r DrawRegime) String() string {
	switch r {
	case RegimeSeed:
		return "seed"
	case RegimeScarcity:
		return "scarcity"
	case RegimePlateau:
		return "plateau"
	case RegimeNormal:
		return "normal"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// DrawPolicy holds the tunables of the draw policy. Weights are
// percentages for the cost-1, cost-2 and cost-3 buckets.
type DrawPolicy struct {
	SeedRatio      float64
	PlateauWeights [3]int
	NormalWeights  [3]int
}

// DefaultDrawPolicy returns the stock policy.
func DefaultDrawPolicy() DrawPolicy {
	return DrawPolicy{
		SeedRatio:      0.6,
		PlateauWeights: [3]int{60, 30, 10},
		NormalWeights:  [3]int{50, 30, 20},
	}
}

// Validate checks the ratio range and that each weight set sums to 100.
func (p DrawPolicy) Validate() error {
	if p.SeedRatio <= 0 || p.SeedRatio > 1 {
		return fmt.Errorf("seed ratio must be in (0,1], got %v", p.SeedRatio)
	}
	for name, w := range map[string][3]int{"plateau": p.PlateauWeights, "normal": p.NormalWeights} {
		sum := 0
		for _, v := range w {
			if v < 0 {
				return fmt.Errorf("%s weights must be non-negative, got %v", name, w)
			}
			sum += v
		}
		if sum != 100 {
			return fmt.Errorf("%s weights must sum to 100, got %d", name, sum)
		}
	}
	return nil
}

// Player holds one side's hand and remaining deck.
type Player struct {
	role             core.Role
	handLimit        int
	hand             []*core.Card
	deck             []*core.Card
	originalDeckSize int
	policy           DrawPolicy
	rng              *rand.Rand
	logger           zerolog.Logger
}

// NewPlayer creates a player with an empty hand and deck. A nil rng is
// replaced by a time-seeded one.
func NewPlayer(role core.Role, handSize int, rng *rand.Rand, policy DrawPolicy, logger zerolog.Logger) (*Player, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	if handSize <= 0 {
		return nil, core.ErrInvalidHandSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Player{
		role:      role,
		handLimit: handSize,
		policy:    policy,
		rng:       rng,
		logger:    logger.With().Str("component", "Player").Str("role", role.String()).Logger(),
	}, nil
}

func (p *Player) Role() core.Role       { return p.role }
func (p *Player) HandLimit() int        { return p.handLimit }
func (p *Player) HandSize() int         { return len(p.hand) }
func (p *Player) DeckSize() int         { return len(p.deck) }
func (p *Player) OriginalDeckSize() int { return p.originalDeckSize }

// Hand returns a copy of the hand in play order.
func (p *Player) Hand() []*core.Card {
	out := make([]*core.Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// RemoveFromHand drops the card at idx.
func (p *Player) RemoveFromHand(idx int) error {
	if idx < 0 || idx >= len(p.hand) {
		return core.ErrInvalidHandIndex
	}
	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	return nil
}

// Initialize takes ownership of deck and deals the opening hand: a random
// cost-1 card first, random fill up to the hand limit, then slot 0 is
// swapped with a random later slot.
func (p *Player) Initialize(boardCapacity int, deck []*core.Card) error {
	if len(deck) < boardCapacity {
		return core.WrapSetupError(p.role, fmt.Errorf("%w: have %d, board holds %d", core.ErrDeckTooSmall, len(deck), boardCapacity))
	}
	if p.handLimit > len(deck)/3 {
		return core.WrapSetupError(p.role, fmt.Errorf("%w: hand %d, deck %d", core.ErrHandSizeTooLarge, p.handLimit, len(deck)))
	}

	var lowCost []int
	for i, c := range deck {
		if c.Cost() == 1 {
			lowCost = append(lowCost, i)
		}
	}
	if len(lowCost) == 0 {
		return core.WrapSetupError(p.role, core.ErrMissingLowCostCard)
	}

	p.deck = make([]*core.Card, len(deck))
	copy(p.deck, deck)
	p.originalDeckSize = len(p.deck)
	p.hand = make([]*core.Card, 0, p.handLimit)

	p.hand = append(p.hand, p.takeFromDeck(lowCost[p.rng.Intn(len(lowCost))]))
	for len(p.hand) < p.handLimit && len(p.deck) > 0 {
		p.hand = append(p.hand, p.takeFromDeck(p.rng.Intn(len(p.deck))))
	}
	if len(p.hand) > 1 {
		other := 1 + p.rng.Intn(len(p.hand)-1)
		p.hand[0], p.hand[other] = p.hand[other], p.hand[0]
	}

	p.logger.Debug().
		Int("deck", len(p.deck)).
		Int("hand", len(p.hand)).
		Msg("Opening hand dealt")
	return nil
}

func (p *Player) takeFromDeck(idx int) *core.Card {
	c := p.deck[idx]
	p.deck = append(p.deck[:idx], p.deck[idx+1:]...)
	return c
}

// ClassifyRegime reports which draw regime applies to board.
func (p *Player) ClassifyRegime(board *core.Board) DrawRegime {
	if float64(len(p.deck)) <= p.policy.SeedRatio*float64(p.originalDeckSize) {
		return RegimeSeed
	}
	switch best := board.MaxPawns(p.role); {
	case best <= 1:
		return RegimeScarcity
	case best == 2:
		return RegimePlateau
	default:
		return RegimeNormal
	}
}

// DrawNewCard moves one card from the deck to the hand following the draw
// policy. It returns nil when the deck is empty or the hand is full.
func (p *Player) DrawNewCard(board *core.Board) *core.Card {
	if len(p.deck) == 0 || len(p.hand) >= p.handLimit {
		return nil
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	regime := p.ClassifyRegime(board)
	var idx int
	switch regime {
	case RegimeSeed:
		idx = p.rng.Intn(len(p.deck))
	case RegimeScarcity:
		idx = p.drawByPriority()
	case RegimePlateau:
		idx = p.drawWeighted(p.policy.PlateauWeights)
	default:
		idx = p.drawWeighted(p.policy.NormalWeights)
	}

	card := p.takeFromDeck(idx)
	p.hand = append(p.hand, card)
	p.logger.Debug().
		Str("regime", regime.String()).
		Str("card", card.Name()).
		Int("cost", card.Cost()).
		Int("deck_remaining", len(p.deck)).
		Msg("Card drawn")
	return card
}

// buckets splits deck indices into cost-1, cost-2 and cost-3+ groups.
func (p *Player) buckets() [3][]int {
	var b [3][]int
	for i, c := range p.deck {
		switch c.Cost() {
		case 1:
			b[0] = append(b[0], i)
		case 2:
			b[1] = append(b[1], i)
		default:
			b[2] = append(b[2], i)
		}
	}
	return b
}

func (p *Player) pick(bucket []int) int {
	return bucket[p.rng.Intn(len(bucket))]
}

func (p *Player) drawByPriority() int {
	for _, bucket := range p.buckets() {
		if len(bucket) > 0 {
			return p.pick(bucket)
		}
	}
	return p.rng.Intn(len(p.deck))
}

func (p *Player) drawWeighted(weights [3]int) int {
	b := p.buckets()
	choice := p.rng.Intn(100)
	switch {
	case choice < weights[0] && len(b[0]) > 0:
		return p.pick(b[0])
	case choice < weights[0]+weights[1] && len(b[1]) > 0:
		return p.pick(b[1])
	case len(b[2]) > 0:
		return p.pick(b[2])
	default:
		return p.rng.Intn(len(p.deck))
	}
}

// Clone returns an independent copy. The clone draws from its own
// time-seeded generator.
func (p *Player) Clone() *Player {
	cp := *p
	cp.hand = p.Hand()
	cp.deck = make([]*core.Card, len(p.deck))
	copy(cp.deck, p.deck)
	cp.rng = nil
	return &cp
}
