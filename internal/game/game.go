package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/PawnsBoard/internal/config"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/rules"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/states"
)

// GameConfig holds everything needed to build a Game.
type GameConfig struct {
	Rows       int
	Cols       int
	HandSize   int
	Rng        *rand.Rand
	Logger     zerolog.Logger
	GameID     string
	DrawPolicy DrawPolicy
	// EventBus is optional; a private bus is created when nil.
	EventBus events.Bus
}

// ConfigFromSettings maps loaded settings onto a GameConfig. A zero seed
// leaves Rng nil so the game seeds from the clock.
func ConfigFromSettings(c *config.Config, logger zerolog.Logger) GameConfig {
	gc := GameConfig{
		Rows:     c.Game.Board.Rows,
		Cols:     c.Game.Board.Cols,
		HandSize: c.Game.HandSize,
		Logger:   logger,
		DrawPolicy: DrawPolicy{
			SeedRatio:      c.Game.DrawPolicy.SeedRatio,
			PlateauWeights: c.Game.DrawPolicy.PlateauWeights,
			NormalWeights:  c.Game.DrawPolicy.NormalWeights,
		},
	}
	if c.Game.Seed != 0 {
		gc.Rng = rand.New(rand.NewSource(uint64(c.Game.Seed)))
	}
	return gc
}

// outbox buffers events produced while the game lock is held.
type outbox struct {
	pending []events.Event
}

func (o *outbox) Publish(e events.Event) { o.pending = append(o.pending, e) }

func (o *outbox) drain() []events.Event {
	out := o.pending
	o.pending = nil
	return out
}

// Game is the authoritative match state: board, both players, the turn and
// the consecutive pass counter.
type Game struct {
	mu sync.RWMutex

	id       string
	handSize int
	board    *core.Board
	players  [2]*Player
	current  core.Role
	passes   int

	bus     events.Bus
	outbox  *outbox
	sm      *states.StateMachine
	checker *rules.WinConditionChecker
	logger  zerolog.Logger
}

// NewGame creates an unstarted game.
func NewGame(cfg GameConfig) (*Game, error) {
	board, err := core.NewBoard(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	if cfg.HandSize <= 0 {
		return nil, core.ErrInvalidHandSize
	}

	policy := cfg.DrawPolicy
	if policy == (DrawPolicy{}) {
		policy = DefaultDrawPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid draw policy: %w", err)
	}

	id := cfg.GameID
	if id == "" {
		id = uuid.NewString()
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	g := &Game{
		id:       id,
		handSize: cfg.HandSize,
		board:    board,
		current:  core.Red,
		bus:      cfg.EventBus,
		outbox:   &outbox{},
		checker:  rules.NewWinConditionChecker(cfg.Logger),
		logger:   cfg.Logger.With().Str("component", "Game").Str("game_id", id).Logger(),
	}
	if g.bus == nil {
		g.bus = events.NewEventBusWithLogger(cfg.Logger)
	}
	for _, role := range core.Roles {
		p, err := NewPlayer(role, cfg.HandSize, rng, policy, cfg.Logger)
		if err != nil {
			return nil, err
		}
		g.players[role] = p
	}
	g.sm = states.NewStateMachine(states.NewGameContext(id, cfg.Logger), g.outbox)
	return g, nil
}

// publish delivers events drained from the outbox. Callers must not hold g.mu.
func (g *Game) publish(pending []events.Event) {
	for _, e := range pending {
		g.bus.Publish(e)
	}
}

// StartGame deals both decks, seeds the board and draws for Red.
func (g *Game) StartGame(redDeck, blueDeck []*core.Card) error {
	g.mu.Lock()
	if g.sm.CurrentPhase() != states.PhaseNotStarted {
		g.mu.Unlock()
		return core.ErrAlreadyStarted
	}

	capacity := g.board.Size()
	if err := g.players[core.Blue].Initialize(capacity, blueDeck); err != nil {
		g.mu.Unlock()
		return err
	}
	if err := g.players[core.Red].Initialize(capacity, redDeck); err != nil {
		g.mu.Unlock()
		return err
	}
	if err := g.board.Initialize(g.players[core.Red], g.players[core.Blue]); err != nil {
		g.mu.Unlock()
		return err
	}
	if err := g.sm.TransitionTo(states.PhaseStarted, "decks dealt"); err != nil {
		g.mu.Unlock()
		return err
	}
	g.current = core.Red

	g.outbox.Publish(events.NewGameStartedEvent(g.id, g.board.Rows(), g.board.Cols(), g.handSize, len(redDeck), len(blueDeck)))
	g.drawForCurrent()
	g.observeGameOver()

	pending := g.outbox.drain()
	g.mu.Unlock()

	g.publish(pending)
	return nil
}

// mutate runs fn under the write lock once the game has started, then
// publishes whatever fn produced.
func (g *Game) mutate(command string, fn func() error) error {
	g.mu.Lock()
	if !g.sm.CurrentPhase().CanReceiveCommands() {
		g.mu.Unlock()
		return core.WrapCommandError(command, core.ErrGameNotStarted)
	}

	err := fn()
	if err == nil {
		g.observeGameOver()
	}

	pending := g.outbox.drain()
	g.mu.Unlock()

	g.publish(pending)
	return err
}

// PlaceCard plays card cardIdx from the current player's hand at (row, col).
// Pass bookkeeping is left to the caller.
func (g *Game) PlaceCard(row, col, cardIdx int) error {
	return g.mutate("place card", func() error {
		p := g.players[g.current]
		hand := p.Hand()
		if err := g.board.Place(p, cardIdx, row, col); err != nil {
			return err
		}
		card := hand[cardIdx]
		scores := g.board.TotalScores()

		g.logger.Debug().
			Str("role", g.current.String()).
			Str("card", card.Name()).
			Int("row", row).
			Int("col", col).
			Msg("Card placed")
		g.outbox.Publish(events.NewCardPlacedEvent(g.id, g.current, card, cardIdx, row, col, scores))
		return nil
	})
}

// SwitchCurrentPlayer hands the turn to the opponent, who then draws.
func (g *Game) SwitchCurrentPlayer() error {
	return g.mutate("switch player", func() error {
		from := g.current
		g.current = from.Opponent()
		g.outbox.Publish(events.NewPlayerSwitchedEvent(g.id, from, g.current))
		g.drawForCurrent()
		return nil
	})
}

// DrawNewCardForCurrentPlayer draws for the current player. The card is nil
// when the deck is exhausted or the hand is full.
func (g *Game) DrawNewCardForCurrentPlayer() (*core.Card, error) {
	var card *core.Card
	err := g.mutate("draw card", func() error {
		card = g.drawForCurrent()
		return nil
	})
	return card, err
}

func (g *Game) drawForCurrent() *core.Card {
	p := g.players[g.current]
	card := p.DrawNewCard(g.board)
	g.outbox.Publish(events.NewCardDrawnEvent(g.id, g.current, card, p.DeckSize(), p.HandSize()))
	return card
}

// IncreaseConsecutivePass records a pass by the current player.
func (g *Game) IncreaseConsecutivePass() error {
	return g.mutate("increase pass", func() error {
		g.passes++
		g.outbox.Publish(events.NewPassRecordedEvent(g.id, g.current, g.passes))
		return nil
	})
}

// ResetConsecutivePass clears the pass counter.
func (g *Game) ResetConsecutivePass() error {
	return g.mutate("reset pass", func() error {
		g.passes = 0
		g.outbox.Publish(events.NewPassResetEvent(g.id, g.current))
		return nil
	})
}

func (g *Game) isOver() bool {
	return g.checker.CheckGameOver(g.passes, g.board, g.players[core.Red], g.players[core.Blue])
}

// observeGameOver moves the state machine to Over the first time the
// computed condition holds. Caller holds g.mu.
func (g *Game) observeGameOver() {
	if g.sm.CurrentPhase().IsTerminal() || !g.isOver() {
		return
	}

	ctx := g.sm.GetContext()
	ctx.Winner = g.checker.Winner(g.board)
	if err := g.sm.TransitionTo(states.PhaseOver, g.overReason()); err != nil {
		g.logger.Error().Err(err).Msg("Failed to record game over")
		return
	}
	g.outbox.Publish(events.NewGameEndedEvent(g.id, ctx.Winner, g.board.TotalScores(), ctx.GetElapsedTime()))
}

func (g *Game) overReason() string {
	switch {
	case g.passes >= rules.PassLimit:
		return "consecutive passes"
	case g.board.RemainingEmptyCells() == 0:
		return "board full"
	default:
		return "cards exhausted"
	}
}

// read runs fn under the read lock once the game has started.
func (g *Game) read(fn func()) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.sm.CurrentPhase().CanReceiveCommands() {
		return core.ErrGameNotStarted
	}
	fn()
	return nil
}

// IsGameOver reports whether two consecutive passes happened, the board is
// full, or both players are out of cards.
func (g *Game) IsGameOver() (bool, error) {
	var over bool
	err := g.read(func() { over = g.isOver() })
	return over, err
}

// CurrentPlayer returns the role whose turn it is.
func (g *Game) CurrentPlayer() (core.Role, error) {
	role := core.NoRole
	err := g.read(func() { role = g.current })
	return role, err
}

// Board returns a copy of the board.
func (g *Game) Board() (*core.Board, error) {
	var b *core.Board
	err := g.read(func() { b = g.board.Clone() })
	return b, err
}

// HandSizeLimit returns the configured hand size.
func (g *Game) HandSizeLimit() (int, error) {
	var n int
	err := g.read(func() { n = g.handSize })
	return n, err
}

// Winner returns the leading role once the game is over. It is NoRole while
// the game runs and on a tie.
func (g *Game) Winner() (core.Role, error) {
	winner := core.NoRole
	err := g.read(func() {
		if g.isOver() {
			winner = g.board.TotalScores().Leader()
		}
	})
	return winner, err
}

// Player returns a copy of the player for role.
func (g *Game) Player(role core.Role) (*Player, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	var p *Player
	err := g.read(func() { p = g.players[role].Clone() })
	return p, err
}

// Hand returns a copy of role's hand.
func (g *Game) Hand(role core.Role) ([]*core.Card, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	var hand []*core.Card
	err := g.read(func() { hand = g.players[role].Hand() })
	return hand, err
}

// ConsecutivePasses returns the current pass counter.
func (g *Game) ConsecutivePasses() (int, error) {
	var n int
	err := g.read(func() { n = g.passes })
	return n, err
}

// Scores returns the current winner-take-all totals.
func (g *Game) Scores() (core.Scores, error) {
	var s core.Scores
	err := g.read(func() { s = g.board.TotalScores() })
	return s, err
}

func (g *Game) Phase() states.GamePhase { return g.sm.CurrentPhase() }
func (g *Game) GameID() string          { return g.id }

// History returns the recorded phase transitions.
func (g *Game) History() []states.Transition { return g.sm.GetHistory() }

// Subscribe registers a subscriber on the game's event bus.
func (g *Game) Subscribe(s events.Subscriber) { g.bus.Subscribe(s) }

// Unsubscribe removes a subscriber by id.
func (g *Game) Unsubscribe(id string) { g.bus.Unsubscribe(id) }

// SubscribeFunc registers handler for eventType and returns its id.
func (g *Game) SubscribeFunc(eventType string, handler events.EventHandler) string {
	return g.bus.SubscribeFunc(eventType, handler)
}

// UnsubscribeFunc removes a handler registered with SubscribeFunc.
func (g *Game) UnsubscribeFunc(id string) { g.bus.UnsubscribeFunc(id) }
