package events

import (
	"time"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeCardPlaced      = "card.placed"
	TypeCardDrawn       = "card.drawn"
	TypePlayerSwitched  = "player.switched"
	TypePassRecorded    = "pass.recorded"
	TypePassReset       = "pass.reset"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Rows         int
	Cols         int
	HandSize     int
	RedDeckSize  int
	BlueDeckSize int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, rows, cols, handSize, redDeck, blueDeck int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		Rows:         rows,
		Cols:         cols,
		HandSize:     handSize,
		RedDeckSize:  redDeck,
		BlueDeckSize: blueDeck,
	}
}

// GameEndedEvent is published the first time a game is observed to be over
type GameEndedEvent struct {
	BaseEvent
	Winner   core.Role
	Scores   core.Scores
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Role, scores core.Scores, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		Scores:    scores,
		Duration:  duration,
	}
}

// CardPlacedEvent is published after a card lands on the board
type CardPlacedEvent struct {
	BaseEvent
	Role      core.Role
	CardName  string
	CardIndex int
	Row       int
	Col       int
	Cost      int
	Value     int
	Scores    core.Scores
}

// NewCardPlacedEvent creates a new CardPlacedEvent
func NewCardPlacedEvent(gameID string, role core.Role, card *core.Card, cardIdx, row, col int, scores core.Scores) *CardPlacedEvent {
	return &CardPlacedEvent{
		BaseEvent: newBase(TypeCardPlaced, gameID),
		Role:      role,
		CardName:  card.Name(),
		CardIndex: cardIdx,
		Row:       row,
		Col:       col,
		Cost:      card.Cost(),
		Value:     card.Value(),
		Scores:    scores,
	}
}

// CardDrawnEvent is published after a draw attempt. Drawn is false when
// the deck was exhausted or the hand was full.
type CardDrawnEvent struct {
	BaseEvent
	Role          core.Role
	CardName      string
	Drawn         bool
	DeckRemaining int
	HandSize      int
}

// NewCardDrawnEvent creates a new CardDrawnEvent. card may be nil.
func NewCardDrawnEvent(gameID string, role core.Role, card *core.Card, deckRemaining, handSize int) *CardDrawnEvent {
	e := &CardDrawnEvent{
		BaseEvent:     newBase(TypeCardDrawn, gameID),
		Role:          role,
		DeckRemaining: deckRemaining,
		HandSize:      handSize,
	}
	if card != nil {
		e.CardName = card.Name()
		e.Drawn = true
	}
	return e
}

// PlayerSwitchedEvent is published when the turn passes to the other side
type PlayerSwitchedEvent struct {
	BaseEvent
	From core.Role
	To   core.Role
}

// NewPlayerSwitchedEvent creates a new PlayerSwitchedEvent
func NewPlayerSwitchedEvent(gameID string, from, to core.Role) *PlayerSwitchedEvent {
	return &PlayerSwitchedEvent{
		BaseEvent: newBase(TypePlayerSwitched, gameID),
		From:      from,
		To:        to,
	}
}

// PassRecordedEvent is published when the consecutive pass counter grows
type PassRecordedEvent struct {
	BaseEvent
	Role              core.Role
	ConsecutivePasses int
}

// NewPassRecordedEvent creates a new PassRecordedEvent
func NewPassRecordedEvent(gameID string, role core.Role, passes int) *PassRecordedEvent {
	return &PassRecordedEvent{
		BaseEvent:         newBase(TypePassRecorded, gameID),
		Role:              role,
		ConsecutivePasses: passes,
	}
}

// PassResetEvent is published when the consecutive pass counter is cleared
type PassResetEvent struct {
	BaseEvent
	Role core.Role
}

// NewPassResetEvent creates a new PassResetEvent
func NewPassResetEvent(gameID string, role core.Role) *PassResetEvent {
	return &PassResetEvent{
		BaseEvent: newBase(TypePassReset, gameID),
		Role:      role,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
