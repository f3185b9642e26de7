package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
)

// State hooks into a phase's lifecycle. Validate runs before the
// transition, Enter after the phase has changed. A failing Enter rolls the
// transition back; a failing Exit is only logged.
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	Validate(ctx *GameContext) error
}

// Transition is one entry of the machine's history.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks a game's phase and keeps a bounded transition history.
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine starts in PhaseNotStarted with the default states
// registered. Transitions are published to publisher, which may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseNotStarted,
		states:         make(map[GamePhase]State, 3),
		context:        ctx,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 16,
		publisher:      publisher,
	}
	for _, state := range []State{NewNotStartedState(), NewStartedState(), NewOverState()} {
		sm.states[state.Phase()] = state
	}
	return sm
}

// RegisterState replaces the implementation for state's phase.
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase
}

// TransitionTo moves to target. The state.transition event is published
// after the machine's lock is released.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	event, err := sm.transition(target, reason)
	if err != nil {
		return err
	}
	if sm.publisher != nil {
		sm.publisher.Publish(event)
	}
	return nil
}

func (sm *StateMachine) transition(target GamePhase, reason string) (events.Event, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.currentPhase
	if !from.CanTransitionTo(target) {
		return nil, fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		return nil, fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.context); err != nil {
		return nil, fmt.Errorf("target state validation failed: %w", err)
	}

	if prev, ok := sm.states[from]; ok {
		if err := prev.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.currentPhase = target
	if err := next.Enter(sm.context); err != nil {
		sm.currentPhase = from
		return nil, fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	sm.addToHistory(Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	sm.context.Logger.Info().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return events.NewStateTransitionEvent(sm.context.GameID, from.String(), target.String(), reason), nil
}

func (sm *StateMachine) addToHistory(t Transition) {
	sm.history = append(sm.history, t)
	if over := len(sm.history) - sm.maxHistorySize; over > 0 {
		sm.history = sm.history[over:]
	}
}

// GetHistory returns a copy of the recorded transitions, oldest first.
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase.CanTransitionTo(target)
}
