package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseNotStarted - Game constructed, decks not dealt
	PhaseNotStarted GamePhase = iota

	// PhaseStarted - Hands dealt, commands accepted
	PhaseStarted

	// PhaseOver - Game-over condition observed
	PhaseOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseStarted:
		return "Started"
	case PhaseOver:
		return "Over"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseOver
}

// CanReceiveCommands returns true if game commands and queries are legal in this phase
func (p GamePhase) CanReceiveCommands() bool {
	return p == PhaseStarted || p == PhaseOver
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseNotStarted:
		return []GamePhase{PhaseStarted}
	case PhaseStarted:
		return []GamePhase{PhaseOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
