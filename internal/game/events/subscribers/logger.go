package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
)

// LoggerSubscriber writes one structured log line per game event.
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	// only, when non-nil, restricts logging to these event types.
	only    map[string]bool
	devMode bool
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter limits logging to eventTypes. An empty list logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.only = nil
		return
	}
	ls.only = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.only[eventType] = true
	}
}

// SetDevMode attaches the full JSON event to every line.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) { ls.devMode = enabled }

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	return ls.only == nil || ls.only[eventType]
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	level := ls.logLevel
	if level < zerolog.DebugLevel || level > zerolog.ErrorLevel {
		level = zerolog.InfoLevel
	}
	line := ls.logger.WithLevel(level).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	addFields(line, event)

	if ls.devMode {
		if raw, err := json.Marshal(event); err == nil {
			line.RawJSON("event_data", raw)
		}
	}
	line.Msg("Game event")
}

func addFields(line *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		line.Int("rows", e.Rows).
			Int("cols", e.Cols).
			Int("hand_size", e.HandSize).
			Int("red_deck", e.RedDeckSize).
			Int("blue_deck", e.BlueDeckSize)
	case *events.GameEndedEvent:
		line.Str("winner", e.Winner.String()).
			Int("red_score", e.Scores.Red).
			Int("blue_score", e.Scores.Blue).
			Dur("duration", e.Duration)
	case *events.CardPlacedEvent:
		line.Str("role", e.Role.String()).
			Str("card", e.CardName).
			Int("card_index", e.CardIndex).
			Int("row", e.Row).
			Int("col", e.Col).
			Int("cost", e.Cost).
			Int("value", e.Value).
			Int("red_score", e.Scores.Red).
			Int("blue_score", e.Scores.Blue)
	case *events.CardDrawnEvent:
		line.Str("role", e.Role.String()).
			Bool("drawn", e.Drawn).
			Int("deck_remaining", e.DeckRemaining).
			Int("hand_size", e.HandSize)
		if e.Drawn {
			line.Str("card", e.CardName)
		}
	case *events.PlayerSwitchedEvent:
		line.Str("from", e.From.String()).Str("to", e.To.String())
	case *events.PassRecordedEvent:
		line.Str("role", e.Role.String()).Int("consecutive_passes", e.ConsecutivePasses)
	case *events.PassResetEvent:
		line.Str("role", e.Role.String())
	case *events.StateTransitionEvent:
		line.Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}
}
