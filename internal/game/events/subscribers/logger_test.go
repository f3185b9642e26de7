package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())

	// Interested in all events by default
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeCardPlaced))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	base := func(eventType string) events.BaseEvent {
		return events.BaseEvent{EventType: eventType, Time: time.Now(), Game: "test-game-1"}
	}

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name: "GameStartedEvent",
			event: &events.GameStartedEvent{
				BaseEvent:    base(events.TypeGameStarted),
				Rows:         3,
				Cols:         5,
				HandSize:     5,
				RedDeckSize:  20,
				BlueDeckSize: 18,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(3), logLine["rows"])
				assert.Equal(t, float64(5), logLine["cols"])
				assert.Equal(t, float64(18), logLine["blue_deck"])
			},
		},
		{
			name: "CardPlacedEvent",
			event: &events.CardPlacedEvent{
				BaseEvent: base(events.TypeCardPlaced),
				Role:      core.Blue,
				CardName:  "Guard",
				CardIndex: 2,
				Row:       1,
				Col:       4,
				Cost:      1,
				Value:     3,
				Scores:    core.Scores{Blue: 3},
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Blue", logLine["role"])
				assert.Equal(t, "Guard", logLine["card"])
				assert.Equal(t, float64(1), logLine["row"])
				assert.Equal(t, float64(4), logLine["col"])
				assert.Equal(t, float64(3), logLine["blue_score"])
			},
		},
		{
			name: "CardDrawnEvent without card",
			event: &events.CardDrawnEvent{
				BaseEvent: base(events.TypeCardDrawn),
				Role:      core.Red,
				HandSize:  4,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, false, logLine["drawn"])
				assert.NotContains(t, logLine, "card")
			},
		},
		{
			name: "PassRecordedEvent",
			event: &events.PassRecordedEvent{
				BaseEvent:         base(events.TypePassRecorded),
				Role:              core.Red,
				ConsecutivePasses: 2,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Red", logLine["role"])
				assert.Equal(t, float64(2), logLine["consecutive_passes"])
			},
		},
		{
			name: "GameEndedEvent",
			event: &events.GameEndedEvent{
				BaseEvent: base(events.TypeGameEnded),
				Winner:    core.NoRole,
				Duration:  time.Minute * 5,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "None", logLine["winner"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			err := json.Unmarshal([]byte(logOutput), &logLine)
			require.NoError(t, err, "Should be able to parse log output as JSON")

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.Nop(), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeCardDrawn))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeCardDrawn))
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("bus-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypePlayerSwitched})

	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(logSub)

	bus.Publish(events.NewPassResetEvent("g", core.Red))
	assert.Empty(t, buf.String())

	bus.Publish(events.NewPlayerSwitchedEvent("g", core.Red, core.Blue))
	assert.Contains(t, buf.String(), `"to":"Blue"`)
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewGameStartedEvent("game1", 3, 5, 5, 20, 20))

			require.NotZero(t, buf.Len())
			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewPassRecordedEvent("dev-game", core.Blue, 1))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), "pass.recorded")
	assert.Contains(t, string(eventDataBytes), "ConsecutivePasses")
}
