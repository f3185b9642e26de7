package states

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("NotStartedState", func(t *testing.T) {
		state := NewNotStartedState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseNotStarted, state.Phase())
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
		assert.NoError(t, state.Validate(ctx))
	})

	t.Run("StartedState", func(t *testing.T) {
		state := NewStartedState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseStarted, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.WithinDuration(t, time.Now(), ctx.StartTime, time.Second)
		assert.NoError(t, state.Exit(ctx))

		err := state.Validate(NewGameContext("", logger))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "game id")
	})

	t.Run("OverState", func(t *testing.T) {
		state := NewOverState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseOver, state.Phase())
		assert.Error(t, state.Validate(ctx), "cannot end before starting")

		ctx.StartTime = time.Now().Add(-time.Minute)
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.EndTime.IsZero())
		assert.Error(t, state.Exit(ctx))
	})
}
