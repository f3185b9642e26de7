package game

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/PawnsBoard/internal/config"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/events"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/rules"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/states"
	"github.com/mitchelldurbincs/PawnsBoard/internal/testutil"
)

func newTestGame(t *testing.T, rows, cols, handSize int) *Game {
	t.Helper()
	g, err := NewGame(GameConfig{
		Rows:     rows,
		Cols:     cols,
		HandSize: handSize,
		Rng:      testutil.NewTestRNG(42),
		Logger:   testutil.NopLogger(),
		GameID:   "test-game",
	})
	require.NoError(t, err)
	return g
}

func newStartedGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, 3, 5, 5)
	require.NoError(t, g.StartGame(testutil.CreateTestDeck(core.Red, 15), testutil.CreateTestDeck(core.Blue, 15)))
	return g
}

func lanceDeck(owner core.Role, n int) []*core.Card {
	deck := make([]*core.Card, n)
	for i := range deck {
		deck[i] = testutil.MustCard("lance", owner, 1, 1, testutil.Lance)
	}
	return deck
}

// recordTypes subscribes to every event and returns the recorded types.
func recordTypes(g *Game) *[]string {
	var types []string
	g.SubscribeFunc(events.TypeAll, func(e events.Event) {
		types = append(types, e.Type())
	})
	return &types
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 3, 5, 5)
	assert.Equal(t, "test-game", g.GameID())
	assert.Equal(t, states.PhaseNotStarted, g.Phase())

	tests := []struct {
		name string
		cfg  GameConfig
		want error
	}{
		{"even columns", GameConfig{Rows: 3, Cols: 4, HandSize: 5}, core.ErrInvalidDimensions},
		{"no rows", GameConfig{Rows: 0, Cols: 5, HandSize: 5}, core.ErrInvalidDimensions},
		{"no hand", GameConfig{Rows: 3, Cols: 5, HandSize: 0}, core.ErrInvalidHandSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewGame(GameConfig{Rows: 3, Cols: 5, HandSize: 5, DrawPolicy: DrawPolicy{SeedRatio: 0.5}})
	assert.Error(t, err)
}

func TestNewGame_DefaultID(t *testing.T) {
	g, err := NewGame(GameConfig{Rows: 3, Cols: 5, HandSize: 5, Logger: testutil.NopLogger()})
	require.NoError(t, err)
	_, err = uuid.Parse(g.GameID())
	assert.NoError(t, err)
}

func TestConfigFromSettings(t *testing.T) {
	c := &config.Config{}
	c.Game.Board.Rows = 4
	c.Game.Board.Cols = 7
	c.Game.HandSize = 3
	c.Game.DrawPolicy.SeedRatio = 0.5
	c.Game.DrawPolicy.PlateauWeights = [3]int{70, 20, 10}
	c.Game.DrawPolicy.NormalWeights = [3]int{40, 40, 20}

	gc := ConfigFromSettings(c, testutil.NopLogger())
	assert.Equal(t, 4, gc.Rows)
	assert.Equal(t, 7, gc.Cols)
	assert.Equal(t, 3, gc.HandSize)
	assert.Equal(t, 0.5, gc.DrawPolicy.SeedRatio)
	assert.Equal(t, [3]int{70, 20, 10}, gc.DrawPolicy.PlateauWeights)
	assert.Nil(t, gc.Rng)

	c.Game.Seed = 11
	assert.NotNil(t, ConfigFromSettings(c, testutil.NopLogger()).Rng)
}

func TestGame_CommandsAndQueriesBeforeStart(t *testing.T) {
	g := newTestGame(t, 3, 5, 5)

	commands := map[string]func() error{
		"place":  func() error { return g.PlaceCard(0, 0, 0) },
		"switch": g.SwitchCurrentPlayer,
		"draw": func() error {
			_, err := g.DrawNewCardForCurrentPlayer()
			return err
		},
		"increase": g.IncreaseConsecutivePass,
		"reset":    g.ResetConsecutivePass,
	}
	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, cmd(), core.ErrGameNotStarted)
		})
	}

	_, err := g.IsGameOver()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.CurrentPlayer()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.Board()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.HandSizeLimit()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.Winner()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.Player(core.Red)
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.Hand(core.Blue)
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.ConsecutivePasses()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
	_, err = g.Scores()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)
}

func TestGame_StartGame(t *testing.T) {
	g := newTestGame(t, 3, 5, 5)
	types := recordTypes(g)

	require.NoError(t, g.StartGame(testutil.CreateTestDeck(core.Red, 15), testutil.CreateTestDeck(core.Blue, 15)))

	assert.Equal(t, states.PhaseStarted, g.Phase())
	assert.Equal(t, []string{events.TypeStateTransition, events.TypeGameStarted, events.TypeCardDrawn}, *types)

	current, err := g.CurrentPlayer()
	require.NoError(t, err)
	assert.Equal(t, core.Red, current)

	limit, err := g.HandSizeLimit()
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	for _, role := range core.Roles {
		hand, err := g.Hand(role)
		require.NoError(t, err)
		assert.Len(t, hand, 5)
	}

	board, err := g.Board()
	require.NoError(t, err)
	for row := 0; row < 3; row++ {
		left, _ := board.CellAt(row, 0)
		right, _ := board.CellAt(row, 4)
		assert.Equal(t, core.Red, left.Owner())
		assert.Equal(t, 1, left.Pawns())
		assert.Equal(t, core.Blue, right.Owner())
	}

	over, err := g.IsGameOver()
	require.NoError(t, err)
	assert.False(t, over)

	assert.ErrorIs(t, g.StartGame(testutil.CreateTestDeck(core.Red, 15), testutil.CreateTestDeck(core.Blue, 15)), core.ErrAlreadyStarted)
}

func TestGame_StartGameRejectsBadDecks(t *testing.T) {
	g := newTestGame(t, 3, 5, 5)

	err := g.StartGame(testutil.CreateTestDeck(core.Red, 15), testutil.CreateTestDeck(core.Blue, 10))
	assert.ErrorIs(t, err, core.ErrDeckTooSmall)
	assert.Contains(t, err.Error(), "Blue setup")
	assert.Equal(t, states.PhaseNotStarted, g.Phase())

	_, err = g.CurrentPlayer()
	assert.ErrorIs(t, err, core.ErrGameNotStarted)

	// A failed start can be retried
	require.NoError(t, g.StartGame(testutil.CreateTestDeck(core.Red, 15), testutil.CreateTestDeck(core.Blue, 15)))
}

func TestGame_PlaceCard(t *testing.T) {
	g := newStartedGame(t)
	hand, err := g.Hand(core.Red)
	require.NoError(t, err)
	board, err := g.Board()
	require.NoError(t, err)

	move, ok := rules.NewLegalPlacementCalculator().FirstLegalPlacement(board, hand, core.Red)
	require.True(t, ok)

	var placed *events.CardPlacedEvent
	g.SubscribeFunc(events.TypeCardPlaced, func(e events.Event) {
		placed = e.(*events.CardPlacedEvent)
	})

	require.NoError(t, g.PlaceCard(move.Row(), move.Col(), move.CardIndex()))

	after, err := g.Hand(core.Red)
	require.NoError(t, err)
	assert.Len(t, after, 4)

	board, err = g.Board()
	require.NoError(t, err)
	cell, err := board.CellAt(move.Row(), move.Col())
	require.NoError(t, err)
	assert.True(t, cell.HasCard())
	assert.Equal(t, hand[move.CardIndex()].Name(), cell.Card().Name())

	require.NotNil(t, placed)
	assert.Equal(t, core.Red, placed.Role)
	assert.Equal(t, move.Row(), placed.Row)

	scores, err := g.Scores()
	require.NoError(t, err)
	assert.Equal(t, scores, placed.Scores)

	// Pass bookkeeping is the caller's job
	passes, err := g.ConsecutivePasses()
	require.NoError(t, err)
	assert.Zero(t, passes)
}

func TestGame_PlaceCardErrors(t *testing.T) {
	g := newStartedGame(t)

	tests := []struct {
		name          string
		row, col, idx int
		want          error
	}{
		{"out of bounds", 3, 0, 0, core.ErrInvalidPosition},
		{"bad hand index", 0, 0, 5, core.ErrInvalidHandIndex},
		{"opponent cell", 0, 4, 0, core.ErrOpponentControlled},
		{"no pawns", 1, 2, 0, core.ErrInsufficientPawns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.PlaceCard(tt.row, tt.col, tt.idx)
			assert.ErrorIs(t, err, tt.want)

			var pe *core.PlacementError
			assert.True(t, errors.As(err, &pe))
		})
	}

	hand, err := g.Hand(core.Red)
	require.NoError(t, err)
	assert.Len(t, hand, 5)
}

func TestGame_SwitchDrawsForNewPlayer(t *testing.T) {
	g := newStartedGame(t)
	hand, _ := g.Hand(core.Red)
	board, _ := g.Board()
	move, ok := rules.NewLegalPlacementCalculator().FirstLegalPlacement(board, hand, core.Red)
	require.True(t, ok)
	require.NoError(t, g.PlaceCard(move.Row(), move.Col(), move.CardIndex()))

	var drawn []*events.CardDrawnEvent
	g.SubscribeFunc(events.TypeCardDrawn, func(e events.Event) {
		drawn = append(drawn, e.(*events.CardDrawnEvent))
	})

	require.NoError(t, g.SwitchCurrentPlayer())
	current, _ := g.CurrentPlayer()
	assert.Equal(t, core.Blue, current)
	require.Len(t, drawn, 1)
	assert.Equal(t, core.Blue, drawn[0].Role)
	assert.False(t, drawn[0].Drawn, "blue's hand is full")

	require.NoError(t, g.SwitchCurrentPlayer())
	require.Len(t, drawn, 2)
	assert.True(t, drawn[1].Drawn)
	assert.Equal(t, 9, drawn[1].DeckRemaining)

	redHand, _ := g.Hand(core.Red)
	assert.Len(t, redHand, 5)
}

func TestGame_DrawNewCardForCurrentPlayer(t *testing.T) {
	g := newStartedGame(t)

	card, err := g.DrawNewCardForCurrentPlayer()
	require.NoError(t, err)
	assert.Nil(t, card, "hand already full")

	red, err := g.Player(core.Red)
	require.NoError(t, err)
	assert.Equal(t, 10, red.DeckSize())
}

func TestGame_TwoPassesEndTheGame(t *testing.T) {
	g := newStartedGame(t)
	types := recordTypes(g)

	var winnerSeen core.Role = core.Red
	g.SubscribeFunc(events.TypeGameEnded, func(e events.Event) {
		// Subscribers may query the game while it notifies
		winnerSeen, _ = g.Winner()
	})

	require.NoError(t, g.IncreaseConsecutivePass())
	over, _ := g.IsGameOver()
	assert.False(t, over)

	require.NoError(t, g.SwitchCurrentPlayer())
	require.NoError(t, g.IncreaseConsecutivePass())

	over, err := g.IsGameOver()
	require.NoError(t, err)
	assert.True(t, over)
	assert.Equal(t, states.PhaseOver, g.Phase())

	winner, err := g.Winner()
	require.NoError(t, err)
	assert.Equal(t, core.NoRole, winner, "no cards placed is a tie")
	assert.Equal(t, core.NoRole, winnerSeen)

	assert.Equal(t, []string{
		events.TypePassRecorded,
		events.TypePlayerSwitched,
		events.TypeCardDrawn,
		events.TypePassRecorded,
		events.TypeStateTransition,
		events.TypeGameEnded,
	}, *types)

	// Further commands do not announce the end again
	require.NoError(t, g.IncreaseConsecutivePass())
	count := 0
	for _, typ := range *types {
		if typ == events.TypeGameEnded {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGame_ResetConsecutivePass(t *testing.T) {
	g := newStartedGame(t)

	require.NoError(t, g.IncreaseConsecutivePass())
	require.NoError(t, g.ResetConsecutivePass())
	require.NoError(t, g.IncreaseConsecutivePass())

	passes, err := g.ConsecutivePasses()
	require.NoError(t, err)
	assert.Equal(t, 1, passes)

	over, _ := g.IsGameOver()
	assert.False(t, over)

	winner, _ := g.Winner()
	assert.Equal(t, core.NoRole, winner, "no winner while the game runs")
}

func TestGame_FullBoardEndsTheGame(t *testing.T) {
	g := newTestGame(t, 1, 3, 2)
	require.NoError(t, g.StartGame(lanceDeck(core.Red, 6), lanceDeck(core.Blue, 6)))

	var ended *events.GameEndedEvent
	g.SubscribeFunc(events.TypeGameEnded, func(e events.Event) {
		ended = e.(*events.GameEndedEvent)
	})

	require.NoError(t, g.PlaceCard(0, 0, 0))
	card, err := g.DrawNewCardForCurrentPlayer()
	require.NoError(t, err)
	require.NotNil(t, card)
	require.NoError(t, g.PlaceCard(0, 1, 0))
	require.NoError(t, g.PlaceCard(0, 2, 0))

	over, err := g.IsGameOver()
	require.NoError(t, err)
	assert.True(t, over)

	winner, err := g.Winner()
	require.NoError(t, err)
	assert.Equal(t, core.Red, winner)

	require.NotNil(t, ended)
	assert.Equal(t, core.Red, ended.Winner)
	assert.Equal(t, core.Scores{Red: 3}, ended.Scores)

	history := g.History()
	require.Len(t, history, 2)
	assert.Equal(t, "board full", history[1].Reason)

	board, _ := g.Board()
	assert.Equal(t, "3 RRR 0\n", Render(board))
}

func TestGame_BoardIsACopy(t *testing.T) {
	g := newStartedGame(t)
	board, err := g.Board()
	require.NoError(t, err)

	placer := &testutil.Placer{R: core.Red, Cards: []*core.Card{testutil.MustCard("c", core.Red, 1, 1, testutil.CenterOnly)}}
	require.NoError(t, board.Place(placer, 0, 0, 0))

	fresh, err := g.Board()
	require.NoError(t, err)
	cell, _ := fresh.CellAt(0, 0)
	assert.False(t, cell.HasCard())
}

func TestGame_PlayerAndHandQueries(t *testing.T) {
	g := newStartedGame(t)

	_, err := g.Player(core.NoRole)
	assert.ErrorIs(t, err, core.ErrInvalidRole)
	_, err = g.Hand(core.NoRole)
	assert.ErrorIs(t, err, core.ErrInvalidRole)

	blue, err := g.Player(core.Blue)
	require.NoError(t, err)
	require.NoError(t, blue.RemoveFromHand(0))

	hand, err := g.Hand(core.Blue)
	require.NoError(t, err)
	assert.Len(t, hand, 5, "player copies do not leak into the game")
}

func TestGame_Unsubscribe(t *testing.T) {
	g := newStartedGame(t)
	calls := 0
	id := g.SubscribeFunc(events.TypePassReset, func(events.Event) { calls++ })

	require.NoError(t, g.ResetConsecutivePass())
	g.UnsubscribeFunc(id)
	require.NoError(t, g.ResetConsecutivePass())

	assert.Equal(t, 1, calls)
}

func TestRender(t *testing.T) {
	g := newStartedGame(t)
	board, err := g.Board()
	require.NoError(t, err)

	assert.Equal(t, "0 1___1 0\n0 1___1 0\n0 1___1 0\n", Render(board))

	colored := RenderColor(board)
	assert.Contains(t, colored, ColorRed+"1"+ColorReset)
	assert.Contains(t, colored, ColorBlue+"1"+ColorReset)
	assert.Contains(t, colored, ColorGray+"_"+ColorReset)
}
