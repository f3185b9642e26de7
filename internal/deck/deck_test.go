package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
	"github.com/mitchelldurbincs/PawnsBoard/internal/testutil"
)

const twoCards = `Security 1 2
XXXXX
XXIXX
XICIX
XXIXX
XXXXX

# comments between blocks are fine
Lancer 2 4
XXXXX
XXXXX
XXCII
XXXXX
XXXXX
`

func TestParse(t *testing.T) {
	cards, err := Parse(strings.NewReader(twoCards), core.Blue)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "Security", cards[0].Name())
	assert.Equal(t, 1, cards[0].Cost())
	assert.Equal(t, 2, cards[0].Value())
	assert.Equal(t, core.Blue, cards[0].Owner())
	assert.Len(t, cards[0].Offsets(), 4)

	assert.Equal(t, "Lancer", cards[1].Name())
	assert.Equal(t, 2, cards[1].Cost())
	assert.Len(t, cards[1].Offsets(), 2)
}

func TestParse_Empty(t *testing.T) {
	cards, err := Parse(strings.NewReader("\n# nothing here\n"), core.Red)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "short header",
			input:   "Security 1\nXXXXX\n",
			wantErr: ErrMalformedDeck,
			wantMsg: "line 1",
		},
		{
			name:    "non-numeric cost",
			input:   "Security one 2\nXXXXX\nXXXXX\nXXCXX\nXXXXX\nXXXXX\n",
			wantErr: ErrMalformedDeck,
			wantMsg: "cost",
		},
		{
			name:    "non-numeric value",
			input:   "\nSecurity 1 two\nXXXXX\nXXXXX\nXXCXX\nXXXXX\nXXXXX\n",
			wantErr: ErrMalformedDeck,
			wantMsg: "line 2",
		},
		{
			name:    "truncated block",
			input:   "Security 1 2\nXXXXX\nXXXXX\n",
			wantErr: ErrMalformedDeck,
			wantMsg: "2 of 5",
		},
		{
			name:    "bad symbol",
			input:   "Security 1 2\nXXXXX\nXXXXX\nXXCXQ\nXXXXX\nXXXXX\n",
			wantErr: core.ErrInvalidCard,
			wantMsg: "line 1",
		},
		{
			name:    "missing centre",
			input:   "Security 1 2\nXXXXX\nXXXXX\nXXXXX\nXXXXX\nXXXXX\n",
			wantErr: core.ErrInvalidCard,
		},
		{
			name:    "cost out of range",
			input:   "Security 4 2\nXXXXX\nXXXXX\nXXCXX\nXXXXX\nXXXXX\n",
			wantErr: core.ErrInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), core.Red)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	_, err := Parse(strings.NewReader(twoCards), core.NoRole)
	assert.ErrorIs(t, err, core.ErrInvalidRole)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.deck")
	require.NoError(t, os.WriteFile(path, []byte(twoCards), 0o644))

	cards, err := Load(path, core.Red)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.deck"), core.Red)
	assert.Error(t, err)
}

func TestLoad_DefaultDeckIsPlayable(t *testing.T) {
	cards, err := Load(filepath.Join("..", "..", "decks", "default.deck"), core.Red)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cards), 15)

	cheap := 0
	for _, c := range cards {
		if c.Cost() == core.MinCardCost {
			cheap++
		}
	}
	assert.Positive(t, cheap)

	// The default 3x5 board with a hand of five must accept the deck.
	p, err := game.NewPlayer(core.Red, 5, testutil.NewTestRNG(1), game.DefaultDrawPolicy(), testutil.NopLogger())
	require.NoError(t, err)
	assert.NoError(t, p.Initialize(3*5, cards))
}
