package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game"
	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// Human plays moves typed by a person: "row col cardIndex" on one line, or
// "-1" to pass. Both sides of a hot-seat game may share one scanner.
type Human struct {
	role   core.Role
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

// NewHuman creates a controller that prompts on out and reads moves from in.
func NewHuman(role core.Role, in *bufio.Scanner, out io.Writer, logger zerolog.Logger) (*Human, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	if in == nil || out == nil {
		return nil, ErrNoInput
	}
	return &Human{
		role:   role,
		in:     in,
		out:    out,
		logger: logger.With().Str("component", "Human").Str("role", role.String()).Logger(),
	}, nil
}

func (h *Human) Role() core.Role { return h.role }

// TakeTurn shows the board and hand, then reads lines until one is a pass or
// a placement the game accepts. Rejected placements are explained and
// prompted for again.
func (h *Human) TakeTurn(ctx context.Context, g *game.Game) (core.Move, error) {
	if err := checkTurn(ctx, g, h.role); err != nil {
		return core.PassMove(), err
	}
	if err := h.show(g); err != nil {
		return core.PassMove(), err
	}

	for {
		if err := ctx.Err(); err != nil {
			return core.PassMove(), err
		}
		fmt.Fprint(h.out, "\nEnter row, column and card index (or -1 to pass):\n")

		move, err := h.read()
		if err != nil {
			var syntax *inputError
			if errors.As(err, &syntax) {
				fmt.Fprintf(h.out, "\nInvalid input: %v\n", err)
				continue
			}
			return core.PassMove(), err
		}

		if move.IsPass() {
			h.logger.Debug().Msg("Passing")
			return move, endTurn(g, false)
		}

		err = g.PlaceCard(move.Row(), move.Col(), move.CardIndex())
		if err == nil {
			h.logger.Debug().Str("move", move.String()).Msg("Card placed")
			return move, endTurn(g, true)
		}
		var placement *core.PlacementError
		if !errors.As(err, &placement) {
			return core.PassMove(), err
		}
		h.explain(placement)
	}
}

func (h *Human) show(g *game.Game) error {
	board, err := g.Board()
	if err != nil {
		return err
	}
	hand, err := g.Hand(h.role)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("\nCurrent board:\n")
	sb.WriteString(game.Render(board))
	fmt.Fprintf(&sb, "%s's turn!\n\nYour hand:\n", h.role)
	for i, card := range hand {
		fmt.Fprintf(&sb, "[%d] %s\n", i, card)
	}
	_, err = io.WriteString(h.out, sb.String())
	return err
}

func (h *Human) explain(err *core.PlacementError) {
	switch {
	case errors.Is(err, core.ErrInsufficientPawns):
		fmt.Fprintf(h.out, "\nError: %v\nYou need more pawns to play this card. Please choose another.\n", err.Err)
	case errors.Is(err, core.ErrInvalidPosition), errors.Is(err, core.ErrInvalidHandIndex):
		fmt.Fprintf(h.out, "\nInvalid move: %v\nRows, columns and card indexes start at 0.\n", err.Err)
	default:
		fmt.Fprintf(h.out, "\nInvalid move: %v\nPlease enter a valid move.\n", err.Err)
	}
}

// inputError is a line that does not parse as a move.
type inputError struct {
	line string
}

func (e *inputError) Error() string {
	return fmt.Sprintf("%q is not three numbers or -1", e.line)
}

func (h *Human) read() (core.Move, error) {
	for h.in.Scan() {
		line := strings.TrimSpace(h.in.Text())
		if line == "" {
			continue
		}
		return parseMove(line)
	}
	if err := h.in.Err(); err != nil {
		return core.PassMove(), err
	}
	return core.PassMove(), ErrInputClosed
}

func parseMove(line string) (core.Move, error) {
	fields := strings.Fields(line)
	if len(fields) == 1 && fields[0] == "-1" {
		return core.PassMove(), nil
	}
	if len(fields) != 3 {
		return core.PassMove(), &inputError{line: line}
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return core.PassMove(), &inputError{line: line}
		}
		nums[i] = n
	}
	return core.PlaceMove(nums[2], nums[0], nums[1]), nil
}
