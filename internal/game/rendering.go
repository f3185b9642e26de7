package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/PawnsBoard/internal/game/core"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"

	BgRed  = "\033[41m"
	BgBlue = "\033[44m"
)

// Render returns the plain text view of board: one line per row holding
// Red's row score, the cell symbols and Blue's row score.
func Render(board *core.Board) string {
	return render(board, false)
}

// RenderColor is Render with owners coloured for a terminal.
func RenderColor(board *core.Board) string {
	return render(board, true)
}

func render(board *core.Board, color bool) string {
	var sb strings.Builder
	sb.Grow(board.Rows() * (board.Cols()*12 + 12))

	for row := 0; row < board.Rows(); row++ {
		scores, _ := board.RowScores(row)
		sb.WriteString(strconv.Itoa(scores.Red))
		sb.WriteByte(' ')
		for col := 0; col < board.Cols(); col++ {
			cell, _ := board.CellAt(row, col)
			if color {
				writeCellColor(&sb, cell)
			} else {
				sb.WriteString(cell.Symbol())
			}
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(scores.Blue))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeCellColor writes the cell symbol directly to sb to avoid allocations
func writeCellColor(sb *strings.Builder, cell core.Cell) {
	switch {
	case cell.HasCard():
		sb.WriteString(roleBackground(cell.Owner()))
	case cell.Owner() != core.NoRole:
		sb.WriteString(roleColor(cell.Owner()))
	default:
		sb.WriteString(ColorGray)
	}
	sb.WriteString(cell.Symbol())
	sb.WriteString(ColorReset)
}

func roleColor(role core.Role) string {
	if role == core.Blue {
		return ColorBlue
	}
	return ColorRed
}

func roleBackground(role core.Role) string {
	if role == core.Blue {
		return BgBlue
	}
	return BgRed
}
