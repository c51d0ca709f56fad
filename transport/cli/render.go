package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// renderBoard prints the board one row per line. Empty cells show their
// index when withIndices is set, cells of the winning line are bracketed.
func renderBoard(w io.Writer, board entity.Board, dimension int, line []int, withIndices bool) {
	width := len(strconv.Itoa(len(board)-1)) + 2
	separator := strings.Repeat("-", width)

	for row := range dimension {
		cells := make([]string, dimension)
		for col := range dimension {
			index := row*dimension + col
			cells[col] = pad(cellText(board[index], index, withIndices, slices.Contains(line, index)), width)
		}

		fmt.Fprintln(w, strings.Join(cells, "|"))
		if row < dimension-1 {
			fmt.Fprintln(w, strings.TrimSuffix(strings.Repeat(separator+"+", dimension), "+"))
		}
	}
}

func cellText(mark entity.Mark, index int, withIndices, winning bool) string {
	text := string(mark)
	if mark == entity.EmptyCell {
		text = "."
		if withIndices {
			text = strconv.Itoa(index)
		}
	}

	if winning {
		return "[" + text + "]"
	}
	return text
}

// pad centres text in width columns, leaning left.
func pad(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-len(text)-left)
}

func describeResult(result entity.WinResult) string {
	switch {
	case result.IsDraw():
		return "draw"
	case result.IsTerminal():
		return fmt.Sprintf("%s wins on %v", result.Winner, result.Line)
	default:
		return "no winner yet"
	}
}
