package tictactoe

import (
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Window is a contiguous run of win-streak cell indices along one line.
type Window []int

// Windows enumerates every window of length streak on a dimension×dimension
// board: horizontal, then vertical, then down-right diagonals, then down-left
// diagonals, each group ordered row-major by its starting cell.
func Windows(dimension, streak int) []Window {
	if streak <= 0 || streak > dimension {
		return nil
	}

	var windows []Window
	line := func(row, col, dRow, dCol int) Window {
		window := make(Window, streak)
		for i := range streak {
			window[i] = (row+i*dRow)*dimension + col + i*dCol
		}
		return window
	}

	for row := 0; row < dimension; row++ {
		for col := 0; col <= dimension-streak; col++ {
			windows = append(windows, line(row, col, 0, 1))
		}
	}

	for row := 0; row <= dimension-streak; row++ {
		for col := 0; col < dimension; col++ {
			windows = append(windows, line(row, col, 1, 0))
		}
	}

	for row := 0; row <= dimension-streak; row++ {
		for col := 0; col <= dimension-streak; col++ {
			windows = append(windows, line(row, col, 1, 1))
		}
	}

	for row := 0; row <= dimension-streak; row++ {
		for col := streak - 1; col < dimension; col++ {
			windows = append(windows, line(row, col, 1, -1))
		}
	}

	return windows
}

// WinDetector checks boards of one fixed geometry. It is immutable and safe
// for concurrent use.
type WinDetector struct {
	dimension int
	streak    int
	windows   []Window
}

func NewWinDetector(dimension, streak int) *WinDetector {
	return &WinDetector{
		dimension: dimension,
		streak:    streak,
		windows:   Windows(dimension, streak),
	}
}

// Detect is a one-shot helper around WinDetector.Detect.
func Detect(board entity.Board, dimension, streak int) entity.WinResult {
	return NewWinDetector(dimension, streak).Detect(board)
}

// Detect returns the first winning window in scan order, a draw when the
// board is full, or no winner.
func (that *WinDetector) Detect(board entity.Board) entity.WinResult {
	for _, window := range that.windows {
		if mark, ok := owner(board, window); ok {
			return entity.WinResult{
				Winner: entity.Winner(mark),
				Line:   slices.Clone(window),
			}
		}
	}

	if isFull(board) {
		return entity.WinResult{Winner: entity.Draw}
	}

	return entity.WinResult{Winner: entity.NoWinner}
}

func (that *WinDetector) Windows() []Window {
	return that.windows
}

// owner returns the mark filling every cell of the window.
func owner(board entity.Board, window Window) (entity.Mark, bool) {
	first := board[window[0]]
	if first == entity.EmptyCell {
		return entity.EmptyCell, false
	}

	for _, index := range window[1:] {
		if board[index] != first {
			return entity.EmptyCell, false
		}
	}

	return first, true
}

func isFull(board entity.Board) bool {
	return !slices.Contains(board, entity.EmptyCell)
}
