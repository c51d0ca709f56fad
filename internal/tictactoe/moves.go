package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// EmptyCells returns the indices of the empty cells in ascending order.
func EmptyCells(board entity.Board) []int {
	cells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}
