package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Mark is the symbol a player places on a cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

var ErrInvalidBoard = errors.New("invalid board")

// Opponent returns the mark playing against the given one.
func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// IsPlayer reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is a square grid stored row-major: index = row*dimension + col.
type Board []Mark

func NewBoard(dimension int) Board {
	return make(Board, dimension*dimension)
}

func (that Board) Clone() Board {
	return slices.Clone(that)
}

func (that Board) Equal(other Board) bool {
	return slices.Equal(that, other)
}

// String renders the board as one character per cell, "." for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}
	return sb.String()
}

// ParseBoard reads a board written one character per cell. X and O are marks,
// '.', '-' and '_' are empty cells, whitespace and '|' separators are ignored.
// The number of cells must match dimension².
func ParseBoard(s string, dimension int) (Board, error) {
	board := make(Board, 0, dimension*dimension)
	for _, char := range strings.ToUpper(s) {
		switch char {
		case 'X':
			board = append(board, PlayerX)
		case 'O':
			board = append(board, PlayerO)
		case '.', '-', '_':
			board = append(board, EmptyCell)
		case ' ', '\t', '\n', '|', '/':
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidBoard, char)
		}
	}

	if len(board) != dimension*dimension {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, len(board), dimension*dimension)
	}

	return board, nil
}

// Winner is the outcome reported by a win check.
type Winner string

const (
	NoWinner Winner = ""
	WinnerX  Winner = Winner(PlayerX)
	WinnerO  Winner = Winner(PlayerO)
	Draw     Winner = "Draw"
)

// WinResult holds the winner of a board and, when a mark won, the indices of
// the winning line in scan order.
type WinResult struct {
	Winner Winner `json:"winner"`
	Line   []int  `json:"line,omitempty"`
}

// IsTerminal reports whether the game is over.
func (that WinResult) IsTerminal() bool {
	return that.Winner != NoWinner
}

func (that WinResult) IsDraw() bool {
	return that.Winner == Draw
}

// WonBy reports whether the given player mark owns the winning line.
func (that WinResult) WonBy(mark Mark) bool {
	return mark.IsPlayer() && that.Winner == Winner(mark)
}
