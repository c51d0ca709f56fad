package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Per-window weights of the static evaluation. Only their ordering matters.
const (
	// WindowWinScore is a window filled by one mark.
	WindowWinScore = 100000
	// OpenThreatScore is a window one mark short of a win, the rest empty.
	OpenThreatScore = 5000
	// DevelopingThreatScore is a window two marks short of a win, the rest empty.
	DevelopingThreatScore = 50
)

// Evaluator scores non-terminal boards for the depth-bounded search.
type Evaluator struct {
	streak  int
	windows []Window
}

func NewEvaluator(dimension, streak int) *Evaluator {
	return &Evaluator{
		streak:  streak,
		windows: Windows(dimension, streak),
	}
}

// Score sums the window contributions of both sides from the engine's
// point of view: positive favours engineMark.
func (that *Evaluator) Score(board entity.Board, engineMark, opponentMark entity.Mark) int {
	score := 0
	for _, window := range that.windows {
		score += that.scoreWindow(board, window, engineMark, opponentMark)
	}
	return score
}

func (that *Evaluator) scoreWindow(board entity.Board, window Window, engineMark, opponentMark entity.Mark) int {
	var own, opponent, empty int
	for _, index := range window {
		switch board[index] {
		case engineMark:
			own++
		case opponentMark:
			opponent++
		case entity.EmptyCell:
			empty++
		}
	}

	return that.weight(own, empty) - that.weight(opponent, empty)
}

// weight classifies a window for one side given how many of its cells that
// side holds and how many are empty.
func (that *Evaluator) weight(marks, empty int) int {
	switch {
	case marks == that.streak:
		return WindowWinScore
	case marks == that.streak-1 && empty == 1:
		return OpenThreatScore
	case marks == that.streak-2 && empty == 2:
		return DevelopingThreatScore
	default:
		return 0
	}
}
