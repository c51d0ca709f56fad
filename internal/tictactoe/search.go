package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	// ExhaustiveWinScore is the value of an immediate win in the exhaustive
	// search. Each ply of delay costs one point.
	ExhaustiveWinScore = 10
	// BoundedWinScore is the value of a win in the depth-bounded search. It
	// dominates any static evaluation.
	BoundedWinScore = 10000000
)

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// searcher carries the state of one top-level search. It owns its board
// exclusively: every mark placed during exploration is removed again before
// the next sibling is tried or a cutoff is taken.
type searcher struct {
	detector  *WinDetector
	evaluator *Evaluator
	engine    entity.Mark
	opponent  entity.Mark
	nodes     int
}

// exhaustive is the full-depth minimax used on the small board. depth counts
// plies from the root so quicker wins and slower losses score higher.
func (that *searcher) exhaustive(board entity.Board, depth int, maximizing bool, alpha, beta int) int {
	that.nodes++

	switch result := that.detector.Detect(board); {
	case result.WonBy(that.engine):
		return ExhaustiveWinScore - depth
	case result.WonBy(that.opponent):
		return depth - ExhaustiveWinScore
	case result.IsDraw():
		return 0
	}

	if maximizing {
		best := negInf
		for _, cell := range EmptyCells(board) {
			board[cell] = that.engine
			score := that.exhaustive(board, depth+1, false, alpha, beta)
			board[cell] = entity.EmptyCell

			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := posInf
	for _, cell := range EmptyCells(board) {
		board[cell] = that.opponent
		score := that.exhaustive(board, depth+1, true, alpha, beta)
		board[cell] = entity.EmptyCell

		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// bounded is the depth-limited minimax used on the large board. When the
// remaining depth runs out on an undecided board the static evaluation
// stands in for the rest of the tree.
func (that *searcher) bounded(board entity.Board, remaining, alpha, beta int, maximizing bool) int {
	that.nodes++

	switch result := that.detector.Detect(board); {
	case result.WonBy(that.engine):
		return BoundedWinScore
	case result.WonBy(that.opponent):
		return -BoundedWinScore
	case result.IsDraw():
		return 0
	}

	if remaining == 0 {
		return that.evaluator.Score(board, that.engine, that.opponent)
	}

	if maximizing {
		best := negInf
		for _, cell := range EmptyCells(board) {
			board[cell] = that.engine
			score := that.bounded(board, remaining-1, alpha, beta, false)
			board[cell] = entity.EmptyCell

			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := posInf
	for _, cell := range EmptyCells(board) {
		board[cell] = that.opponent
		score := that.bounded(board, remaining-1, alpha, beta, true)
		board[cell] = entity.EmptyCell

		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
