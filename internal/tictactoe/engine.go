package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// NoMove is returned by FindBestMove when the board has no empty cell.
const NoMove = -1

// DefaultSearchDepth is the ply bound of the large-board search.
const DefaultSearchDepth = 4

// Engine plays one board geometry.
//
// Engines never modify the board passed in. They hold no per-call state and
// may be shared between goroutines.
type Engine interface {
	CheckWinner(board entity.Board) entity.WinResult
	FindBestMove(board entity.Board, engineMark, opponentMark entity.Mark) int
	Analyze(board entity.Board, engineMark, opponentMark entity.Mark) Analysis
}

// Analysis describes how a move was chosen.
type Analysis struct {
	Move    int  `json:"move"`
	Score   int  `json:"score"`
	Nodes   int  `json:"nodes"`
	Opening bool `json:"opening,omitempty"`
}

// ExhaustiveEngine searches the whole game tree. It is only practical on
// small boards.
type ExhaustiveEngine struct {
	detector *WinDetector
}

func NewExhaustiveEngine(dimension, streak int) *ExhaustiveEngine {
	return &ExhaustiveEngine{detector: NewWinDetector(dimension, streak)}
}

func (that *ExhaustiveEngine) CheckWinner(board entity.Board) entity.WinResult {
	return that.detector.Detect(board)
}

func (that *ExhaustiveEngine) FindBestMove(board entity.Board, engineMark, opponentMark entity.Mark) int {
	return that.Analyze(board, engineMark, opponentMark).Move
}

func (that *ExhaustiveEngine) Analyze(board entity.Board, engineMark, opponentMark entity.Mark) Analysis {
	s := &searcher{
		detector: that.detector,
		engine:   engineMark,
		opponent: opponentMark,
	}

	work := board.Clone()
	return s.selectMove(work, func(alpha int) int {
		return s.exhaustive(work, 0, false, alpha, posInf)
	})
}

// BoundedEngine searches a fixed number of plies and falls back to the
// static evaluator below that. Its opening plays the centre without search.
type BoundedEngine struct {
	detector  *WinDetector
	evaluator *Evaluator
	depth     int
	centre    []int
}

func NewBoundedEngine(dimension, streak, depth int) *BoundedEngine {
	return &BoundedEngine{
		detector:  NewWinDetector(dimension, streak),
		evaluator: NewEvaluator(dimension, streak),
		depth:     max(depth, 0),
		centre:    CentreCells(dimension),
	}
}

func (that *BoundedEngine) Depth() int {
	return that.depth
}

func (that *BoundedEngine) CheckWinner(board entity.Board) entity.WinResult {
	return that.detector.Detect(board)
}

func (that *BoundedEngine) FindBestMove(board entity.Board, engineMark, opponentMark entity.Mark) int {
	return that.Analyze(board, engineMark, opponentMark).Move
}

func (that *BoundedEngine) Analyze(board entity.Board, engineMark, opponentMark entity.Mark) Analysis {
	for _, cell := range that.centre {
		if board[cell] == entity.EmptyCell {
			return Analysis{Move: cell, Opening: true}
		}
	}

	s := &searcher{
		detector:  that.detector,
		evaluator: that.evaluator,
		engine:    engineMark,
		opponent:  opponentMark,
	}

	work := board.Clone()
	return s.selectMove(work, func(alpha int) int {
		return s.bounded(work, that.depth, alpha, posInf, false)
	})
}

// CentreCells returns the central cell of an odd board, or the two cells on
// the main diagonal around the centre of an even one.
func CentreCells(dimension int) []int {
	half := dimension / 2
	if dimension%2 == 1 {
		return []int{half*dimension + half}
	}
	return []int{(half-1)*dimension + half - 1, half*dimension + half}
}

// selectMove places the engine mark on every empty cell in turn and keeps
// the first cell with the highest value. value scores the board after the
// placement from the opponent's side; it receives the best score found so
// far as its alpha, which only prunes siblings that could not win anyway.
func (that *searcher) selectMove(board entity.Board, value func(alpha int) int) Analysis {
	analysis := Analysis{Move: NoMove}
	best := negInf

	for _, cell := range EmptyCells(board) {
		board[cell] = that.engine
		score := value(best)
		board[cell] = entity.EmptyCell

		if score > best {
			best = score
			analysis.Move = cell
			analysis.Score = score
		}
	}

	analysis.Nodes = that.nodes
	return analysis
}
