package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solve returns the game value for the side to move under perfect play:
// 1 for a forced win, 0 for a draw and -1 for a forced loss.
func solve(detector *WinDetector, board entity.Board, toMove entity.Mark) int {
	result := detector.Detect(board)
	switch {
	case result.WonBy(toMove):
		return 1
	case result.WonBy(entity.Opponent(toMove)):
		return -1
	case result.IsDraw():
		return 0
	}

	best := -1
	for _, cell := range EmptyCells(board) {
		board[cell] = toMove
		best = max(best, -solve(detector, board, entity.Opponent(toMove)))
		board[cell] = entity.EmptyCell
	}
	return best
}

// plainMinimax is the exhaustive search without pruning.
func plainMinimax(detector *WinDetector, board entity.Board, depth int, maximizing bool, engine, opponent entity.Mark) int {
	result := detector.Detect(board)
	switch {
	case result.WonBy(engine):
		return ExhaustiveWinScore - depth
	case result.WonBy(opponent):
		return depth - ExhaustiveWinScore
	case result.IsDraw():
		return 0
	}

	best := posInf
	mark := opponent
	if maximizing {
		best = negInf
		mark = engine
	}

	for _, cell := range EmptyCells(board) {
		board[cell] = mark
		score := plainMinimax(detector, board, depth+1, !maximizing, engine, opponent)
		board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// plainBounded is the depth-bounded search without pruning.
func plainBounded(s *searcher, board entity.Board, remaining int, maximizing bool) int {
	result := s.detector.Detect(board)
	switch {
	case result.WonBy(s.engine):
		return BoundedWinScore
	case result.WonBy(s.opponent):
		return -BoundedWinScore
	case result.IsDraw():
		return 0
	}

	if remaining == 0 {
		return s.evaluator.Score(board, s.engine, s.opponent)
	}

	best := posInf
	mark := s.opponent
	if maximizing {
		best = negInf
		mark = s.engine
	}

	for _, cell := range EmptyCells(board) {
		board[cell] = mark
		score := plainBounded(s, board, remaining-1, !maximizing)
		board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// pickFirstBest mirrors the selector: strict maximum, first found wins ties.
func pickFirstBest(board entity.Board, engine entity.Mark, value func(entity.Board) int) (int, int) {
	move, best := NoMove, negInf
	for _, cell := range EmptyCells(board) {
		board[cell] = engine
		score := value(board)
		board[cell] = entity.EmptyCell

		if score > best {
			move, best = cell, score
		}
	}
	return move, best
}

// sideToMove derives whose turn it is from the mark counts; X opens.
func sideToMove(board entity.Board) entity.Mark {
	var x, o int
	for _, cell := range board {
		switch cell {
		case entity.PlayerX:
			x++
		case entity.PlayerO:
			o++
		}
	}
	if x > o {
		return entity.PlayerO
	}
	return entity.PlayerX
}

// reachableClassic returns every reachable undecided 3x3 position.
func reachableClassic(detector *WinDetector) []entity.Board {
	seen := map[string]bool{}
	var boards []entity.Board

	var walk func(board entity.Board, toMove entity.Mark)
	walk = func(board entity.Board, toMove entity.Mark) {
		if seen[board.String()] || detector.Detect(board).IsTerminal() {
			return
		}
		seen[board.String()] = true
		boards = append(boards, board.Clone())

		for _, cell := range EmptyCells(board) {
			board[cell] = toMove
			walk(board, entity.Opponent(toMove))
			board[cell] = entity.EmptyCell
		}
	}
	walk(entity.NewBoard(3), entity.PlayerX)

	return boards
}

// playOut lets the engine play both sides until the game is decided.
func playOut(engine Engine, board entity.Board, toMove entity.Mark) entity.WinResult {
	board = board.Clone()
	for {
		if result := engine.CheckWinner(board); result.IsTerminal() {
			return result
		}
		move := engine.FindBestMove(board, toMove, entity.Opponent(toMove))
		board[move] = toMove
		toMove = entity.Opponent(toMove)
	}
}

func TestExhaustiveEngine_Optimality(t *testing.T) {
	// Given: every reachable undecided classic position
	engine := NewExhaustiveEngine(3, 3)
	detector := NewWinDetector(3, 3)
	boards := reachableClassic(detector)
	require.Len(t, boards, 4520)

	for _, board := range boards {
		mover := sideToMove(board)
		opponent := entity.Opponent(mover)

		// When: the engine picks a move for the side to move
		move := engine.FindBestMove(board, mover, opponent)
		require.NotEqual(t, NoMove, move, board.String())
		require.Equal(t, entity.EmptyCell, board[move], board.String())

		// Then: the move keeps the game-theoretic value of the position
		child := board.Clone()
		child[move] = mover
		require.Equal(t, solve(detector, board.Clone(), mover), -solve(detector, child, opponent), board.String())
	}
}

func TestExhaustiveEngine_PruningEquivalence(t *testing.T) {
	engine := NewExhaustiveEngine(3, 3)
	detector := NewWinDetector(3, 3)

	for _, board := range reachableClassic(detector) {
		mover := sideToMove(board)
		opponent := entity.Opponent(mover)

		// When: compare against the unpruned search
		analysis := engine.Analyze(board, mover, opponent)
		move, score := pickFirstBest(board.Clone(), mover, func(b entity.Board) int {
			return plainMinimax(detector, b, 0, false, mover, opponent)
		})

		// Then: same move, same value
		require.Equal(t, move, analysis.Move, board.String())
		require.Equal(t, score, analysis.Score, board.String())
	}
}

func TestExhaustiveEngine_FindBestMove(t *testing.T) {
	engine := NewExhaustiveEngine(3, 3)

	t.Run("Completes the winning row", func(t *testing.T) {
		// Given: X X . / O O . / . . .
		board := parse(t, "XX. OO. ...", 3)

		// When
		move := engine.FindBestMove(board, entity.PlayerX, entity.PlayerO)

		// Then
		require.Equal(t, 2, move)
	})

	t.Run("Never lets O win from a crowded board", func(t *testing.T) {
		// Given: X O X / O X O / . O .
		board := parse(t, "XOX OXO .O.", 3)
		require.False(t, engine.CheckWinner(board).IsTerminal())

		// When
		move := engine.FindBestMove(board, entity.PlayerX, entity.PlayerO)

		// Then: both remaining cells finish a diagonal for X
		require.Contains(t, []int{6, 8}, move)
		assert.Equal(t, 6, move)

		result := playOut(engine, board, entity.PlayerX)
		require.NotEqual(t, entity.WinnerO, result.Winner)
	})

	t.Run("Blocks with a fork", func(t *testing.T) {
		// Given: O threatens the top row, X holds the centre and a corner
		board := parse(t, "OO. .X. ..X", 3)

		// When
		move := engine.FindBestMove(board, entity.PlayerX, entity.PlayerO)

		// Then
		require.Equal(t, 2, move)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		board := parse(t, "XOX XOO OXX", 3)

		analysis := engine.Analyze(board, entity.PlayerX, entity.PlayerO)

		require.Equal(t, NoMove, analysis.Move)
		require.Zero(t, analysis.Nodes)
	})

	t.Run("Board is left untouched", func(t *testing.T) {
		for _, s := range []string{".........", "X...O....", "XOX.O....", "XOX OXO .O."} {
			// Given
			board := parse(t, s, 3)
			before := board.Clone()

			// When
			engine.Analyze(board, sideToMove(board), entity.Opponent(sideToMove(board)))

			// Then
			require.Equal(t, before, board)
		}
	})

	t.Run("Pruning visits fewer nodes than full search", func(t *testing.T) {
		analysis := engine.Analyze(entity.NewBoard(3), entity.PlayerX, entity.PlayerO)

		require.Positive(t, analysis.Nodes)
		require.Less(t, analysis.Nodes, 549945)
	})
}

func TestExhaustiveEngine_SelfPlay(t *testing.T) {
	engine := NewExhaustiveEngine(3, 3)

	t.Run("Engine as O draws against every opening", func(t *testing.T) {
		for opening := range 9 {
			// Given: the human opens on any cell
			board := entity.NewBoard(3)
			board[opening] = entity.PlayerX

			// When: the engine replies and both sides continue optimally
			reply := engine.FindBestMove(board, entity.PlayerO, entity.PlayerX)
			board[reply] = entity.PlayerO
			result := playOut(engine, board, entity.PlayerX)

			// Then
			require.Equal(t, entity.Draw, result.Winner, "opening %d", opening)
		}
	})

	t.Run("Engine against itself from the empty board", func(t *testing.T) {
		result := playOut(engine, entity.NewBoard(3), entity.PlayerX)

		require.Equal(t, entity.Draw, result.Winner)
	})
}

func TestBoundedEngine_Opening(t *testing.T) {
	engine := NewBoundedEngine(6, 4, DefaultSearchDepth)

	t.Run("Empty board plays the first centre cell", func(t *testing.T) {
		// When
		analysis := engine.Analyze(entity.NewBoard(6), entity.PlayerX, entity.PlayerO)

		// Then: no search happened
		require.Equal(t, Analysis{Move: 14, Opening: true}, analysis)
	})

	t.Run("Second centre cell once the first is taken", func(t *testing.T) {
		// Given
		board := entity.NewBoard(6)
		board[14] = entity.PlayerX

		// When
		move := engine.FindBestMove(board, entity.PlayerO, entity.PlayerX)

		// Then
		require.Equal(t, 21, move)
	})

	t.Run("Centre cells of other geometries", func(t *testing.T) {
		assert.Equal(t, []int{14, 21}, CentreCells(6))
		assert.Equal(t, []int{4}, CentreCells(3))
		assert.Equal(t, []int{12}, CentreCells(5))
	})
}

func TestBoundedEngine_FindBestMove(t *testing.T) {
	engine := NewBoundedEngine(6, 4, 2)

	centreTaken := func(x, o []int) entity.Board {
		board := entity.NewBoard(6)
		board[14], board[21] = entity.PlayerX, entity.PlayerX
		for _, cell := range x {
			board[cell] = entity.PlayerX
		}
		for _, cell := range o {
			board[cell] = entity.PlayerO
		}
		return board
	}

	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: X holds 0,1,2 and O threatens 33
		board := centreTaken([]int{0, 1, 2}, []int{30, 31, 32, 34, 35})

		// When
		analysis := engine.Analyze(board, entity.PlayerX, entity.PlayerO)

		// Then
		require.Equal(t, 3, analysis.Move)
		require.Equal(t, BoundedWinScore, analysis.Score)
	})

	t.Run("Blocks the open three", func(t *testing.T) {
		// Given: O threatens 3 on the top row
		board := centreTaken([]int{30}, []int{0, 1, 2})

		// When
		move := engine.FindBestMove(board, entity.PlayerX, entity.PlayerO)

		// Then
		require.Equal(t, 3, move)
	})

	t.Run("Matches the unpruned search", func(t *testing.T) {
		boards := []entity.Board{
			centreTaken(nil, []int{0, 35}),
			centreTaken([]int{35}, []int{0, 1, 2}),
			centreTaken([]int{7}, []int{28, 0}),
		}

		for _, board := range boards {
			s := &searcher{
				detector:  engine.detector,
				evaluator: engine.evaluator,
				engine:    entity.PlayerO,
				opponent:  entity.PlayerX,
			}

			// When
			analysis := engine.Analyze(board, entity.PlayerO, entity.PlayerX)
			move, score := pickFirstBest(board.Clone(), entity.PlayerO, func(b entity.Board) int {
				return plainBounded(s, b, engine.Depth(), false)
			})

			// Then
			require.Equal(t, move, analysis.Move, board.String())
			require.Equal(t, score, analysis.Score, board.String())
		}
	})

	t.Run("Board is left untouched", func(t *testing.T) {
		// Given
		board := centreTaken([]int{0}, []int{1, 2})
		before := board.Clone()

		// When
		engine.Analyze(board, entity.PlayerO, entity.PlayerX)

		// Then
		require.Equal(t, before, board)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		// Given: XXOOXX rows alternating with OOXXOO rows
		board := entity.NewBoard(6)
		for i := range board {
			row, col := i/6, i%6
			if (col/2+row%2)%2 == 0 {
				board[i] = entity.PlayerX
			} else {
				board[i] = entity.PlayerO
			}
		}
		require.True(t, engine.CheckWinner(board).IsDraw())

		// When
		move := engine.FindBestMove(board, entity.PlayerX, entity.PlayerO)

		// Then
		require.Equal(t, NoMove, move)
	})
}

func TestBoundedEngine_DefaultDepth(t *testing.T) {
	if testing.Short() {
		t.Skip("deep search")
	}

	// Given: O has three down column 4 and only 22 completes it
	engine := NewBoundedEngine(6, 4, DefaultSearchDepth)
	board := entity.NewBoard(6)
	board[14], board[21], board[5] = entity.PlayerX, entity.PlayerX, entity.PlayerX
	board[4], board[10], board[16] = entity.PlayerO, entity.PlayerO, entity.PlayerO

	// When
	analysis := engine.Analyze(board, entity.PlayerX, entity.PlayerO)

	// Then: the block also sets up a forced win within the horizon
	require.Equal(t, 22, analysis.Move)
	require.Equal(t, BoundedWinScore, analysis.Score)
}
