package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestMakeTurn(t *testing.T) {
	modes := NewModes(2)
	classic, err := modes.Get(ModeClassic)
	require.NoError(t, err)

	newGame := func() *entity.Game {
		return entity.NewGame("123", ModeClassic, classic.Dimension)
	}

	t.Run("MakeTurn", func(t *testing.T) {
		// Given: create a new game
		game := newGame()

		// When: player X makes a turn
		err := MakeTurn(classic, game, entity.PlayerX, 0)
		require.NoError(t, err)

		// Then: the game state should reflect the turn and queue change
		expected := newGame()
		expected.Board[0] = entity.PlayerX
		expected.Turn = entity.PlayerO

		require.Equal(t, expected, game)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: player X moves to cell 0
		game := newGame()
		require.NoError(t, MakeTurn(classic, game, entity.PlayerX, 0))
		before := *game
		before.Board = game.Board.Clone()

		// When: player O tries to make a move to the same square
		err := MakeTurn(classic, game, entity.PlayerO, 0)

		// Then: an error ErrCellOccupied must be returned and the state remains unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, &before, game)
	})

	t.Run("Error on wrong turn", func(t *testing.T) {
		// Given
		game := newGame()

		// When: O tries to open
		err := MakeTurn(classic, game, entity.PlayerO, 4)

		// Then
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.Equal(t, entity.EmptyCell, game.Board[4])
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		game := newGame()

		require.ErrorIs(t, MakeTurn(classic, game, entity.PlayerX, -1), apperror.ErrInvalidCell)
		require.ErrorIs(t, MakeTurn(classic, game, entity.PlayerX, 9), apperror.ErrInvalidCell)
	})

	t.Run("Error on invalid mark", func(t *testing.T) {
		game := newGame()

		err := MakeTurn(classic, game, entity.EmptyCell, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Error on board of another mode", func(t *testing.T) {
		// Given: a 6x6 board played with the 3x3 rules
		game := entity.NewGame("123", ModeLarge, 6)

		// When
		err := MakeTurn(classic, game, entity.PlayerX, 0)

		// Then
		require.ErrorIs(t, err, entity.ErrInvalidBoard)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X X . / O O . / . . .
		game := newGame()
		for i, cell := range []int{0, 3, 1, 4} {
			mark := entity.PlayerX
			if i%2 == 1 {
				mark = entity.PlayerO
			}
			require.NoError(t, MakeTurn(classic, game, mark, cell))
		}

		// When: X completes the top row
		err := MakeTurn(classic, game, entity.PlayerX, 2)

		// Then: the result holds the line and the turn stays with the winner
		require.NoError(t, err)
		require.Equal(t, entity.StatusFinished, game.Status)
		require.Equal(t, entity.WinResult{Winner: entity.WinnerX, Line: []int{0, 1, 2}}, game.Result)
		require.Equal(t, entity.PlayerX, game.Turn)

		// Then: no more turns are accepted
		require.ErrorIs(t, MakeTurn(classic, game, entity.PlayerO, 8), apperror.ErrGameFinished)
	})

	t.Run("Last move of a drawn game", func(t *testing.T) {
		// Given: X O X / X O O / O X .
		game := newGame()
		for i, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6} {
			mark := entity.PlayerX
			if i%2 == 1 {
				mark = entity.PlayerO
			}
			require.NoError(t, MakeTurn(classic, game, mark, cell))
		}

		// When
		err := MakeTurn(classic, game, entity.PlayerX, 8)

		// Then
		require.NoError(t, err)
		require.Equal(t, entity.StatusFinished, game.Status)
		require.True(t, game.Result.IsDraw())
	})

	t.Run("Four in a row wins the large board", func(t *testing.T) {
		// Given
		large, err := modes.Get(ModeLarge)
		require.NoError(t, err)
		game := entity.NewGame("456", ModeLarge, large.Dimension)

		// When: X fills 0..3 while O plays the bottom row
		for i := range 4 {
			require.NoError(t, MakeTurn(large, game, entity.PlayerX, i))
			if i < 3 {
				require.NoError(t, MakeTurn(large, game, entity.PlayerO, 30+i))
			}
		}

		// Then
		require.True(t, game.IsFinished())
		require.Equal(t, []int{0, 1, 2, 3}, game.Result.Line)
	})
}

func TestModes(t *testing.T) {
	modes := NewModes(DefaultSearchDepth)

	t.Run("Known modes", func(t *testing.T) {
		require.Equal(t, []string{ModeClassic, ModeLarge}, modes.Names())

		large, err := modes.Get(ModeLarge)
		require.NoError(t, err)
		require.Equal(t, 36, large.Cells())
		require.Equal(t, 4, large.WinStreak)
		require.IsType(t, &BoundedEngine{}, large.Engine)
		require.Equal(t, DefaultSearchDepth, large.Engine.(*BoundedEngine).Depth())

		classic, err := modes.Get(ModeClassic)
		require.NoError(t, err)
		require.IsType(t, &ExhaustiveEngine{}, classic.Engine)
		require.Len(t, classic.NewBoard(), 9)
	})

	t.Run("Unknown mode", func(t *testing.T) {
		_, err := modes.Get("4x4")

		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})

	t.Run("ParseBoard checks the mode geometry", func(t *testing.T) {
		classic, err := modes.Get(ModeClassic)
		require.NoError(t, err)

		_, err = classic.ParseBoard("XO.")
		require.ErrorIs(t, err, entity.ErrInvalidBoard)

		board, err := classic.ParseBoard("XO. ... ..X")
		require.NoError(t, err)
		require.Equal(t, entity.PlayerX, board[8])
	})
}
