package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn places mark on cell and moves the game forward: the result is
// recomputed from scratch, a decided game is finished, otherwise the turn
// passes to the other mark.
func MakeTurn(mode GameMode, game *entity.Game, mark entity.Mark, cell int) error {
	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(mode, game, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board[cell] = mark
	updateGameStatus(mode, game, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(mode GameMode, game *entity.Game, mark entity.Mark, cell int) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if len(game.Board) != mode.Cells() {
		return fmt.Errorf("%w: board has %d cells, mode %s needs %d", entity.ErrInvalidBoard, len(game.Board), mode.Name, mode.Cells())
	}

	if cell < 0 || cell >= len(game.Board) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCell, cell)
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(mode GameMode, game *entity.Game, mark entity.Mark) {
	game.Result = mode.Engine.CheckWinner(game.Board)
	if game.Result.IsTerminal() {
		game.Status = entity.StatusFinished
		return
	}

	game.Turn = entity.Opponent(mark)
}
