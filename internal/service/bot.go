package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) (tictactoe.Analysis, error)
}

type botService struct {
	logger *slog.Logger
	modes  tictactoe.Modes
}

func NewBotService(logger *slog.Logger, modes tictactoe.Modes) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		modes:  modes,
	}
}

// MakeTurn plays the engine's move for the bot player of the game.
func (that *botService) MakeTurn(game *entity.Game) (tictactoe.Analysis, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", game.ID)

	mode, err := that.modes.Get(game.Mode)
	if err != nil {
		return tictactoe.Analysis{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	botPlayer := game.Bot()
	if botPlayer == nil {
		return tictactoe.Analysis{}, ErrBotNotFound
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return tictactoe.Analysis{}, err
	}

	if game.Turn != botPlayer.Mark {
		return tictactoe.Analysis{}, apperror.ErrNotYourTurn
	}

	analysis := mode.Engine.Analyze(game.Board, botPlayer.Mark, entity.Opponent(botPlayer.Mark))
	if analysis.Move == tictactoe.NoMove {
		return analysis, apperror.ErrNoAvailableMoves
	}

	if err = tictactoe.MakeTurn(mode, game, botPlayer.Mark, analysis.Move); err != nil {
		return analysis, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved",
		"cell", analysis.Move,
		"score", analysis.Score,
		"nodes", analysis.Nodes,
		"opening", analysis.Opening,
	)

	return analysis, nil
}
