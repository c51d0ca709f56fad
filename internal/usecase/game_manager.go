package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// MarkRandom lets NewGame pick the human's mark at random.
const MarkRandom = "random"

const botPlayerID = "bot"

var tracer = otel.Tracer("usecase")

var ErrHumanNotFound = errors.New("human player not found")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (tictactoe.Analysis, error)
}

// GameManager runs human-versus-engine sessions. Operations on the same
// manager are serialized.
type GameManager struct {
	mu     sync.Mutex
	logger *slog.Logger

	modes    tictactoe.Modes
	gameRepo gameRepo
	bot      botService
}

func NewGameManager(logger *slog.Logger, modes tictactoe.Modes, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		modes:    modes,
		gameRepo: gameRepo,
		bot:      bot,
	}
}

// NewGame starts a session in the named mode. humanMark is "X", "O" or
// MarkRandom. X always opens, so the engine moves first when the human
// takes O.
func (that *GameManager) NewGame(ctx context.Context, modeName, humanMark string) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GameManager.NewGame", trace.WithAttributes(
		attribute.String("game.mode", modeName),
		attribute.String("game.human_mark", humanMark),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.createGame(ctx, modeName, humanMark)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("game.id", game.ID))
	that.logger.InfoContext(ctx, "game created", "game_id", game.ID, "mode", game.Mode, "human", game.Human().Mark)

	return game, nil
}

// MakeTurn plays the human's move and, unless that decided the game, the
// engine's reply.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GameManager.MakeTurn", trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("move.cell", cell),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.makeTurn(ctx, gameID, cell)
	if err != nil {
		recordError(span, err)
		return game, err
	}

	span.SetAttributes(attribute.String("game.status", game.Status))
	if game.IsFinished() {
		that.logger.InfoContext(ctx, "game finished", "game_id", game.ID, "winner", game.Result.Winner)
	}

	return game, nil
}

// Reset clears the board of a session and keeps its mode and marks.
func (that *GameManager) Reset(ctx context.Context, gameID string) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GameManager.Reset", trace.WithAttributes(
		attribute.String("game.id", gameID),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	game.Reset()
	if err = that.openIfBotStarts(game); err != nil {
		recordError(span, err)
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		recordError(span, err)
		return nil, err
	}

	that.logger.InfoContext(ctx, "game reset", "game_id", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GameManager.GetGame", trace.WithAttributes(
		attribute.String("game.id", gameID),
	))
	defer span.End()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return game, nil
}

// EndGame drops the session from the store.
func (that *GameManager) EndGame(ctx context.Context, gameID string) error {
	ctx, span := tracer.Start(ctx, "GameManager.EndGame", trace.WithAttributes(
		attribute.String("game.id", gameID),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.InfoContext(ctx, "game deleted", "game_id", gameID)

	return nil
}

func (that *GameManager) createGame(ctx context.Context, modeName, humanMark string) (*entity.Game, error) {
	mode, err := that.modes.Get(modeName)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), mode.Name, mode.Dimension)

	human, bot, err := pickMarks(game, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game.Players = []*entity.Player{
		{ID: uuid.NewString(), Mark: human},
		{ID: botPlayerID, Mark: bot, Bot: true},
	}

	if err = that.openIfBotStarts(game); err != nil {
		return nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) makeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	mode, err := that.modes.Get(game.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	human := game.Human()
	if human == nil {
		return nil, ErrHumanNotFound
	}

	if err = tictactoe.MakeTurn(mode, game, human.Mark, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsOngoing() {
		if _, err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) openIfBotStarts(game *entity.Game) error {
	if bot := game.Bot(); bot == nil || bot.Mark != game.Turn {
		return nil
	}

	if _, err := that.bot.MakeTurn(game); err != nil {
		return fmt.Errorf("failed bot opening: %w", err)
	}

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// pickMarks returns the (human, bot) marks for the requested human mark.
func pickMarks(game *entity.Game, humanMark string) (entity.Mark, entity.Mark, error) {
	switch mark := entity.Mark(humanMark); {
	case humanMark == MarkRandom:
		human, bot := game.GetRandomMarks()
		return human, bot, nil
	case mark.IsPlayer():
		return mark, entity.Opponent(mark), nil
	default:
		return entity.EmptyCell, entity.EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
