package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// EngineOpens as an opening leaves the first move to the engine.
const EngineOpens = tictactoe.NoMove

// GameRecord is one finished engine-versus-engine game.
type GameRecord struct {
	Opening int           `json:"opening"`
	Moves   []int         `json:"moves"`
	Winner  entity.Winner `json:"winner"`
	Line    []int         `json:"line,omitempty"`
}

// Report tallies a self-play run.
type Report struct {
	Mode  string       `json:"mode"`
	Games []GameRecord `json:"games"`
	XWins int          `json:"x_wins"`
	OWins int          `json:"o_wins"`
	Draws int          `json:"draws"`
}

func (that *Report) add(record GameRecord) {
	that.Games = append(that.Games, record)
	switch record.Winner {
	case entity.WinnerX:
		that.XWins++
	case entity.WinnerO:
		that.OWins++
	case entity.Draw:
		that.Draws++
	}
}

// SelfPlay pits a mode's engine against itself.
type SelfPlay struct {
	logger *slog.Logger
	modes  tictactoe.Modes
}

func NewSelfPlay(logger *slog.Logger, modes tictactoe.Modes) *SelfPlay {
	return &SelfPlay{
		logger: logger.With("component", "selfplay"),
		modes:  modes,
	}
}

// AllOpenings returns every cell of the mode's board as an opening.
func (that *SelfPlay) AllOpenings(modeName string) ([]int, error) {
	mode, err := that.modes.Get(modeName)
	if err != nil {
		return nil, err
	}

	openings := make([]int, mode.Cells())
	for i := range openings {
		openings[i] = i
	}
	return openings, nil
}

// Run plays one game per opening: X is forced onto the opening cell and the
// engine plays both sides from there. progress, when set, is called after
// every game. The context is checked between moves.
func (that *SelfPlay) Run(ctx context.Context, modeName string, openings []int, progress func(done, total int)) (*Report, error) {
	ctx, span := tracer.Start(ctx, "SelfPlay.Run", trace.WithAttributes(
		attribute.String("game.mode", modeName),
		attribute.Int("selfplay.games", len(openings)),
	))
	defer span.End()

	mode, err := that.modes.Get(modeName)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	report := &Report{Mode: mode.Name}
	for i, opening := range openings {
		record, err := that.playGame(ctx, mode, opening)
		if err != nil {
			recordError(span, err)
			return report, fmt.Errorf("game %d (opening %d): %w", i+1, opening, err)
		}

		report.add(record)
		that.logger.DebugContext(ctx, "game played", "opening", opening, "winner", record.Winner, "moves", len(record.Moves))

		if progress != nil {
			progress(i+1, len(openings))
		}
	}

	that.logger.InfoContext(ctx, "selfplay finished",
		"mode", report.Mode,
		"x_wins", report.XWins,
		"o_wins", report.OWins,
		"draws", report.Draws,
	)

	return report, nil
}

func (that *SelfPlay) playGame(ctx context.Context, mode tictactoe.GameMode, opening int) (GameRecord, error) {
	game := entity.NewGame("selfplay", mode.Name, mode.Dimension)
	record := GameRecord{Opening: opening}

	if opening != EngineOpens {
		if err := tictactoe.MakeTurn(mode, game, game.Turn, opening); err != nil {
			return record, fmt.Errorf("failed to play opening: %w", err)
		}
		record.Moves = append(record.Moves, opening)
	}

	for game.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return record, err
		}

		mark := game.Turn
		move := mode.Engine.FindBestMove(game.Board, mark, entity.Opponent(mark))
		if move == tictactoe.NoMove {
			return record, apperror.ErrNoAvailableMoves
		}

		if err := tictactoe.MakeTurn(mode, game, mark, move); err != nil {
			return record, fmt.Errorf("failed engine turn: %w", err)
		}
		record.Moves = append(record.Moves, move)
	}

	record.Winner = game.Result.Winner
	record.Line = game.Result.Line

	return record, nil
}
