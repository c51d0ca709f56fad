package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/cli"
)

// RunApp - runs the application with the given command line arguments.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.InitTracing(conf.Trace, os.Stderr)
	if err != nil {
		return fmt.Errorf("could not init tracing: %w", err)
	}
	defer func() {
		if err = shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Error("could not shut down tracing", "error", err)
		}
	}()

	modes := tictactoe.NewModes(conf.Engine.LargeBoardDepth)

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close game storage", "error", err)
		}
	}()

	botService := service.NewBotService(logger, modes)
	gameManager := usecase.NewGameManager(logger, modes, gameRepo, botService)
	selfPlay := usecase.NewSelfPlay(logger, modes)

	root := cli.NewRootCommand(cli.Options{
		Logger: logger,
		Defaults: cli.Defaults{
			Mode:       conf.Mode,
			HumanMark:  conf.HumanMark,
			ThinkDelay: conf.ThinkDelay,
		},
		Modes:    modes,
		Manager:  gameManager,
		SelfPlay: selfPlay,
	})
	root.SetArgs(args)

	log.Debug("starting", "storage", conf.Storage.Kind, "mode", conf.Mode)

	return root.ExecuteContext(ctx)
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage.Kind != config.StorageRedis {
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage.Connection, conf.Storage.SessionTTL), redisStorage.Close, nil
}
