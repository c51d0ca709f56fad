package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type gameManager interface {
	NewGame(ctx context.Context, modeName, humanMark string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error
}

type selfPlayer interface {
	AllOpenings(modeName string) ([]int, error)
	Run(ctx context.Context, modeName string, openings []int, progress func(done, total int)) (*usecase.Report, error)
}

// Defaults are the config values the commands fall back to when a flag is
// not given.
type Defaults struct {
	Mode       string
	HumanMark  string
	ThinkDelay time.Duration
}

type Options struct {
	Logger   *slog.Logger
	Defaults Defaults
	Modes    tictactoe.Modes
	Manager  gameManager
	SelfPlay selfPlayer
}

func NewRootCommand(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe against a minimax engine",
		Long: heredoc.Doc(`tictactoe plays classic 3x3 tic-tac-toe and a 6x6
			four-in-a-row variant against a minimax engine.

			The 3x3 engine searches the whole game tree and never loses.
			The 6x6 engine searches a fixed number of plies and scores
			the positions below that with a window heuristic.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newPlayCommand(opts))
	root.AddCommand(newSelfPlayCommand(opts))
	root.AddCommand(newBestMoveCommand(opts))
	root.AddCommand(newCheckCommand(opts))

	return root
}

func addModeFlag(cmd *cobra.Command, target *string, def string) {
	cmd.Flags().StringVarP(target, "mode", "m", def, "game mode (3x3 or 6x6)")
}
